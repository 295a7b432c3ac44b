package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Panaderia-api/pkg/config"
	"github.com/jhoicas/Panaderia-api/pkg/logger"
)

// NewPool crea el pool de conexiones. Cada conexión registra el codec NUMERIC -> decimal
// y fija lock_timeout: una fila bloqueada más de ese tiempo aborta la transacción en lugar de esperar.
func NewPool(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	if poolConfig.MaxConns <= 0 {
		poolConfig.MaxConns = 25
	}
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	if cfg.LockTimeout > 0 {
		poolConfig.ConnConfig.RuntimeParams["lock_timeout"] = fmt.Sprintf("%dms", cfg.LockTimeout.Milliseconds())
	}
	if log != nil {
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   queryLogger(log.Component("postgres")),
			LogLevel: traceLevel(log.Zerolog().GetLevel()),
		}
	}

	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// queryLogger envía las trazas de pgx al logger de la aplicación.
func queryLogger(log *logger.Logger) tracelog.LoggerFunc {
	return func(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		var ev *zerolog.Event
		switch level {
		case tracelog.LogLevelError:
			ev = log.Error()
		case tracelog.LogLevelWarn:
			ev = log.Warn()
		case tracelog.LogLevelInfo, tracelog.LogLevelDebug:
			ev = log.Debug()
		default:
			ev = log.Trace()
		}
		ev.Fields(data).Msg(msg)
	}
}

// traceLevel las consultas (nivel info en pgx) solo se registran con LOG_LEVEL=debug o trace.
func traceLevel(level zerolog.Level) tracelog.LogLevel {
	switch {
	case level <= zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case level == zerolog.DebugLevel:
		return tracelog.LogLevelInfo
	default:
		return tracelog.LogLevelWarn
	}
}
