package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"trace":   zerolog.TraceLevel,
		"":        zerolog.InfoLevel,
		"verboso": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestComponent_NoAlteraElPadre(t *testing.T) {
	base := Nop()
	child := base.Component("produccion")
	assert.NotSame(t, base, child)
	assert.Equal(t, zerolog.Disabled, child.Zerolog().GetLevel())
}
