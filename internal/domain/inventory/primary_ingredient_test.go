package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Panaderia-api/internal/domain/inventory"
)

func TestPrimaryMatcher(t *testing.T) {
	m := inventory.NewPrimaryMatcher("")
	assert.True(t, m.Matches("Harina de trigo"))
	assert.True(t, m.Matches("HARÍNA integral"), "ignora tildes y mayúsculas")
	assert.True(t, m.Matches("  harina 000 "))
	assert.False(t, m.Matches("Azúcar"))
	assert.False(t, m.Matches("Levadura"))
}

func TestPrimaryMatcher_PalabraConfigurada(t *testing.T) {
	m := inventory.NewPrimaryMatcher("Azúcar")
	assert.True(t, m.Matches("azucar morena"))
	assert.False(t, m.Matches("Harina de trigo"))
}
