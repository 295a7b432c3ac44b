package inventory

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultPrimaryKeyword palabra que identifica la materia prima principal (harina).
const DefaultPrimaryKeyword = "harina"

// PrimaryMatcher decide si una materia prima cumple el rol de ingrediente principal.
// Compara sin mayúsculas ni tildes: "Harína de Trigo" coincide con "harina".
type PrimaryMatcher struct {
	keyword string
}

// NewPrimaryMatcher crea el matcher; keyword vacío usa DefaultPrimaryKeyword.
func NewPrimaryMatcher(keyword string) PrimaryMatcher {
	if strings.TrimSpace(keyword) == "" {
		keyword = DefaultPrimaryKeyword
	}
	return PrimaryMatcher{keyword: fold(keyword)}
}

// Matches indica si el nombre corresponde al ingrediente principal.
func (m PrimaryMatcher) Matches(name string) bool {
	return strings.Contains(fold(name), m.keyword)
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
