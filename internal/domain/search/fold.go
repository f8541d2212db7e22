// Package search normaliza texto para búsquedas sin distinguir mayúsculas ni acentos.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s en minúsculas y sin marcas diacríticas ("Ñandú São" → "nandu sao").
func Fold(s string) string {
	// transform.Chain guarda estado; se construye por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(strings.TrimSpace(out))
}

// Matcher compara un término ya normalizado contra varios campos.
type Matcher struct {
	term string
}

// NewMatcher prepara el término de búsqueda. Un término vacío coincide con todo.
func NewMatcher(term string) Matcher {
	return Matcher{term: Fold(term)}
}

// Empty indica que no hay filtro.
func (m Matcher) Empty() bool { return m.term == "" }

// Match verdadero si algún campo contiene el término.
func (m Matcher) Match(fields ...string) bool {
	if m.term == "" {
		return true
	}
	for _, f := range fields {
		if f != "" && strings.Contains(Fold(f), m.term) {
			return true
		}
	}
	return false
}
