package auth

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify normaliza un slug de organización: minúsculas, sin acentos,
// espacios a guiones y solo [a-z0-9-]. Mismo saneo que aplica el alta de
// organización antes del chequeo de unicidad.
func Slugify(raw string) string {
	// Descomponer y descartar marcas diacríticas (é -> e)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	clean, _, err := transform.String(t, raw)
	if err != nil {
		clean = raw
	}

	clean = strings.ToLower(strings.TrimSpace(clean))
	clean = strings.Join(strings.Fields(clean), "-")

	var b strings.Builder
	for _, r := range clean {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
