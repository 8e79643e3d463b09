// Package searchkey normaliza texto para búsqueda en el catálogo:
// minúsculas y sin diacríticos, de modo que "Café" y "cafe" coincidan.
package searchkey

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold devuelve el texto en minúsculas y sin marcas diacríticas.
func Fold(s string) string {
	out, _, err := transform.String(folder, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// ForProduct construye la clave de búsqueda de un producto a partir de
// título y categoría.
func ForProduct(title, category string) string {
	return strings.TrimSpace(Fold(title) + " " + Fold(category))
}
