package searchkey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Tienda-api/pkg/searchkey"
)

func TestFold_QuitaDiacriticosYMinusculas(t *testing.T) {
	cases := map[string]string{
		"Café":             "cafe",
		"Camiseta Básica":  "camiseta basica",
		"AUDÍFONOS":        "audifonos",
		"sin acentos":      "sin acentos",
		"Ñandú":            "ñandu", // la eñe no es una marca diacrítica
		"Lámpara LED 220V": "lampara led 220v",
	}
	for in, want := range cases {
		assert.Equal(t, want, searchkey.Fold(in), "Fold(%q)", in)
	}
}

func TestForProduct_CombinaTituloYCategoria(t *testing.T) {
	assert.Equal(t, "cafe de origen alimentos", searchkey.ForProduct("Café de Origen", "Alimentos"))
	assert.Equal(t, "mochila urbana", searchkey.ForProduct("Mochila Urbana", ""))
}
