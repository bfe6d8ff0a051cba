package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestParseCatalog_DecodificaLatin1(t *testing.T) {
	raw := "categoria;nombre;descripcion;precio;stock;imagen\n" +
		"Cocina;Taza café;Cerámica;12,50;10;taza.png\n" +
		"Baño;Toalla;;8;0\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().String(raw)
	require.NoError(t, err)

	products, err := parseCatalog(transform.NewReader(strings.NewReader(latin1), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Taza café", products[0].Name)
	assert.Equal(t, "12.5", products[0].Price.String())
	assert.Equal(t, "taza.png", products[0].Image)
	assert.Equal(t, "Baño", products[1].Category)
	assert.Equal(t, 0, products[1].Stock)
}

func TestParseCatalog_PrecioInvalido(t *testing.T) {
	_, err := parseCatalog(strings.NewReader("h\nCocina;Taza;;abc;1\n"))
	assert.ErrorContains(t, err, "fila 2")
}

func TestParseCatalog_ColumnasInsuficientes(t *testing.T) {
	_, err := parseCatalog(strings.NewReader("h\nCocina;Taza\n"))
	assert.Error(t, err)
}

func TestWriteSQL(t *testing.T) {
	products, err := parseCatalog(strings.NewReader("h\nCocina;Taza O'Neil;;10;3\n;Suelto;;1;1\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, products))
	sql := buf.String()

	assert.Contains(t, sql, "SELECT 'Cocina' WHERE NOT EXISTS")
	assert.Contains(t, sql, "'Taza O''Neil', NULL, 10.00, 3, NULL, (SELECT id FROM categories WHERE name = 'Cocina'")
	assert.Contains(t, sql, "'Suelto', NULL, 1.00, 1, NULL, NULL);")
}
