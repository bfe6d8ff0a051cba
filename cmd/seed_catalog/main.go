// seed_catalog genera un script SQL con categorías y productos de ejemplo a partir de un CSV
// exportado desde hoja de cálculo (ISO-8859-1, separador ';').
//
// Columnas: categoria;nombre;descripcion;precio;stock[;imagen]
//
// Uso: go run ./cmd/seed_catalog [catalogo.csv] [salida.sql]
// Por defecto lee catalogo.csv y escribe seed_catalog.sql en el directorio actual.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type seedProduct struct {
	Category    string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Image       string
}

func main() {
	csvPath, outPath := "catalogo.csv", "seed_catalog.sql"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	products, err := parseCatalog(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, products); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d categorías, %d productos\n", outPath, len(categoriesOf(products)), len(products))
}

// parseCatalog lee el CSV ya decodificado a UTF-8. La primera fila es cabecera.
func parseCatalog(r io.Reader) ([]seedProduct, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	var out []seedProduct
	for i, rec := range records {
		if i == 0 || len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		if len(rec) < 5 {
			return nil, fmt.Errorf("fila %d: se esperaban al menos 5 columnas, hay %d", i+1, len(rec))
		}
		// Las hojas en español exportan el precio con coma decimal.
		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[3]), ",", "."))
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("fila %d: precio inválido %q", i+1, rec[3])
		}
		stock, err := strconv.Atoi(strings.TrimSpace(rec[4]))
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("fila %d: stock inválido %q", i+1, rec[4])
		}
		p := seedProduct{
			Category:    strings.TrimSpace(rec[0]),
			Name:        strings.TrimSpace(rec[1]),
			Description: strings.TrimSpace(rec[2]),
			Price:       price.Round(2),
			Stock:       stock,
		}
		if len(rec) > 5 {
			p.Image = strings.TrimSpace(rec[5])
		}
		if p.Name == "" {
			return nil, fmt.Errorf("fila %d: nombre vacío", i+1)
		}
		out = append(out, p)
	}
	return out, nil
}

func categoriesOf(products []seedProduct) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			names = append(names, p.Category)
		}
	}
	sort.Strings(names)
	return names
}

// writeSQL categorías primero (sin duplicar por nombre), luego productos enlazados por nombre de categoría.
func writeSQL(w io.Writer, products []seedProduct) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de ejemplo\n-- Generado por cmd/seed_catalog\n\n")

	b.WriteString("-- 1. Categorías\n")
	for _, name := range categoriesOf(products) {
		n := escapeSQL(name)
		fmt.Fprintf(&b, "INSERT INTO categories (name)\nSELECT '%s' WHERE NOT EXISTS (SELECT 1 FROM categories WHERE name = '%s');\n", n, n)
	}

	b.WriteString("\n-- 2. Productos\n")
	for _, p := range products {
		category := "NULL"
		if p.Category != "" {
			category = fmt.Sprintf("(SELECT id FROM categories WHERE name = '%s' ORDER BY id LIMIT 1)", escapeSQL(p.Category))
		}
		fmt.Fprintf(&b, "INSERT INTO products (name, description, price, stock, image, category_id)\nVALUES ('%s', %s, %s, %d, %s, %s);\n",
			escapeSQL(p.Name), nullable(p.Description), p.Price.StringFixed(2), p.Stock, nullable(p.Image), category)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func nullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + escapeSQL(s) + "'"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
