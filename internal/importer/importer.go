package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shoppos/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter loads a supplier catalog export into the products table.
// Expected headers: sku, name, description, image, price, import_price,
// stock, category. Column order does not matter; unknown columns are
// ignored.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses catalog rows and upserts products keyed by SKU.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		p, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if p == nil {
			continue
		}

		if _, err := i.productRepo.Upsert(ctx, *p); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", p.SKU, err)
		}
		imported++
	}

	return imported, nil
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	sku := pick(record, index, "sku")
	name := pick(record, index, "name")

	// Blank padding rows are common in spreadsheet exports.
	if sku == "" && name == "" {
		return nil, nil
	}
	if sku == "" || name == "" {
		return nil, fmt.Errorf("invalid product row: sku=%q name=%q", sku, name)
	}

	price, err := parsePrice(pick(record, index, "price"))
	if err != nil {
		return nil, fmt.Errorf("invalid price for sku %q: %w", sku, err)
	}
	importPrice, err := parsePrice(pick(record, index, "import_price"))
	if err != nil {
		return nil, fmt.Errorf("invalid import_price for sku %q: %w", sku, err)
	}

	stock := 0
	if raw := pick(record, index, "stock"); raw != "" {
		stock, err = strconv.Atoi(raw)
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("invalid stock for sku %q: %s", sku, raw)
		}
	}

	return &domain.Product{
		SKU:         sku,
		Name:        name,
		Description: pick(record, index, "description"),
		Image:       pick(record, index, "image"),
		Price:       price,
		ImportPrice: importPrice,
		Stock:       stock,
		Category:    pick(record, index, "category"),
	}, nil
}

func parsePrice(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, errors.New("negative price")
	}
	return v, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.ToLower(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
