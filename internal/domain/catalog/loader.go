package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadReport lists rows that were dropped during a load.
type LoadReport struct {
	Loaded  int
	Skipped []RowError
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string) (*Catalog, LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("open catalog %q: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// Load reads a CSV table with a header row. Missing required columns fail the
// whole load with a *SchemaError. A row whose price is missing, unparseable or
// negative is skipped and recorded in the report; one bad row never aborts
// the load. An optional "id" column provides item IDs, otherwise IDs are
// derived from the row number.
func Load(r io.Reader) (*Catalog, LoadReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, LoadReport{}, &SchemaError{Missing: append([]string(nil), RequiredColumns...)}
	}
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("read catalog header: %w", err)
	}

	columns := indexColumns(header)
	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, LoadReport{}, &SchemaError{Missing: missing}
	}

	var (
		items  []Item
		report LoadReport
		row    int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			report.Skipped = append(report.Skipped, RowError{Row: row, Reason: err.Error()})
			continue
		}

		item, rowErr := parseRow(record, columns, row)
		if rowErr != nil {
			report.Skipped = append(report.Skipped, *rowErr)
			continue
		}
		items = append(items, item)
	}

	report.Loaded = len(items)
	return New(items), report, nil
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	return columns
}

func parseRow(record []string, columns map[string]int, row int) (Item, *RowError) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rawPrice := strings.TrimPrefix(field("price"), "$")
	price, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil {
		return Item{}, &RowError{Row: row, Reason: fmt.Sprintf("invalid price %q", field("price"))}
	}
	if price < 0 {
		return Item{}, &RowError{Row: row, Reason: fmt.Sprintf("negative price %v", price)}
	}

	id := field("id")
	if id == "" {
		id = fmt.Sprintf("gift-%d", row)
	}

	return Item{
		ID:          id,
		Name:        field("product_name"),
		Price:       price,
		Category:    field("category"),
		Tags:        field("tags"),
		Description: field("description"),
		Link:        field("link"),
	}, nil
}
