package catalog

import (
	"fmt"
	"strings"
)

// RequiredColumns lists the header fields every catalog table must carry.
var RequiredColumns = []string{"product_name", "price", "category", "tags", "description", "link"}

// SchemaError is returned when the catalog table is missing required columns.
// It is fatal at load time.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("catalog schema: missing required columns [%s]", strings.Join(e.Missing, ", "))
}

// RowError describes a row that was skipped while loading.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}
