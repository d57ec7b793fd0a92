package table

import (
	"sort"
	"strconv"
	"strings"
)

// Row holds one survey response keyed by normalized column name.
type Row map[string]string

// Table is a row-oriented table of survey responses. Columns keeps the
// original workbook order; Rows is never mutated after load, filtered
// views are fresh copies.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates a table from an ordered column list and rows.
func New(columns []string, rows []Row) *Table {
	return &Table{Columns: columns, Rows: rows}
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Distinct returns the sorted distinct non-missing values of a column.
func (t *Table) Distinct(column string) []string {
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		v := row[column]
		if IsMissing(v) {
			continue
		}
		seen[v] = true
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Floats returns the numeric values of a column, best-effort coerced.
// Blank cells and values that do not parse are skipped.
func (t *Table) Floats(column string) []float64 {
	values := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if f, ok := ParseNumber(row[column]); ok {
			values = append(values, f)
		}
	}
	return values
}

// Records returns the rows as generic maps, the shape the pivot widget
// and chart builders consume.
func (t *Table) Records() []map[string]interface{} {
	records := make([]map[string]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		rec := make(map[string]interface{}, len(t.Columns))
		for _, col := range t.Columns {
			if f, ok := ParseNumber(row[col]); ok {
				rec[col] = f
			} else {
				rec[col] = row[col]
			}
		}
		records[i] = rec
	}
	return records
}

// Concat appends the rows of other tables column-aligned by name. The
// result's column set is the first-seen ordered union; cells absent
// from a source sheet stay blank. Row identity is positional, sheet
// origin is not tracked.
func Concat(tables ...*Table) *Table {
	var columns []string
	seen := make(map[string]bool)
	total := 0
	for _, t := range tables {
		for _, c := range t.Columns {
			if !seen[c] {
				seen[c] = true
				columns = append(columns, c)
			}
		}
		total += len(t.Rows)
	}

	rows := make([]Row, 0, total)
	for _, t := range tables {
		rows = append(rows, t.Rows...)
	}
	return &Table{Columns: columns, Rows: rows}
}

// IsMissing reports whether a cell counts as a missing value: blank
// after trimming, or the literal "nan" marker spreadsheet exports
// leave behind.
func IsMissing(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, missingMarker)
}

// ParseNumber coerces a cell to a float. Thousands separators are
// tolerated since workbook exports often carry them.
func ParseNumber(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, missingMarker) {
		return 0, false
	}
	v = strings.ReplaceAll(v, ",", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
