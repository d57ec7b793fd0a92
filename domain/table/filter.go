package table

// CategoricalFilterColumns are the columns the dashboard offers
// multi-select filters for, in display order.
var CategoricalFilterColumns = []string{
	ColCompany,
	ColEmploymentStatus,
	ColAreasCovered,
}

// NumericFilterColumn is the single range-filtered column.
const NumericFilterColumn = ColAge

// Range is an inclusive numeric bound.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Selection is one interaction's filter state: accepted value sets for
// categorical columns and an accepted range for numeric ones. It is
// recreated on every request and never shared.
type Selection struct {
	Categorical map[string][]string
	Ranges      map[string]Range
}

// NewSelection returns an empty selection, which accepts every row.
func NewSelection() Selection {
	return Selection{
		Categorical: make(map[string][]string),
		Ranges:      make(map[string]Range),
	}
}

// Apply restricts t to the rows satisfying every active filter.
// Filters over columns the table does not carry are skipped silently.
// The result shares the column set with t and owns a fresh row slice.
func (s Selection) Apply(t *Table) *Table {
	rows := make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		if s.accepts(t, row) {
			rows = append(rows, row)
		}
	}
	return &Table{Columns: t.Columns, Rows: rows}
}

func (s Selection) accepts(t *Table, row Row) bool {
	for col, accepted := range s.Categorical {
		if !t.HasColumn(col) {
			continue
		}
		if !containsValue(accepted, row[col]) {
			return false
		}
	}
	for col, r := range s.Ranges {
		if !t.HasColumn(col) {
			continue
		}
		v, ok := ParseNumber(row[col])
		if !ok || !r.Contains(v) {
			return false
		}
	}
	return true
}

func containsValue(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
