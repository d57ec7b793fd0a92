package table

import (
	"testing"
)

func sampleTable() *Table {
	return &Table{
		Columns: []string{ColCompany, ColEmploymentStatus, ColAge},
		Rows: []Row{
			{ColCompany: "Talabat", ColEmploymentStatus: "Full-time", ColAge: "25"},
			{ColCompany: "Talabat", ColEmploymentStatus: "Part-time", ColAge: "31"},
			{ColCompany: "Mrsool", ColEmploymentStatus: "Full-time", ColAge: "42"},
			{ColCompany: "Breadfast", ColEmploymentStatus: "Freelance", ColAge: "nan"},
		},
	}
}

func TestSelectionApplyCategorical(t *testing.T) {
	tbl := sampleTable()

	sel := NewSelection()
	sel.Categorical[ColCompany] = []string{"Talabat"}

	got := sel.Apply(tbl)
	if got.RowCount() != 2 {
		t.Fatalf("Expected 2 rows, got %d", got.RowCount())
	}
	for _, row := range got.Rows {
		if row[ColCompany] != "Talabat" {
			t.Errorf("Unexpected company in filtered view: %q", row[ColCompany])
		}
	}
}

func TestSelectionApplyConjunctive(t *testing.T) {
	tbl := sampleTable()

	sel := NewSelection()
	sel.Categorical[ColCompany] = []string{"Talabat"}
	sel.Categorical[ColEmploymentStatus] = []string{"Full-time"}

	got := sel.Apply(tbl)
	if got.RowCount() != 1 {
		t.Fatalf("Expected 1 row, got %d", got.RowCount())
	}
}

func TestSelectionApplyRange(t *testing.T) {
	tbl := sampleTable()

	sel := NewSelection()
	sel.Ranges[ColAge] = Range{Min: 25, Max: 31}

	got := sel.Apply(tbl)

	// Bounds are inclusive; the non-numeric age row drops out.
	if got.RowCount() != 2 {
		t.Fatalf("Expected 2 rows, got %d", got.RowCount())
	}
}

func TestSelectionApplyEmptyAcceptsAll(t *testing.T) {
	tbl := sampleTable()

	got := NewSelection().Apply(tbl)
	if got.RowCount() != tbl.RowCount() {
		t.Fatalf("Empty selection changed row count: %d != %d", got.RowCount(), tbl.RowCount())
	}
}

func TestSelectionApplyAbsentColumnSkipped(t *testing.T) {
	tbl := sampleTable()

	sel := NewSelection()
	sel.Categorical["No Such Column"] = []string{"anything"}
	sel.Ranges["Another Missing"] = Range{Min: 0, Max: 1}

	got := sel.Apply(tbl)
	if got.RowCount() != tbl.RowCount() {
		t.Fatalf("Absent-column filter removed rows: %d != %d", got.RowCount(), tbl.RowCount())
	}
}

func TestSelectionApplyExplicitEmptySet(t *testing.T) {
	tbl := sampleTable()

	sel := NewSelection()
	sel.Categorical[ColCompany] = []string{}

	got := sel.Apply(tbl)
	if got.RowCount() != 0 {
		t.Fatalf("Explicit empty value set should reject every row, got %d", got.RowCount())
	}
}

func TestSelectionApplyPreservesColumns(t *testing.T) {
	tbl := sampleTable()

	sel := NewSelection()
	sel.Categorical[ColCompany] = []string{"Mrsool"}

	got := sel.Apply(tbl)
	if len(got.Columns) != len(tbl.Columns) {
		t.Fatalf("Column set changed: %v", got.Columns)
	}
	for i, col := range tbl.Columns {
		if got.Columns[i] != col {
			t.Errorf("Column %d = %q, want %q", i, got.Columns[i], col)
		}
	}
}

func TestDistinct(t *testing.T) {
	tbl := sampleTable()

	got := tbl.Distinct(ColCompany)
	want := []string{"Breadfast", "Mrsool", "Talabat"}

	if len(got) != len(want) {
		t.Fatalf("Distinct(%q) = %v, want %v", ColCompany, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Distinct[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFloatsSkipsNonNumeric(t *testing.T) {
	tbl := sampleTable()

	got := tbl.Floats(ColAge)
	if len(got) != 3 {
		t.Fatalf("Expected 3 numeric ages, got %d (%v)", len(got), got)
	}
}

func TestConcatUnionsColumns(t *testing.T) {
	a := &Table{
		Columns: []string{ColCompany, ColAge},
		Rows:    []Row{{ColCompany: "Talabat", ColAge: "25"}},
	}
	b := &Table{
		Columns: []string{ColCompany, ColDeliveries},
		Rows:    []Row{{ColCompany: "Mrsool", ColDeliveries: "18"}},
	}

	got := Concat(a, b)
	if got.RowCount() != 2 {
		t.Fatalf("Expected 2 rows, got %d", got.RowCount())
	}

	want := []string{ColCompany, ColAge, ColDeliveries}
	if len(got.Columns) != len(want) {
		t.Fatalf("Columns = %v, want %v", got.Columns, want)
	}
	for i := range want {
		if got.Columns[i] != want[i] {
			t.Errorf("Column %d = %q, want %q", i, got.Columns[i], want[i])
		}
	}
}
