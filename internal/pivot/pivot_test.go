package pivot

import (
	"strings"
	"sync"
	"testing"

	"vansdash/domain/table"
)

func pivotFixture() *table.Table {
	return &table.Table{
		Columns: []string{table.ColCompany, table.ColDeliveries},
		Rows: []table.Row{
			{table.ColCompany: "Talabat", table.ColDeliveries: "20"},
			{table.ColCompany: "Mrsool", table.ColDeliveries: "25"},
		},
	}
}

func TestGenerateEmbedsRecords(t *testing.T) {
	gen, err := NewGenerator(t.TempDir())
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	artifact, err := gen.Generate(pivotFixture(), nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(artifact, "Talabat") || !strings.Contains(artifact, "Mrsool") {
		t.Error("Artifact does not embed the view records")
	}
	if !strings.Contains(artifact, "pivotUI") {
		t.Error("Artifact does not invoke the pivot widget")
	}
	if !strings.Contains(artifact, `"Count"`) {
		t.Error("Default aggregator missing from artifact")
	}
}

func TestGenerateAppliesPreset(t *testing.T) {
	gen, err := NewGenerator(t.TempDir())
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	preset := FindPreset("Company × Avg Deliveries")
	if preset == nil {
		t.Fatal("Expected preset to exist")
	}

	artifact, err := gen.Generate(pivotFixture(), preset)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(artifact, `["Company"]`) {
		t.Error("Preset rows missing from artifact")
	}
	if !strings.Contains(artifact, `["Deliveries per day"]`) {
		t.Error("Preset vals missing from artifact")
	}
	if !strings.Contains(artifact, `"Average"`) {
		t.Error("Preset aggregator missing from artifact")
	}
}

func TestGenerateNumericRecords(t *testing.T) {
	gen, err := NewGenerator(t.TempDir())
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	artifact, err := gen.Generate(pivotFixture(), nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Numeric cells serialize as JSON numbers so browser-side
	// aggregators can average them.
	if !strings.Contains(artifact, `:20`) {
		t.Errorf("Expected numeric delivery value in artifact")
	}
}

func TestGenerateConcurrentRequests(t *testing.T) {
	gen, err := NewGenerator(t.TempDir())
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	// Two views hitting the shared artifact path at once, each with a
	// different preset; every caller must get back its own artifact.
	presets := []*Preset{
		FindPreset("Company × Avg Deliveries"),
		FindPreset("Employment Status × Benefits"),
	}
	markers := []string{`["Deliveries per day"]`, `["Benefits"]`}

	var wg sync.WaitGroup
	for i := range presets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				artifact, err := gen.Generate(pivotFixture(), presets[i])
				if err != nil {
					t.Errorf("Generate failed: %v", err)
					return
				}
				if !strings.Contains(artifact, markers[i]) {
					t.Errorf("Got another request's artifact for preset %q", presets[i].Name)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestFindPresetUnknown(t *testing.T) {
	if got := FindPreset("No Such Preset"); got != nil {
		t.Errorf("Expected nil for unknown preset, got %v", got)
	}
}

func TestPresetsCoverDashboardList(t *testing.T) {
	want := []string{
		"Employment Status × Benefits",
		"Company × Avg Deliveries",
		"Areas Covered × Avg Net Income",
		"Company × Bicycle Ownership",
		"Employment Status × Overtime Pay",
		"Company × Ramadan Incentives",
	}

	if len(Presets) != len(want) {
		t.Fatalf("Expected %d presets, got %d", len(want), len(Presets))
	}
	for i, name := range want {
		if Presets[i].Name != name {
			t.Errorf("Preset %d = %q, want %q", i, Presets[i].Name, name)
		}
	}
}
