package report

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vansdash/internal/charts"
	"vansdash/internal/metrics"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var b strings.Builder
	if err := png.Encode(&b, img); err != nil {
		t.Fatalf("Failed to encode fixture PNG: %v", err)
	}
	return []byte(b.String())
}

func TestExportMetricsOnly(t *testing.T) {
	snap := Snapshot{
		Metrics: []metrics.Metric{
			{Label: "Avg Deliveries/day", Value: "19.5"},
			{Label: "% with Medical Insurance", Value: "75.0%"},
		},
		Now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	out, err := Export(snap)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF") {
		t.Fatal("Export did not produce a PDF document")
	}
}

func TestExportWithCharts(t *testing.T) {
	img := tinyPNG(t)
	snap := Snapshot{
		Charts: []charts.Spec{
			{
				Title:    "Employment Status Share",
				FileName: "pie.png",
				Raster:   func() ([]byte, error) { return img, nil },
			},
		},
		Now: time.Now(),
	}

	out, err := Export(snap)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF") {
		t.Fatal("Export did not produce a PDF document")
	}
}

func TestExportRasterFailureAborts(t *testing.T) {
	before := countExportDirs(t)

	snap := Snapshot{
		Charts: []charts.Spec{
			{
				Title:    "Broken Chart",
				FileName: "broken.png",
				Raster:   func() ([]byte, error) { return nil, fmt.Errorf("render failed") },
			},
		},
		Now: time.Now(),
	}

	if _, err := Export(snap); err == nil {
		t.Fatal("Expected export to fail when a raster fails")
	}

	// The working directory is removed on the failure path too.
	if after := countExportDirs(t); after != before {
		t.Errorf("Failed export left working directories behind: %d before, %d after", before, after)
	}
}

func TestExportCleansWorkingDir(t *testing.T) {
	before := countExportDirs(t)

	snap := Snapshot{
		Metrics: []metrics.Metric{{Label: "Avg Deliveries/day", Value: "19.5"}},
		Now:     time.Now(),
	}
	if _, err := Export(snap); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if after := countExportDirs(t); after != before {
		t.Errorf("Export left working directories behind: %d before, %d after", before, after)
	}
}

func countExportDirs(t *testing.T) int {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "vansdash-export-*"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	return len(matches)
}
