// Package report renders a dashboard snapshot to PDF: title,
// timestamp, the KPI lines, then every chart rasterized at a fixed
// size. Any single failure aborts the whole export; the scoped temp
// directory is removed either way.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"vansdash/internal/charts"
	"vansdash/internal/errors"
	"vansdash/internal/metrics"
)

const documentTitle = "Vans Data Dashboard Snapshot"

// Chart images are placed at a fixed size on the page (mm).
const (
	imageWidth  = 150
	imageHeight = 94
)

// Snapshot is everything one export captures from the current render.
type Snapshot struct {
	Metrics []metrics.Metric
	Charts  []charts.Spec
	Now     time.Time
}

// Export builds the snapshot document and returns its bytes. Chart
// rasters are staged in a temp directory that is removed before
// returning, on success and on failure.
func Export(snap Snapshot) ([]byte, error) {
	tmpdir, err := os.MkdirTemp("", "vansdash-export-")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create export working dir")
	}
	defer os.RemoveAll(tmpdir)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, documentTitle, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, snap.Now.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	for _, m := range snap.Metrics {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %s", m.Label, m.Value), "", 1, "L", false, 0, "")
	}
	if len(snap.Metrics) > 0 {
		pdf.Ln(6)
	}

	for _, spec := range snap.Charts {
		png, err := spec.Raster()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to rasterize chart %q", spec.Title)
		}
		path := filepath.Join(tmpdir, spec.FileName)
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return nil, errors.Wrapf(err, "failed to stage chart image %q", spec.FileName)
		}
		pdf.ImageOptions(path, -1, -1, imageWidth, imageHeight, true,
			fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to assemble export document")
	}
	return buf.Bytes(), nil
}
