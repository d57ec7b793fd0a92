package excel

import (
	"bytes"
	"fmt"
	"time"

	"vansdash/domain/table"
	"vansdash/internal"
	"vansdash/internal/errors"

	"github.com/xuri/excelize/v2"
)

// headerDepth is the multi-row header depth tried first; sheets that
// cannot support it fall back to a single header row.
const headerDepth = 3

// Parse reads every sheet of an .xlsx workbook and concatenates them
// into one normalized table. Sheet origin is not tracked; rows are
// re-indexed sequentially by position in the result.
func Parse(data []byte) (*table.Table, error) {
	start := time.Now()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.WorkbookError("workbook has no sheets")
	}

	parsed := make([]*table.Table, 0, len(sheets))
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read sheet %q", sheet)
		}

		t, err := readSheet(rows, headerDepth)
		if err != nil {
			// Multi-row header did not fit; retry flat. Not surfaced.
			t, err = readSheet(rows, 1)
			if err != nil {
				internal.DefaultLogger.Warn("[Workbook] Skipping unreadable sheet %q: %v", sheet, err)
				continue
			}
		}
		parsed = append(parsed, t)
	}

	if len(parsed) == 0 {
		return nil, errors.WorkbookError("no readable sheets in workbook")
	}

	result := table.Concat(parsed...)
	internal.DefaultLogger.Info("[Workbook] Parsed %d sheets into %d rows x %d columns in %.2fms",
		len(parsed), result.RowCount(), len(result.Columns),
		float64(time.Since(start).Nanoseconds())/1e6)
	return result, nil
}

// readSheet builds a table from raw sheet rows using the given header
// depth. It fails when the sheet cannot supply that many header rows.
func readSheet(rows [][]string, depth int) (*table.Table, error) {
	if len(rows) < depth {
		return nil, fmt.Errorf("sheet has %d rows, need %d header rows", len(rows), depth)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return nil, fmt.Errorf("sheet has no columns")
	}

	columns := headerLabels(rows[:depth], width)

	dataRows := make([]table.Row, 0, len(rows)-depth)
	for _, raw := range rows[depth:] {
		row := make(table.Row, len(columns))
		for j, col := range columns {
			if j < len(raw) {
				row[col] = raw[j]
			}
		}
		dataRows = append(dataRows, row)
	}

	return table.New(columns, dataRows), nil
}

// headerLabels assembles per-column composite labels from the header
// rows and flattens them. Upper header levels are forward-filled the
// way spreadsheet parsers expand merged cells; gaps become the missing
// marker so normalization discards them.
func headerLabels(header [][]string, width int) []string {
	levels := make([][]string, len(header))
	for i, row := range header {
		level := make([]string, width)
		last := ""
		for j := 0; j < width; j++ {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			if i < len(header)-1 {
				// Only upper levels carry merged spans.
				if cell != "" {
					last = cell
				}
				cell = last
			}
			if cell == "" {
				cell = "nan"
			}
			level[j] = cell
		}
		levels[i] = level
	}

	labels := make([][]string, width)
	for j := 0; j < width; j++ {
		parts := make([]string, len(levels))
		for i := range levels {
			parts[i] = levels[i][j]
		}
		labels[j] = parts
	}
	return table.FlattenColumns(labels)
}
