package ui

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"vansdash/domain/table"
	"vansdash/internal"
	"vansdash/internal/charts"
	"vansdash/internal/metrics"
	"vansdash/internal/pivot"
	"vansdash/internal/report"
)

// Source modes for the workbook picker.
const (
	sourceIncluded = "included"
	sourceUpload   = "upload"
)

// viewState is the outcome of one pipeline run: the filtered view plus
// everything the page needs to re-render the controls that produced it.
type viewState struct {
	Source string
	Token  string

	Table *table.Table
	View  *table.Table

	// Error halts the page with a message; Notice renders a neutral
	// waiting state (e.g. upload mode with nothing uploaded yet).
	Error  string
	Notice string

	Filters  []filterControl
	AgeMin   float64
	AgeMax   float64
	AgeLow   float64
	AgeHigh  float64
	HasAge   bool
	Applied  bool
	RawQuery string
}

// filterControl is one categorical multi-select.
type filterControl struct {
	Column   string
	Options  []string
	Selected map[string]bool
}

// resolveView runs load → filter for the current request.
func (s *Server) resolveView(c *gin.Context) viewState {
	state := viewState{
		Source:   c.DefaultQuery("source", sourceIncluded),
		Token:    c.Query("token"),
		RawQuery: c.Request.URL.RawQuery,
	}

	switch state.Source {
	case sourceUpload:
		if state.Token == "" {
			state.Notice = "Upload an Excel workbook (.xlsx) to begin."
			return state
		}
		s.uploadsMu.RLock()
		data, ok := s.uploads[state.Token]
		s.uploadsMu.RUnlock()
		if !ok {
			state.Notice = "Upload an Excel workbook (.xlsx) to begin."
			return state
		}
		t, err := s.loader.LoadBytes(data)
		if err != nil {
			state.Error = err.Error()
			return state
		}
		state.Table = t
	default:
		state.Source = sourceIncluded
		t, err := s.loader.LoadFile(s.cfg.Paths.ExcelFile)
		if err != nil {
			state.Error = "Included file not found."
			return state
		}
		state.Table = t
	}

	sel := s.parseSelection(c, &state)
	state.View = sel.Apply(state.Table)
	return state
}

// parseSelection rebuilds the filter selection from query parameters.
// Until the sidebar form has been submitted once ("applied"), every
// filter defaults to all-selected / full range.
func (s *Server) parseSelection(c *gin.Context, state *viewState) table.Selection {
	state.Applied = c.Query("applied") == "1"
	sel := table.NewSelection()

	for _, col := range table.CategoricalFilterColumns {
		if !state.Table.HasColumn(col) {
			continue
		}
		options := state.Table.Distinct(col)
		selected := options
		if state.Applied {
			selected = c.QueryArray(col)
		}
		sel.Categorical[col] = selected

		selectedSet := make(map[string]bool, len(selected))
		for _, v := range selected {
			selectedSet[v] = true
		}
		state.Filters = append(state.Filters, filterControl{
			Column:   col,
			Options:  options,
			Selected: selectedSet,
		})
	}

	if state.Table.HasColumn(table.NumericFilterColumn) {
		ages := state.Table.Floats(table.NumericFilterColumn)
		if len(ages) > 0 {
			min, _ := stats.Min(ages)
			max, _ := stats.Max(ages)
			state.HasAge = true
			state.AgeMin, state.AgeMax = min, max
			state.AgeLow, state.AgeHigh = min, max
			if state.Applied {
				state.AgeLow = queryFloat(c, "age_min", min)
				state.AgeHigh = queryFloat(c, "age_max", max)
			}
			sel.Ranges[table.NumericFilterColumn] = table.Range{Min: state.AgeLow, Max: state.AgeHigh}
		}
	}

	return sel
}

func queryFloat(c *gin.Context, key string, fallback float64) float64 {
	if v, ok := table.ParseNumber(c.Query(key)); ok {
		return v
	}
	return fallback
}

// handleDashboard renders the full dashboard page.
func (s *Server) handleDashboard(c *gin.Context) {
	state := s.resolveView(c)
	data := gin.H{
		"Title":  "Vans Data Interactive Dashboard",
		"State":  state,
		"About":  aboutHTML(),
		"Preset": c.Query("preset"),
	}

	if state.Error != "" || state.Notice != "" {
		c.HTML(http.StatusOK, "dashboard.html", data)
		return
	}

	specs := charts.Build(state.View)
	snippets := make([]chartSnippet, len(specs))
	for i, spec := range specs {
		snippets[i] = chartSnippet{Title: spec.Title, Snippet: spec.Snippet}
	}

	data["Metrics"] = metrics.Compute(state.View)
	data["Charts"] = snippets
	data["Presets"] = pivot.Presets
	data["RowCount"] = state.View.RowCount()
	data["TotalCount"] = state.Table.RowCount()
	c.HTML(http.StatusOK, "dashboard.html", data)
}

type chartSnippet struct {
	Title   string
	Snippet template.HTML
}

// handleUpload stores an uploaded workbook in memory and redirects the
// session to it.
func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("workbook")
	if err != nil {
		// No file picked yet; wait for input.
		c.Redirect(http.StatusSeeOther, "/?source=upload")
		return
	}
	f, err := file.Open()
	if err != nil {
		c.String(http.StatusBadRequest, "failed to open upload: %v", err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.String(http.StatusBadRequest, "failed to read upload: %v", err)
		return
	}

	token := uuid.NewString()
	s.uploadsMu.Lock()
	s.uploads[token] = data
	s.uploadsMu.Unlock()

	internal.DefaultLogger.Info("[Upload] Stored workbook %s (%d bytes) as %s", file.Filename, len(data), token)
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/?source=%s&token=%s", sourceUpload, token))
}

// handlePivot serves the pivot widget artifact for the current view.
// Failures render inline; the hosting page keeps working.
func (s *Server) handlePivot(c *gin.Context) {
	state := s.resolveView(c)
	if state.Error != "" || state.Notice != "" {
		c.String(http.StatusOK, "No data loaded.")
		return
	}

	preset := pivot.FindPreset(c.Query("preset"))
	artifact, err := s.pivots.Generate(state.View, preset)
	if err != nil {
		internal.DefaultLogger.Error("[Pivot] Generation failed: %v", err)
		c.String(http.StatusOK, "Pivot error: %v", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(artifact))
}

// handleExport streams the PDF snapshot of the current view.
func (s *Server) handleExport(c *gin.Context) {
	state := s.resolveView(c)
	if state.Error != "" || state.Notice != "" {
		c.String(http.StatusConflict, "No data loaded; nothing to export.")
		return
	}

	snap := report.Snapshot{
		Metrics: metrics.Compute(state.View),
		Charts:  charts.Build(state.View),
		Now:     time.Now(),
	}
	pdf, err := report.Export(snap)
	if err != nil {
		internal.DefaultLogger.Error("[Export] Failed: %v", err)
		c.String(http.StatusInternalServerError, "Export failed: %v", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="dashboard_snapshot.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
