// Package pivot hands the filtered view to the embedded PivotTable.js
// widget. The widget is an external collaborator with a narrow
// contract: serialize the table, generate a self-contained markup
// artifact, embed it. All aggregation happens in the browser.
package pivot

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"
	"os"
	"path/filepath"
	"sync"

	"vansdash/domain/table"
	"vansdash/internal/errors"
)

//go:embed templates/pivottable.html
var widgetTemplate string

// artifactName is the markup artifact the widget round-trips through
// local storage.
const artifactName = "pivottable.html"

// Preset is a named pivot configuration pre-applied to the widget's
// initial state. The user can still reconfigure interactively.
type Preset struct {
	Name       string
	Rows       []string
	Cols       []string
	Vals       []string
	Aggregator string
}

// Presets are the quick configurations offered on the dashboard, in
// display order.
var Presets = []Preset{
	{
		Name:       "Employment Status × Benefits",
		Rows:       []string{table.ColEmploymentStatus},
		Cols:       []string{"Benefits"},
		Aggregator: "Count",
	},
	{
		Name:       "Company × Avg Deliveries",
		Rows:       []string{table.ColCompany},
		Vals:       []string{table.ColDeliveries},
		Aggregator: "Average",
	},
	{
		Name:       "Areas Covered × Avg Net Income",
		Rows:       []string{table.ColAreasCovered},
		Vals:       []string{table.ColNetIncome},
		Aggregator: "Average",
	},
	{
		Name:       "Company × Bicycle Ownership",
		Rows:       []string{table.ColCompany},
		Cols:       []string{"Bicycle Ownership"},
		Aggregator: "Count",
	},
	{
		Name:       "Employment Status × Overtime Pay",
		Rows:       []string{table.ColEmploymentStatus},
		Cols:       []string{"Overtime Pay"},
		Aggregator: "Count",
	},
	{
		Name:       "Company × Ramadan Incentives",
		Rows:       []string{table.ColCompany},
		Cols:       []string{"Ramadan Incentives"},
		Aggregator: "Count",
	},
}

// FindPreset resolves a preset by name; nil means no preset.
func FindPreset(name string) *Preset {
	for i := range Presets {
		if Presets[i].Name == name {
			return &Presets[i]
		}
	}
	return nil
}

// Generator writes pivot artifacts under a working directory and reads
// them back for embedding. All requests share one artifact path, so
// the write/read round-trip is serialized.
type Generator struct {
	mu   sync.Mutex
	dir  string
	tmpl *template.Template
}

// NewGenerator creates a generator writing artifacts under dir; an
// empty dir means the OS temp dir.
func NewGenerator(dir string) (*Generator, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "vansdash")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create pivot artifact dir")
	}
	tmpl, err := template.New(artifactName).Parse(widgetTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse pivot widget template")
	}
	return &Generator{dir: dir, tmpl: tmpl}, nil
}

type widgetData struct {
	Records    template.JS
	Rows       template.JS
	Cols       template.JS
	Vals       template.JS
	Aggregator string
}

// Generate serializes the view, writes the widget artifact to local
// storage, and reads it back for embedding. A nil preset yields the
// widget's default (unconfigured) state.
func (g *Generator) Generate(view *table.Table, preset *Preset) (string, error) {
	data, err := g.buildWidget(view, preset)
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	path := filepath.Join(g.dir, artifactName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write pivot artifact")
	}
	artifact, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to read pivot artifact back")
	}
	return string(artifact), nil
}

func (g *Generator) buildWidget(view *table.Table, preset *Preset) ([]byte, error) {
	records, err := json.Marshal(view.Records())
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize view for pivot widget")
	}

	cfg := Preset{Aggregator: "Count"}
	if preset != nil {
		cfg = *preset
	}
	rows, err := jsonList(cfg.Rows)
	if err != nil {
		return nil, err
	}
	cols, err := jsonList(cfg.Cols)
	if err != nil {
		return nil, err
	}
	vals, err := jsonList(cfg.Vals)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = g.tmpl.Execute(&buf, widgetData{
		Records:    template.JS(records),
		Rows:       rows,
		Cols:       cols,
		Vals:       vals,
		Aggregator: cfg.Aggregator,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render pivot widget")
	}
	return buf.Bytes(), nil
}

func jsonList(values []string) (template.JS, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", errors.Wrap(err, "failed to serialize pivot configuration")
	}
	return template.JS(b), nil
}
