package charts

import (
	"bytes"
	"fmt"
	"image/color"

	chart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"vansdash/internal/errors"
)

// chartHeight is the on-screen height of each interactive chart.
const chartHeight = "360px"

// Raster dimensions match the fixed image size the PDF embeds.
const (
	rasterWidth  = 6 * vg.Inch
	rasterHeight = 3.75 * vg.Inch
)

var seriesPalette = []color.RGBA{
	{R: 0x26, G: 0x77, B: 0xb8, A: 0xff},
	{R: 0xe8, G: 0x6a, B: 0x33, A: 0xff},
	{R: 0x2e, G: 0xa0, B: 0x60, A: 0xff},
	{R: 0xc4, G: 0x3e, B: 0x52, A: 0xff},
}

// rasterPie renders a proportion chart to PNG.
func rasterPie(labels []string, counts []float64) ([]byte, error) {
	values := make([]chart.Value, len(labels))
	for i, l := range labels {
		values[i] = chart.Value{Label: l, Value: counts[i]}
	}
	pie := chart.PieChart{
		Width:  768,
		Height: 480,
		Values: values,
	}
	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "failed to render proportion chart")
	}
	return buf.Bytes(), nil
}

// rasterBars renders one bar per label.
func rasterBars(title string, labels []string, values []float64) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(24))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build bar chart")
	}
	bars.Color = seriesPalette[0]
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)

	return encodePNG(p)
}

// rasterHistogram renders an n-bin histogram of values.
func rasterHistogram(title string, values []float64, bins int) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build histogram")
	}
	h.FillColor = seriesPalette[0]
	p.Add(h)

	return encodePNG(p)
}

// rasterBoxes renders one box plot per group, in group order.
func rasterBoxes(title string, groups []string, values map[string][]float64) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title

	for i, g := range groups {
		box, err := plotter.NewBoxPlot(vg.Points(24), float64(i), plotter.Values(values[g]))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to build box plot for %q", g)
		}
		p.Add(box)
	}
	p.NominalX(groups...)

	return encodePNG(p)
}

// rasterStacked renders the long-form expense means as stacked bars,
// one stack segment per expense category.
func rasterStacked(title string, long LongExpenses) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title

	var prev *plotter.BarChart
	for i, cat := range long.Categories {
		values := make(plotter.Values, len(long.Companies))
		for j, company := range long.Companies {
			values[j] = long.Mean(company, cat)
		}
		bars, err := plotter.NewBarChart(values, vg.Points(24))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to build bars for %q", cat)
		}
		bars.Color = seriesPalette[i%len(seriesPalette)]
		bars.LineStyle.Width = 0
		if prev != nil {
			bars.StackOn(prev)
		}
		p.Add(bars)
		p.Legend.Add(cat, bars)
		prev = bars
	}
	p.NominalX(long.Companies...)
	p.Legend.Top = true

	return encodePNG(p)
}

func encodePNG(p *plot.Plot) ([]byte, error) {
	wt, err := p.WriterTo(rasterWidth, rasterHeight, "png")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode chart image")
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to write chart image")
	}
	return buf.Bytes(), nil
}

func formatBin(lo, hi float64) string {
	return fmt.Sprintf("%.0f-%.0f", lo, hi)
}

func boolPtr(b bool) *bool { return &b }
