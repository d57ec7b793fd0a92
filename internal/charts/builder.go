// Package charts builds the dashboard's fixed chart sequence from a
// filtered view. Each spec carries an interactive snippet for the page
// and a raster renderer for the PDF export; specs whose source columns
// are absent (or hold no plottable data) are omitted silently.
package charts

import (
	"html/template"
	"math"
	"sort"

	"vansdash/domain/table"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
	"github.com/montanaflynn/stats"
	gonumstat "gonum.org/v1/gonum/stat"
)

// histogramBins is the fixed bin count for the age distribution.
const histogramBins = 10

// Spec is one named, renderable visualization derived from the
// filtered view. Ephemeral: built fresh on every interaction.
type Spec struct {
	ID       string
	Title    string
	FileName string
	Snippet  template.HTML
	Raster   func() ([]byte, error)
}

// Build produces the fixed conditional chart sequence over the view.
func Build(view *table.Table) []Spec {
	var specs []Spec

	if s, ok := employmentShare(view); ok {
		specs = append(specs, s)
	}
	if s, ok := deliveriesByCompany(view); ok {
		specs = append(specs, s)
	}
	if s, ok := ageHistogram(view); ok {
		specs = append(specs, s)
	}
	if s, ok := incomeByEmployment(view); ok {
		specs = append(specs, s)
	}
	if s, ok := expensesByCompany(view); ok {
		specs = append(specs, s)
	}
	return specs
}

// employmentShare is the proportion chart of employment-status counts.
func employmentShare(view *table.Table) (Spec, bool) {
	if !view.HasColumn(table.ColEmploymentStatus) {
		return Spec{}, false
	}
	labels, counts := valueCounts(view, table.ColEmploymentStatus)
	if len(labels) == 0 {
		return Spec{}, false
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Employment Status Share"}),
		charts.WithInitializationOpts(opts.Initialization{Height: chartHeight}),
	)
	items := make([]opts.PieData, len(labels))
	for i, l := range labels {
		items[i] = opts.PieData{Name: l, Value: counts[i]}
	}
	pie.AddSeries("Share", items)

	return Spec{
		ID:       "employment-share",
		Title:    "Employment Status Share",
		FileName: "pie.png",
		Snippet:  renderSnippet(pie),
		Raster:   func() ([]byte, error) { return rasterPie(labels, counts) },
	}, true
}

// deliveriesByCompany is the bar chart of mean deliveries per day
// grouped by company.
func deliveriesByCompany(view *table.Table) (Spec, bool) {
	if !view.HasColumn(table.ColCompany) || !view.HasColumn(table.ColDeliveries) {
		return Spec{}, false
	}
	companies, means := groupMeans(view, table.ColCompany, table.ColDeliveries)
	if len(companies) == 0 {
		return Spec{}, false
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Deliveries per Day by Company"}),
		charts.WithInitializationOpts(opts.Initialization{Height: chartHeight}),
	)
	data := make([]opts.BarData, len(means))
	for i, m := range means {
		data[i] = opts.BarData{Value: m}
	}
	bar.SetXAxis(companies).AddSeries("Deliveries per day", data)

	return Spec{
		ID:       "deliveries-by-company",
		Title:    "Deliveries per Day by Company",
		FileName: "deliveries.png",
		Snippet:  renderSnippet(bar),
		Raster:   func() ([]byte, error) { return rasterBars("Deliveries per Day by Company", companies, means) },
	}, true
}

// ageHistogram is the 10-bin age distribution.
func ageHistogram(view *table.Table) (Spec, bool) {
	if !view.HasColumn(table.ColAge) {
		return Spec{}, false
	}
	ages := view.Floats(table.ColAge)
	if len(ages) == 0 {
		return Spec{}, false
	}
	binLabels, binCounts := histogram(ages, histogramBins)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Age Distribution"}),
		charts.WithInitializationOpts(opts.Initialization{Height: chartHeight}),
	)
	data := make([]opts.BarData, len(binCounts))
	for i, c := range binCounts {
		data[i] = opts.BarData{Value: c}
	}
	bar.SetXAxis(binLabels).AddSeries("Respondents", data)

	return Spec{
		ID:       "age-distribution",
		Title:    "Age Distribution",
		FileName: "age.png",
		Snippet:  renderSnippet(bar),
		Raster:   func() ([]byte, error) { return rasterHistogram("Age Distribution", ages, histogramBins) },
	}, true
}

// incomeByEmployment is the box plot of net income grouped by
// employment status.
func incomeByEmployment(view *table.Table) (Spec, bool) {
	if !view.HasColumn(table.ColNetIncome) || !view.HasColumn(table.ColEmploymentStatus) {
		return Spec{}, false
	}
	groups, values := groupValues(view, table.ColEmploymentStatus, table.ColNetIncome)
	if len(groups) == 0 {
		return Spec{}, false
	}

	bp := charts.NewBoxPlot()
	bp.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Net Income by Employment Status"}),
		charts.WithInitializationOpts(opts.Initialization{Height: chartHeight}),
	)
	data := make([]opts.BoxPlotData, len(groups))
	for i, g := range groups {
		s := fiveNumber(values[g])
		data[i] = opts.BoxPlotData{Value: []interface{}{s[0], s[1], s[2], s[3], s[4]}}
	}
	bp.SetXAxis(groups).AddSeries("Net Income", data)

	return Spec{
		ID:       "income-by-employment",
		Title:    "Net Income by Employment Status",
		FileName: "income.png",
		Snippet:  renderSnippet(bp),
		Raster:   func() ([]byte, error) { return rasterBoxes("Net Income by Employment Status", groups, values) },
	}, true
}

// expensesByCompany reshapes the four wide expense columns into long
// (company, category, mean) form and renders them stacked.
func expensesByCompany(view *table.Table) (Spec, bool) {
	if !view.HasColumn(table.ColFuelExpenses) || !view.HasColumn(table.ColCompany) {
		return Spec{}, false
	}
	long := meltExpenses(view)
	if len(long.Companies) == 0 {
		return Spec{}, false
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Average Expenses by Company"}),
		charts.WithInitializationOpts(opts.Initialization{Height: chartHeight}),
		charts.WithLegendOpts(opts.Legend{Show: boolPtr(true), Bottom: "0"}),
	)
	bar.SetXAxis(long.Companies)
	for _, cat := range long.Categories {
		data := make([]opts.BarData, len(long.Companies))
		for i, company := range long.Companies {
			data[i] = opts.BarData{Value: long.Mean(company, cat)}
		}
		bar.AddSeries(cat, data, charts.WithBarChartOpts(opts.BarChart{Stack: "expenses"}))
	}

	return Spec{
		ID:       "expenses-by-company",
		Title:    "Average Expenses by Company",
		FileName: "expenses.png",
		Snippet:  renderSnippet(bar),
		Raster:   func() ([]byte, error) { return rasterStacked("Average Expenses by Company", long) },
	}, true
}

// LongExpenses is the long-form reshape of the wide expense columns:
// one (company, category) mean per cell.
type LongExpenses struct {
	Companies  []string
	Categories []string
	means      map[string]map[string]float64
}

// Mean returns the mean expense for a company/category pair.
func (l LongExpenses) Mean(company, category string) float64 {
	return l.means[company][category]
}

// meltExpenses computes per-company means of each expense column that
// the view actually carries.
func meltExpenses(view *table.Table) LongExpenses {
	long := LongExpenses{means: make(map[string]map[string]float64)}
	for _, col := range table.ExpenseColumns {
		if view.HasColumn(col) {
			long.Categories = append(long.Categories, col)
		}
	}

	long.Companies = view.Distinct(table.ColCompany)
	for _, company := range long.Companies {
		long.means[company] = make(map[string]float64)
		sel := table.NewSelection()
		sel.Categorical[table.ColCompany] = []string{company}
		group := sel.Apply(view)
		for _, cat := range long.Categories {
			mean, _ := stats.Mean(group.Floats(cat))
			long.means[company][cat] = mean
		}
	}
	return long
}

// valueCounts tallies the non-missing values of a column, sorted by
// value for stable rendering.
func valueCounts(view *table.Table, column string) ([]string, []float64) {
	counts := make(map[string]int)
	for _, row := range view.Rows {
		v := row[column]
		if table.IsMissing(v) {
			continue
		}
		counts[v]++
	}
	labels := make([]string, 0, len(counts))
	for v := range counts {
		labels = append(labels, v)
	}
	sort.Strings(labels)
	out := make([]float64, len(labels))
	for i, l := range labels {
		out[i] = float64(counts[l])
	}
	return labels, out
}

// groupMeans returns the mean of valCol per distinct byCol value.
func groupMeans(view *table.Table, byCol, valCol string) ([]string, []float64) {
	groups, values := groupValues(view, byCol, valCol)
	means := make([]float64, len(groups))
	for i, g := range groups {
		means[i], _ = stats.Mean(values[g])
	}
	return groups, means
}

// groupValues buckets the numeric values of valCol by byCol. Groups
// without any numeric value are dropped.
func groupValues(view *table.Table, byCol, valCol string) ([]string, map[string][]float64) {
	values := make(map[string][]float64)
	for _, row := range view.Rows {
		g := row[byCol]
		if table.IsMissing(g) {
			continue
		}
		if v, ok := table.ParseNumber(row[valCol]); ok {
			values[g] = append(values[g], v)
		}
	}
	groups := make([]string, 0, len(values))
	for g := range values {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups, values
}

// histogram bins values into n equal-width bins over the observed
// range and labels each bin by its bounds.
func histogram(values []float64, n int) ([]string, []float64) {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	min, max := sorted[0], sorted[len(sorted)-1]
	if min == max {
		// All identical: one bin holds everything.
		return []string{formatBin(min, max)}, []float64{float64(len(values))}
	}

	dividers := make([]float64, n+1)
	step := (max - min) / float64(n)
	for i := range dividers {
		dividers[i] = min + float64(i)*step
	}
	// The top divider must sit strictly above the maximum sample.
	dividers[n] = math.Nextafter(max, math.Inf(1))
	counts := gonumstat.Histogram(nil, dividers, sorted, nil)

	labels := make([]string, n)
	for i := 0; i < n; i++ {
		labels[i] = formatBin(dividers[i], dividers[i+1])
	}
	return labels, counts
}

// fiveNumber returns min, q1, median, q3, max.
func fiveNumber(values []float64) [5]float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return [5]float64{
		sorted[0],
		gonumstat.Quantile(0.25, gonumstat.Empirical, sorted, nil),
		gonumstat.Quantile(0.5, gonumstat.Empirical, sorted, nil),
		gonumstat.Quantile(0.75, gonumstat.Empirical, sorted, nil),
		sorted[len(sorted)-1],
	}
}

type snippetRenderer interface {
	RenderSnippet() render.ChartSnippet
}

// renderSnippet turns a chart into an embeddable HTML fragment; the
// hosting page loads the echarts runtime once.
func renderSnippet(c snippetRenderer) template.HTML {
	s := c.RenderSnippet()
	return template.HTML(s.Element + "\n" + s.Script)
}
