// Package metrics computes the dashboard's KPI panel over a filtered
// view. Every metric is independently optional: it renders only when
// its source column exists in the loaded workbook.
package metrics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"vansdash/domain/table"

	"github.com/montanaflynn/stats"
)

// ModeNotApplicable is rendered when the view has no rows to take a
// mode over.
const ModeNotApplicable = "N/A"

// Metric is one KPI card: a label and its formatted value.
type Metric struct {
	Label string
	Value string
}

// Compute returns the KPI metrics for the view, in display order.
// Metrics whose source column is absent are omitted.
func Compute(view *table.Table) []Metric {
	var panel []Metric

	if view.HasColumn(table.ColDeliveries) {
		mean, _ := stats.Mean(view.Floats(table.ColDeliveries))
		panel = append(panel, Metric{
			Label: "Avg Deliveries/day",
			Value: strconv.FormatFloat(round1(mean), 'f', 1, 64),
		})
	}

	if view.HasColumn(table.ColMedicalInsurance) {
		panel = append(panel, Metric{
			Label: "% with Medical Insurance",
			Value: fmt.Sprintf("%.1f%%", insuredShare(view)),
		})
	}

	if view.HasColumn(table.ColNetIncome) {
		mean, _ := stats.Mean(view.Floats(table.ColNetIncome))
		panel = append(panel, Metric{
			Label: "Avg Net Income",
			Value: fmt.Sprintf("%s EGP", thousands(mean)),
		})
	}

	if view.HasColumn(table.ColEmploymentStatus) {
		panel = append(panel, Metric{
			Label: "Most Common Employment",
			Value: Mode(view, table.ColEmploymentStatus),
		})
	}

	return panel
}

// insuredShare is the percentage of all view rows whose medical
// insurance cell equals the literal "Yes". Rows with a missing cell
// count against the denominator.
func insuredShare(view *table.Table) float64 {
	if view.RowCount() == 0 {
		return 0
	}
	yes := 0
	for _, row := range view.Rows {
		if row[table.ColMedicalInsurance] == "Yes" {
			yes++
		}
	}
	return float64(yes) / float64(view.RowCount()) * 100
}

// Mode returns the most frequent non-missing value of a column, ties
// broken by lexicographic order. An empty view (or an all-missing
// column) yields the not-applicable sentinel.
func Mode(view *table.Table, column string) string {
	if view.RowCount() == 0 {
		return ModeNotApplicable
	}
	counts := make(map[string]int)
	for _, row := range view.Rows {
		v := row[column]
		if table.IsMissing(v) {
			continue
		}
		counts[v]++
	}
	if len(counts) == 0 {
		return ModeNotApplicable
	}

	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Strings(values)

	best := values[0]
	for _, v := range values[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best
}

func round1(v float64) float64 {
	r, _ := stats.Round(v, 1)
	return r
}

// thousands formats a float with zero decimals and comma-separated
// thousands groups, e.g. 12345.6 -> "12,346".
func thousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
