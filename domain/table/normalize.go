package table

import (
	"fmt"
	"strings"
)

// missingMarker is the textual form a missing header or cell takes
// after a spreadsheet round-trip.
const missingMarker = "nan"

// unnamedPlaceholder is the label prefix spreadsheet parsers assign to
// columns without a header cell.
const unnamedPlaceholder = "Unnamed: "

// FlattenColumn collapses one multi-row header label into a single
// string: parts whose text is exactly the missing marker are discarded
// and the rest joined with " - ". An all-missing composite falls back
// to the stringified original so the column keeps a stable name.
func FlattenColumn(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == missingMarker {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return strings.TrimSpace(fmt.Sprintf("%v", parts))
	}
	return strings.TrimSpace(strings.Join(kept, " - "))
}

// FlattenColumns normalizes a full header: composite labels are
// flattened, single labels trimmed, and the unnamed-column placeholder
// stripped from every result. It always produces one string per label.
func FlattenColumns(labels [][]string) []string {
	out := make([]string, len(labels))
	for i, label := range labels {
		var name string
		if len(label) == 1 {
			name = strings.TrimSpace(label[0])
		} else {
			name = FlattenColumn(label)
		}
		out[i] = stripUnnamed(name)
	}
	return out
}

func stripUnnamed(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, unnamedPlaceholder, ""))
}
