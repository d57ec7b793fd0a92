package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
)

// aboutText is the short blurb shown under the dashboard title.
const aboutText = `Slice, dice, visualize, and export the Vans delivery-worker survey.

* **Filters** apply to every metric, pivot, and chart on the page.
* **Quick pivot presets** pre-configure the pivot table; drag fields in the widget to go further.
* **Export** downloads a PDF snapshot of the current view.`

// aboutHTML renders the blurb to embeddable HTML.
func aboutHTML() template.HTML {
	return template.HTML(markdown.ToHTML([]byte(aboutText), nil, nil))
}
