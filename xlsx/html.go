package xlsx

import (
	"fmt"
	"html"
	"strings"

	"github.com/unidoc/unioffice/measurement"
)

// pixels per point at 96 dpi
const pxPerPoint = 96.0 / 72.0

// RenderGridHTML renders g as an HTML table for previewing a rubric before
// download. Column widths follow the written workbook.
func RenderGridHTML(g Grid, title string) string {
	var builder strings.Builder

	builder.WriteString(`<style>
`)
	builder.WriteString(`.table { border-collapse: collapse; table-layout: fixed; margin-bottom: 2em; }
`)
	builder.WriteString(`.table td, .table th { padding: 4px 8px; border:1px solid #333; vertical-align:top; white-space:normal; text-align:left; }
`)
	builder.WriteString(`.table th { background-color:#f0f0f0; }
`)
	builder.WriteString(`.table td.empty { background-color:#fafafa; }
`)
	builder.WriteString(`</style>
`)

	totalPx := 0.0
	widths := make([]float64, len(g.Columns))
	for i := range g.Columns {
		w := ScaleColumnWidth
		if i == 0 {
			w = CriterionColumnWidth
		}
		widths[i] = float64(w/measurement.Point) * pxPerPoint
		totalPx += widths[i]
	}

	builder.WriteString(fmt.Sprintf(`<div class="sheet" data-name="%s">
`, html.EscapeString(title)))
	if title != "" {
		builder.WriteString(fmt.Sprintf("<h3>%s</h3>\n", html.EscapeString(title)))
	}
	builder.WriteString(`<div style="width:100%;overflow-x:auto;">
`)
	builder.WriteString(fmt.Sprintf(`<table class="table" style="width:%.0fpx;">
`, totalPx))
	builder.WriteString("  <colgroup>\n")
	for _, w := range widths {
		builder.WriteString(fmt.Sprintf("    <col style=\"width:%.0fpx;\">\n", w))
	}
	builder.WriteString("  </colgroup>\n")

	builder.WriteString("  <tr>\n")
	for _, name := range g.Columns {
		builder.WriteString(fmt.Sprintf("    <th>%s</th>\n", escapeCell(name)))
	}
	builder.WriteString("  </tr>\n")

	for _, row := range g.Rows {
		builder.WriteString("  <tr>\n")
		for _, text := range row {
			if strings.TrimSpace(text) == "" {
				builder.WriteString("    <td class=\"empty\"></td>\n")
				continue
			}
			builder.WriteString(fmt.Sprintf("    <td>%s</td>\n", escapeCell(text)))
		}
		builder.WriteString("  </tr>\n")
	}
	builder.WriteString("</table>\n</div>\n</div>\n")
	return builder.String()
}

// Excel stores explicit line breaks as \n; preserve them in HTML
func escapeCell(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}
