package render

import (
	"fmt"
	"strconv"
	"strings"

	"gantt2svg/internal/grid"
)

// SVG renders the chart: a header of column labels, the task list (expander,
// name, first start, last end) and the grid body with one bar per merged block.
func (r *Renderer) SVG(chart *Chart) string {
	cfg := r.cfg
	layout := cfg.Layout
	listWidth := 3 * layout.ListWidth

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%s" height="%s" xmlns="http://www.w3.org/2000/svg"%s>
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.name-text { font-family: %s; font-size: %dpx; fill: %s; }
.date-text { font-family: %s; font-size: %dpx; fill: %s; }
.header-text { font-family: %s; font-size: %dpx; fill: %s; }
.expander { font-family: %s; font-size: %dpx; fill: %s; cursor: pointer; }
</style>
</defs>
`, num(chart.Width), num(chart.Height), directionAttr(chart.RTL), cfg.Colors.Background,
		cfg.Font.Family, cfg.Font.Size, cfg.Colors.Text,
		cfg.Font.Family, cfg.Font.Size-1, cfg.Colors.Text,
		cfg.Font.Family, cfg.Font.Size-2, cfg.Colors.Header,
		cfg.Font.Family, cfg.Font.Size-2, cfg.Colors.Text))

	r.writeHeader(&svg, chart, listWidth)
	r.writeTaskList(&svg, chart)

	svg.WriteString(fmt.Sprintf(`<g class="gridBody" transform="translate(%s,%s)">`+"\n",
		num(listWidth), num(layout.HeaderHeight)))
	r.writeGridBody(&svg, chart.Geometry)
	r.writeBars(&svg, chart.Rows)
	svg.WriteString("</g>\n")

	svg.WriteString("</svg>\n")
	return svg.String()
}

func directionAttr(rtl bool) string {
	if rtl {
		return ` direction="rtl"`
	}
	return ""
}

func (r *Renderer) writeHeader(svg *strings.Builder, chart *Chart, listWidth float64) {
	layout := r.cfg.Layout
	baseline := layout.HeaderHeight*0.6 + float64(r.cfg.Font.Size)/2

	svg.WriteString(`<g class="header">` + "\n")
	for i, title := range []string{"Name", "From", "To"} {
		svg.WriteString(fmt.Sprintf(`<text x="%s" y="%s" class="header-text">%s</text>`+"\n",
			num(float64(i)*layout.ListWidth+8), num(baseline), title))
	}
	for _, col := range chart.Columns {
		svg.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="middle" class="header-text">%s</text>`+"\n",
			num(listWidth+col.X+layout.ColumnWidth/2), num(baseline), escapeXML(col.Label)))
	}
	svg.WriteString("</g>\n")
}

func (r *Renderer) writeTaskList(svg *strings.Builder, chart *Chart) {
	layout := r.cfg.Layout

	svg.WriteString(fmt.Sprintf(`<g class="taskList" transform="translate(0,%s)">`+"\n", num(layout.HeaderHeight)))
	for i, row := range chart.Rows {
		y := float64(i)*layout.RowHeight + layout.RowHeight/2 + float64(r.cfg.Font.Size)/3
		svg.WriteString(fmt.Sprintf(`<g class="taskListRow"><title>%s</title>`, escapeXML(row.Name)))
		if row.Indicator != "" {
			svg.WriteString(fmt.Sprintf(`<text x="8" y="%s" class="expander">%s</text>`, num(y), row.Indicator))
		}
		svg.WriteString(fmt.Sprintf(`<text x="24" y="%s" class="name-text">%s</text>`, num(y), escapeXML(row.Name)))
		svg.WriteString(fmt.Sprintf(`<text x="%s" y="%s" class="date-text">%s</text>`,
			num(layout.ListWidth+8), num(y), escapeXML(row.StartLabel)))
		svg.WriteString(fmt.Sprintf(`<text x="%s" y="%s" class="date-text">%s</text>`,
			num(2*layout.ListWidth+8), num(y), escapeXML(row.EndLabel)))
		svg.WriteString("</g>\n")
	}
	svg.WriteString("</g>\n")
}

func (r *Renderer) writeGridBody(svg *strings.Builder, g grid.Geometry) {
	colors := r.cfg.Colors

	svg.WriteString(`<g class="rows">` + "\n")
	for i, rect := range g.RowRects {
		fill := colors.Row
		if i%2 == 1 {
			fill = colors.RowAlt
		}
		svg.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			num(rect.X), num(rect.Y), num(rect.Width), num(rect.Height), fill))
	}
	svg.WriteString("</g>\n")

	svg.WriteString(`<g class="rowLines">` + "\n")
	for _, l := range g.RowLines {
		writeLine(svg, l, colors.RowLine)
	}
	svg.WriteString("</g>\n")

	svg.WriteString(`<g class="ticks">` + "\n")
	for _, l := range g.Ticks {
		writeLine(svg, l, colors.Tick)
	}
	svg.WriteString("</g>\n")

	svg.WriteString(`<g class="today">`)
	if t := g.Today; t != nil {
		svg.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
			num(t.X), num(t.Y), num(t.Width), num(t.Height), colors.Today))
	}
	svg.WriteString("</g>\n")
}

func (r *Renderer) writeBars(svg *strings.Builder, rows []Row) {
	colors := r.cfg.Colors
	radius := num(r.cfg.Layout.BarRadius)

	svg.WriteString(`<g class="bars">` + "\n")
	for _, row := range rows {
		for i, bar := range row.Bars {
			block := row.Blocks[i]
			svg.WriteString(fmt.Sprintf(
				`<rect x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" fill="%s" stroke="%s" stroke-width="1"><title>%s: %s – %s</title></rect>`+"\n",
				num(bar.X), num(bar.Y), num(bar.Width), num(bar.Height), radius, radius,
				colors.Bar, colors.BarStroke,
				escapeXML(row.Name),
				escapeXML(r.formatter.Format(block.Start, r.labelOpts)),
				escapeXML(r.formatter.Format(block.End, r.labelOpts))))
		}
	}
	svg.WriteString("</g>\n")
}

func writeLine(svg *strings.Builder, l grid.Line, stroke string) {
	svg.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`+"\n",
		num(l.X1), num(l.Y1), num(l.X2), num(l.Y2), stroke))
}

// num formats a coordinate without trailing zeros.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// escapeXML escapes special XML characters so labels cannot break the document.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
