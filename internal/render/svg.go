// Package render draws the category trend chart attached to report emails.
package render

import (
	"fmt"
	"strings"

	"github.com/lmartinez/cardreport/internal/report"
)

// ChartRenderer turns an aggregated per-month series into image bytes.
type ChartRenderer interface {
	RenderTrendChart(series []report.MonthlyBreakdown, categories []string) ([]byte, error)
}

// SVGChart renders a line-per-category trend chart as a standalone SVG
// document. Mail clients render SVG attachments inline well enough that no
// raster plotting dependency is needed.
type SVGChart struct {
	Width  int
	Height int
}

// NewSVGChart returns a renderer with the default canvas size.
func NewSVGChart() SVGChart {
	return SVGChart{Width: 1000, Height: 600}
}

var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728",
	"#9467bd", "#8c564b", "#e377c2", "#7f7f7f",
}

const (
	marginLeft   = 80
	marginRight  = 160 // room for the legend
	marginTop    = 40
	marginBottom = 80
)

// RenderTrendChart plots each category's monthly totals as a labeled line,
// with months along the x axis in series order.
func (c SVGChart) RenderTrendChart(series []report.MonthlyBreakdown, categories []string) ([]byte, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("render trend chart: empty series")
	}

	minVal, maxVal := valueRange(series, categories)

	plotW := float64(c.Width - marginLeft - marginRight)
	plotH := float64(c.Height - marginTop - marginBottom)

	x := func(i int) float64 {
		if len(series) == 1 {
			return marginLeft + plotW/2
		}
		return marginLeft + plotW*float64(i)/float64(len(series)-1)
	}
	y := func(v float64) float64 {
		if maxVal == minVal {
			return marginTop + plotH/2
		}
		return marginTop + plotH*(maxVal-v)/(maxVal-minVal)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", c.Width, c.Height)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="white"/>`+"\n", c.Width, c.Height)
	fmt.Fprintf(&b, `<text x="%d" y="24" font-size="18" font-family="sans-serif">Category trend</text>`+"\n", marginLeft)

	// x axis month labels
	for i, month := range series {
		fmt.Fprintf(&b,
			`<text x="%.1f" y="%d" font-size="12" font-family="sans-serif" text-anchor="middle">%s</text>`+"\n",
			x(i), c.Height-marginBottom+24, escape(month.Label))
	}

	// axes
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#333"/>`+"\n",
		marginLeft, c.Height-marginBottom, c.Width-marginRight, c.Height-marginBottom)
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#333"/>`+"\n",
		marginLeft, marginTop, marginLeft, c.Height-marginBottom)

	for ci, category := range categories {
		color := palette[ci%len(palette)]

		points := make([]string, 0, len(series))
		for i, month := range series {
			points = append(points, fmt.Sprintf("%.1f,%.1f", x(i), y(month.Totals[category])))
		}
		fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
			strings.Join(points, " "), color)

		// point markers with value labels
		for i, month := range series {
			v := month.Totals[category]
			fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", x(i), y(v), color)
			fmt.Fprintf(&b,
				`<text x="%.1f" y="%.1f" font-size="10" font-family="sans-serif">%s</text>`+"\n",
				x(i)+5, y(v)-5, report.FormatAmount(v))
		}

		// legend entry
		ly := marginTop + 20*ci
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="12" height="12" fill="%s"/>`+"\n",
			c.Width-marginRight+20, ly, color)
		fmt.Fprintf(&b,
			`<text x="%d" y="%d" font-size="12" font-family="sans-serif">%s</text>`+"\n",
			c.Width-marginRight+38, ly+10, escape(category))
	}

	b.WriteString("</svg>\n")
	return []byte(b.String()), nil
}

func valueRange(series []report.MonthlyBreakdown, categories []string) (minVal, maxVal float64) {
	first := true
	for _, month := range series {
		for _, category := range categories {
			v := month.Totals[category]
			if first || v < minVal {
				minVal = v
			}
			if first || v > maxVal {
				maxVal = v
			}
			first = false
		}
	}
	return minVal, maxVal
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return escaper.Replace(s)
}
