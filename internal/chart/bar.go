package chart

import (
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var barWidth = vg.Points(22)

// NewBarPlot stacks each region's yearly capacity in categorical order and
// prints the year total once above every stack.
func NewBarPlot(years []int, series []BarSeries, labels []BarLabel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Contracted capacity by year"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "Capacity (MW)"
	p.Legend.Top = true
	p.Legend.Left = true
	p.Y.Min = 0

	names := make([]string, len(years))
	for i, y := range years {
		names[i] = strconv.Itoa(y)
	}
	p.NominalX(names...)

	if len(years) == 0 {
		return p, nil
	}

	var below *plotter.BarChart
	for _, s := range series {
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), barWidth)
		if err != nil {
			return nil, err
		}
		bars.Color = s.Color
		bars.LineStyle.Width = vg.Length(0)
		if below != nil {
			bars.StackOn(below)
		}
		p.Add(bars)
		p.Legend.Add(s.Region, bars)
		below = bars
	}

	maxTotal := 0.0
	for _, l := range labels {
		if l.Total > maxTotal {
			maxTotal = l.Total
		}
	}
	if maxTotal > 0 {
		p.Y.Max = maxTotal * 1.15
	}

	if len(labels) > 0 {
		xys := make(plotter.XYs, len(labels))
		texts := make([]string, len(labels))
		for i, l := range labels {
			xys[i].X = float64(l.Index)
			xys[i].Y = l.Total + maxTotal*0.02
			texts[i] = l.Text
		}
		totals, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return nil, err
		}
		for i := range totals.TextStyle {
			totals.TextStyle[i].XAlign = draw.XCenter
		}
		p.Add(totals)
	}
	return p, nil
}
