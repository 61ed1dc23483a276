package chart

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// pieExtent is the half-width of the pie's data range; the pie itself has
// radius 1.
const pieExtent = 1.15

// wedges draws a pie centered on the data origin.
type wedges struct {
	Wedges    []Wedge
	LineStyle draw.LineStyle
}

func (w *wedges) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	center := vg.Point{X: trX(0), Y: trY(0)}
	radius := trX(1) - center.X
	if ry := trY(1) - center.Y; ry < radius {
		radius = ry
	}

	for _, wedge := range w.Wedges {
		var path vg.Path
		path.Move(center)
		path.Arc(center, radius, wedge.Start, wedge.Sweep)
		path.Close()

		c.SetColor(wedge.Color)
		c.Fill(path)
		c.SetLineStyle(w.LineStyle)
		c.Stroke(path)
	}
}

func (w *wedges) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -pieExtent, pieExtent, -pieExtent, pieExtent
}

// NewPiePlot draws region totals as wedges, with literal annotations at
// their polar positions.
func NewPiePlot(ws []Wedge, labels []PieLabel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Cumulative capacity by region"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.HideAxes()
	p.X.Min, p.X.Max = -pieExtent, pieExtent
	p.Y.Min, p.Y.Max = -pieExtent, pieExtent

	p.Add(&wedges{
		Wedges:    ws,
		LineStyle: draw.LineStyle{Color: color.White, Width: vg.Points(1)},
	})

	if len(labels) == 0 {
		return p, nil
	}
	xys := make(plotter.XYs, len(labels))
	texts := make([]string, len(labels))
	for i, l := range labels {
		xys[i].X, xys[i].Y = l.X, l.Y
		texts[i] = l.Text
	}
	annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].XAlign = draw.XCenter
		annotations.TextStyle[i].YAlign = draw.YCenter
		annotations.TextStyle[i].Color = color.White
		annotations.TextStyle[i].Font.Size = vg.Points(11)
	}
	p.Add(annotations)
	return p, nil
}
