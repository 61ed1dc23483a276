package chart

import (
	"math"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	minBubbleRadius = 2
	maxBubbleRadius = 16
	bubbleAlpha     = 170
)

// BubbleRadius scales a bubble's area with its capacity: the radius grows
// with the square root of capacity relative to maxCapacity.
func BubbleRadius(capacity, maxCapacity float64) vg.Length {
	if maxCapacity <= 0 || capacity <= 0 {
		return vg.Points(minBubbleRadius)
	}
	frac := math.Sqrt(capacity / maxCapacity)
	if frac > 1 {
		frac = 1
	}
	return vg.Points(minBubbleRadius + (maxBubbleRadius-minBubbleRadius)*frac)
}

// NewBubblePlot draws price against execution date, one scatter per
// region.
func NewBubblePlot(series []BubbleSeries, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Execution date"
	p.Y.Label.Text = "PPA price ($/MWh)"
	p.X.Tick.Marker = plot.TimeTicks{
		Format: "2006",
		Time:   func(t float64) time.Time { return time.Unix(int64(t), 0).UTC() },
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	maxCapacity := 0.0
	for _, s := range series {
		for _, pt := range s.Points {
			maxCapacity = math.Max(maxCapacity, pt.CapacityMW)
		}
	}

	for _, s := range series {
		xys := make(plotter.XYs, len(s.Points))
		for i, pt := range s.Points {
			xys[i].X = float64(pt.Date.Unix())
			xys[i].Y = pt.Price
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}

		fill := translucent(s.Color, bubbleAlpha)
		points := s.Points
		scatter.GlyphStyle = draw.GlyphStyle{Color: fill, Radius: vg.Points(5), Shape: draw.CircleGlyph{}}
		scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{
				Color:  fill,
				Radius: BubbleRadius(points[i].CapacityMW, maxCapacity),
				Shape:  draw.CircleGlyph{},
			}
		}

		p.Add(scatter)
		p.Legend.Add(s.Region, scatter)
	}
	return p, nil
}
