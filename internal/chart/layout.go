package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"solarppa/internal/pipeline"
)

// Dashboard holds the three charts of one run.
type Dashboard struct {
	Bubble *plot.Plot
	Bar    *plot.Plot
	Pie    *plot.Plot
}

// Build maps a pipeline result onto the three charts.
func Build(res *pipeline.Result, title string) (*Dashboard, error) {
	regions := res.Long.Regions

	bubble, err := NewBubblePlot(Bubbles(res.Long), title)
	if err != nil {
		return nil, fmt.Errorf("failed to build bubble chart: %w", err)
	}

	years, series, labels := Bars(res.Aggregates, regions)
	bar, err := NewBarPlot(years, series, labels)
	if err != nil {
		return nil, fmt.Errorf("failed to build bar chart: %w", err)
	}

	pie, err := NewPiePlot(PieWedges(res.Aggregates, regions), PieLabels(res.Aggregates))
	if err != nil {
		return nil, fmt.Errorf("failed to build pie chart: %w", err)
	}

	return &Dashboard{Bubble: bubble, Bar: bar, Pie: pie}, nil
}

// Layout splits c into a left column two thirds wide, holding the bubble
// chart above the bar chart, and a right column for the pie.
func Layout(c draw.Canvas) (bubble, bar, pie draw.Canvas) {
	width := c.Max.X - c.Min.X
	height := c.Max.Y - c.Min.Y
	split := width * 2 / 3

	left := draw.Crop(c, 0, -(width - split), 0, 0)
	pie = draw.Crop(c, split, 0, 0, 0)
	bubble = draw.Crop(left, 0, 0, height/2, 0)
	bar = draw.Crop(left, 0, 0, 0, -height/2)
	return bubble, bar, pie
}

// Draw renders the composed figure onto c.
func (d *Dashboard) Draw(c draw.Canvas) {
	bubble, bar, pie := Layout(c)
	d.Bubble.Draw(bubble)
	d.Bar.Draw(bar)
	d.Pie.Draw(pie)
}

// WritePNG renders the composed figure as a PNG of the given size.
func (d *Dashboard) WritePNG(w io.Writer, width, height vg.Length) error {
	img := vgimg.New(width, height)
	d.Draw(draw.New(img))
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode dashboard: %w", err)
	}
	return nil
}

// SavePNG writes the composed figure to path.
func (d *Dashboard) SavePNG(path string, width, height vg.Length) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return d.WritePNG(f, width, height)
}

// SaveCharts writes each chart to its own PNG in dir, named after base,
// and returns the written paths.
func (d *Dashboard) SaveCharts(dir, base string, width, height vg.Length) ([]string, error) {
	charts := []struct {
		suffix string
		plot   *plot.Plot
		w, h   vg.Length
	}{
		{"bubble", d.Bubble, width * 2 / 3, height / 2},
		{"bar", d.Bar, width * 2 / 3, height / 2},
		{"pie", d.Pie, width / 3, height},
	}

	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", base, c.suffix))
		if err := c.plot.Save(c.w, c.h, path); err != nil {
			return paths, fmt.Errorf("failed to save %s chart: %w", c.suffix, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
