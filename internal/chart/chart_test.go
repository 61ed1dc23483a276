package chart

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"solarppa/internal/pipeline"
	"solarppa/internal/ppa"
)

// exampleResult runs the three-row scenario: two CAISO agreements in 2015,
// only one of them priced, and one Hawaii agreement in 2016.
func exampleResult(t *testing.T) *pipeline.Result {
	t.Helper()
	raw := ppa.RawTable{
		Regions: []string{"CAISO", "Hawaii", "PJM"},
		Records: []ppa.RawRecord{
			{Row: 2, ExecutionDate: "2015-06-01", CapacityMW: 10, Regions: []*float64{ppa.Float(5), nil, nil}},
			{Row: 3, ExecutionDate: "2015-07-01", CapacityMW: 20, Price: ppa.Float(61.2), Regions: []*float64{ppa.Float(7), nil, nil}},
			{Row: 4, ExecutionDate: "2016-01-01", CapacityMW: 15, Regions: []*float64{nil, ppa.Float(9), nil}},
		},
	}
	res, err := pipeline.New(pipeline.NormalizeOptions{}, nil).Run(raw)
	require.NoError(t, err)
	return res
}

func TestPalette(t *testing.T) {
	require.Len(t, Palette, 10)
	require.Len(t, PieAnnotations, 5)

	names := make(map[string]bool)
	for _, c := range Palette {
		assert.False(t, names[c.Name], "duplicate palette color %s", c.Name)
		names[c.Name] = true
	}

	assert.Equal(t, Palette[0].Color, RegionColor(0))
	assert.Equal(t, Palette[3].Color, RegionColor(13))
	assert.Equal(t, Palette[0].Color, RegionColor(-1))
}

func TestBubbles(t *testing.T) {
	res := exampleResult(t)

	series := Bubbles(res.Long)
	require.Len(t, series, 1, "unpriced records are skipped and empty regions dropped")
	assert.Equal(t, "CAISO", series[0].Region)
	assert.Equal(t, RegionColor(0), series[0].Color)
	require.Len(t, series[0].Points, 1)
	assert.Equal(t, 61.2, series[0].Points[0].Price)
	assert.Equal(t, 7.0, series[0].Points[0].CapacityMW)
	assert.Equal(t, "2015-07-01", series[0].Points[0].Date.Format(ppa.DateLayout))
}

func TestBubbleRadius(t *testing.T) {
	assert.Equal(t, vg.Points(maxBubbleRadius), BubbleRadius(100, 100))
	assert.Equal(t, vg.Points(minBubbleRadius), BubbleRadius(0, 100))
	assert.Equal(t, vg.Points(minBubbleRadius), BubbleRadius(5, 0))
	assert.InDelta(t, float64(vg.Points(9)), float64(BubbleRadius(25, 100)), 1e-9)
}

func TestBars(t *testing.T) {
	res := exampleResult(t)

	years, series, labels := Bars(res.Aggregates, res.Long.Regions)
	assert.Equal(t, []int{2015, 2016}, years)
	require.Len(t, series, 2)
	assert.Equal(t, "CAISO", series[0].Region)
	assert.Equal(t, []float64{12, 0}, series[0].Values)
	assert.Equal(t, "Hawaii", series[1].Region)
	assert.Equal(t, []float64{0, 9}, series[1].Values)
	assert.Equal(t, RegionColor(1), series[1].Color)

	assert.Equal(t, []BarLabel{
		{Index: 0, Year: 2015, Total: 12, Text: "12"},
		{Index: 1, Year: 2016, Total: 9, Text: "9"},
	}, labels)
}

func TestPieWedges(t *testing.T) {
	res := exampleResult(t)

	wedges := PieWedges(res.Aggregates, res.Long.Regions)
	require.Len(t, wedges, 2)

	assert.Equal(t, "Hawaii", wedges[0].Region, "wedges are drawn in reverse categorical order")
	assert.Equal(t, RegionColor(1), wedges[0].Color)
	assert.Equal(t, "CAISO", wedges[1].Region)
	assert.Equal(t, RegionColor(0), wedges[1].Color)

	assert.InDelta(t, math.Pi/2, wedges[0].Start, 1e-12)
	assert.InDelta(t, -2*math.Pi*9/21, wedges[0].Sweep, 1e-12)
	assert.InDelta(t, wedges[0].Start+wedges[0].Sweep, wedges[1].Start, 1e-12)
	assert.InDelta(t, -2*math.Pi, wedges[0].Sweep+wedges[1].Sweep, 1e-12)

	assert.Nil(t, PieWedges(pipeline.Aggregates{}, nil))
}

func TestPieLabels(t *testing.T) {
	res := exampleResult(t)

	labels := PieLabels(res.Aggregates)
	require.Len(t, labels, 1, "only annotated regions with a total are labeled")
	assert.Equal(t, "CAISO", labels[0].Region)
	assert.Equal(t, "CAISO\n12 MW", labels[0].Text)
	assert.InDelta(t, 0.62*math.Cos(math.Pi/3), labels[0].X, 1e-12)
	assert.InDelta(t, 0.62*math.Sin(math.Pi/3), labels[0].Y, 1e-12)
}

func TestLayout(t *testing.T) {
	c := draw.New(vgimg.New(vg.Points(300), vg.Points(150)))

	bubble, bar, pie := Layout(c)

	assert.InDelta(t, 0, float64(bubble.Min.X), 1e-9)
	assert.InDelta(t, 200, float64(bubble.Max.X), 1e-9)
	assert.InDelta(t, 75, float64(bubble.Min.Y), 1e-9)
	assert.InDelta(t, 150, float64(bubble.Max.Y), 1e-9)

	assert.InDelta(t, 200, float64(bar.Max.X), 1e-9)
	assert.InDelta(t, 0, float64(bar.Min.Y), 1e-9)
	assert.InDelta(t, 75, float64(bar.Max.Y), 1e-9)

	assert.InDelta(t, 200, float64(pie.Min.X), 1e-9)
	assert.InDelta(t, 300, float64(pie.Max.X), 1e-9)
	assert.InDelta(t, 0, float64(pie.Min.Y), 1e-9)
	assert.InDelta(t, 150, float64(pie.Max.Y), 1e-9)
}

func TestDashboardRender(t *testing.T) {
	res := exampleResult(t)
	d, err := Build(res, "Solar PPA")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.WritePNG(&buf, 9*vg.Inch, 5*vg.Inch))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	dir := t.TempDir()
	figure := filepath.Join(dir, "dashboard.png")
	require.NoError(t, d.SavePNG(figure, 9*vg.Inch, 5*vg.Inch))
	info, err := os.Stat(figure)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	paths, err := d.SaveCharts(dir, "dashboard", 9*vg.Inch, 5*vg.Inch)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "dashboard_bubble.png"),
		filepath.Join(dir, "dashboard_bar.png"),
		filepath.Join(dir, "dashboard_pie.png"),
	}, paths)
	for _, p := range paths {
		assert.FileExists(t, p)
	}
}
