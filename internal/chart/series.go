package chart

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"solarppa/internal/pipeline"
	"solarppa/internal/ppa"
)

// BubblePoint is one long record placed on the bubble chart.
type BubblePoint struct {
	Date       time.Time
	Price      float64
	CapacityMW float64
}

// BubbleSeries is every bubble of one region.
type BubbleSeries struct {
	Region string
	Color  color.RGBA
	Points []BubblePoint
}

// Bubbles maps long records to one series per region in categorical
// order. Records without a price cannot be placed and are left out, as
// are regions left with no points.
func Bubbles(long ppa.LongTable) []BubbleSeries {
	series := make([]BubbleSeries, len(long.Regions))
	for i, region := range long.Regions {
		series[i] = BubbleSeries{Region: region, Color: RegionColor(i)}
	}
	for _, rec := range long.Records {
		i := long.RegionIndex(rec.Region)
		if i < 0 || rec.Price == nil {
			continue
		}
		series[i].Points = append(series[i].Points, BubblePoint{
			Date:       rec.ExecutionDate,
			Price:      *rec.Price,
			CapacityMW: rec.CapacityMW,
		})
	}

	out := series[:0]
	for _, s := range series {
		if len(s.Points) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// BarSeries is one region's stacked segment for every year.
type BarSeries struct {
	Region string
	Color  color.RGBA
	// Values is aligned with the years returned by Bars.
	Values []float64
}

// BarLabel is a year total printed once on top of its stack.
type BarLabel struct {
	Index int
	Year  int
	Total float64
	Text  string
}

// Bars maps YearlyByRegion to stacked series, one per region in the
// categorical order regions, and the joined year labels to stack-top
// labels.
func Bars(agg pipeline.Aggregates, regions []string) ([]int, []BarSeries, []BarLabel) {
	years := agg.Years()
	yearIndex := make(map[int]int, len(years))
	for i, y := range years {
		yearIndex[y] = i
	}
	totals := make(map[int]float64, len(agg.YearlyTotal))
	for _, t := range agg.YearlyTotal {
		totals[t.Year] = t.CapacityMW
	}

	series := make([]BarSeries, len(regions))
	regionIndex := make(map[string]int, len(regions))
	for i, region := range regions {
		series[i] = BarSeries{Region: region, Color: RegionColor(i), Values: make([]float64, len(years))}
		regionIndex[region] = i
	}

	var labels []BarLabel
	for _, row := range agg.Labeled() {
		yi := yearIndex[row.Year]
		if ri, ok := regionIndex[row.Region]; ok {
			series[ri].Values[yi] += row.CapacityMW
		}
		if row.Labeled {
			labels = append(labels, BarLabel{Index: yi, Year: row.Year, Total: totals[row.Year], Text: row.Label})
		}
	}
	return years, series, labels
}

// Wedge is one pie slice. Start and Sweep are in radians; a negative
// sweep runs clockwise.
type Wedge struct {
	Region     string
	Color      color.RGBA
	CapacityMW float64
	Start      float64
	Sweep      float64
}

// PieWedges maps RegionTotal to wedges. Wedges run clockwise from twelve
// o'clock in the reverse of the categorical order, matching the reference
// dashboard.
func PieWedges(agg pipeline.Aggregates, regions []string) []Wedge {
	byRegion := make(map[string]float64, len(agg.RegionTotal))
	total := 0.0
	for _, r := range agg.RegionTotal {
		byRegion[r.Region] = r.CapacityMW
		total += r.CapacityMW
	}
	if total <= 0 {
		return nil
	}

	var wedges []Wedge
	start := math.Pi / 2
	for i := len(regions) - 1; i >= 0; i-- {
		v, ok := byRegion[regions[i]]
		if !ok || v <= 0 {
			continue
		}
		sweep := -2 * math.Pi * v / total
		wedges = append(wedges, Wedge{
			Region:     regions[i],
			Color:      RegionColor(i),
			CapacityMW: v,
			Start:      start,
			Sweep:      sweep,
		})
		start += sweep
	}
	return wedges
}

// PieLabel is an annotation resolved to cartesian coordinates in pie
// space, where the pie has radius 1.
type PieLabel struct {
	Region string
	X, Y   float64
	Text   string
}

// PieLabels resolves PieAnnotations for the regions that have a total.
func PieLabels(agg pipeline.Aggregates) []PieLabel {
	totals := make(map[string]pipeline.RegionTotal, len(agg.RegionTotal))
	for _, r := range agg.RegionTotal {
		totals[r.Region] = r
	}

	var labels []PieLabel
	for _, a := range PieAnnotations {
		t, ok := totals[a.Region]
		if !ok {
			continue
		}
		theta := a.Theta * math.Pi / 180
		labels = append(labels, PieLabel{
			Region: a.Region,
			X:      a.R * math.Cos(theta),
			Y:      a.R * math.Sin(theta),
			Text:   fmt.Sprintf("%s\n%s MW", a.Text, t.Label),
		})
	}
	return labels
}
