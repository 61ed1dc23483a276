package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"

	"solarppa/internal/ppa"
)

// RegionYear is one YearlyByRegion row.
type RegionYear struct {
	Region     string
	Year       int
	CapacityMW float64
}

// YearTotal is one YearlyTotal row. Representative is the region whose
// (region, year) row carries Label after JoinYearlyLabels; it has no
// numeric meaning.
type YearTotal struct {
	Year           int
	CapacityMW     float64
	Label          string
	Representative string
}

// RegionTotal is one RegionTotal row. Rounded is the sum rounded half to
// even, Label is Rounded with thousands separators.
type RegionTotal struct {
	Region     string
	CapacityMW float64
	Rounded    int64
	Label      string
}

// LabeledRegionYear is a YearlyByRegion row after the year totals are
// joined onto it. Labeled is false for every row except the year's
// representative.
type LabeledRegionYear struct {
	RegionYear
	Label   string
	Labeled bool
}

// Aggregates holds the three derived tables.
type Aggregates struct {
	// YearlyByRegion is sorted by (year, region).
	YearlyByRegion []RegionYear
	// YearlyTotal is sorted by year.
	YearlyTotal []YearTotal
	// RegionTotal is sorted by region.
	RegionTotal []RegionTotal
}

type regionYearKey struct {
	region string
	year   int
}

// Aggregate computes the aggregate tables of a normalized long table.
// Sums are accumulated as decimals, so they do not depend on record order.
func Aggregate(long ppa.LongTable) Aggregates {
	byRegionYear := make(map[regionYearKey]decimal.Decimal)
	byYear := make(map[int]decimal.Decimal)
	byRegion := make(map[string]decimal.Decimal)

	for _, rec := range long.Records {
		v := decimal.NewFromFloat(rec.CapacityMW)
		key := regionYearKey{region: rec.Region, year: rec.Year}
		byRegionYear[key] = byRegionYear[key].Add(v)
		byYear[rec.Year] = byYear[rec.Year].Add(v)
		byRegion[rec.Region] = byRegion[rec.Region].Add(v)
	}

	var agg Aggregates

	for key, sum := range byRegionYear {
		agg.YearlyByRegion = append(agg.YearlyByRegion, RegionYear{
			Region:     key.region,
			Year:       key.year,
			CapacityMW: sum.InexactFloat64(),
		})
	}
	sort.Slice(agg.YearlyByRegion, func(i, j int) bool {
		a, b := agg.YearlyByRegion[i], agg.YearlyByRegion[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Region < b.Region
	})

	representatives := firstRegionPerYear(long.Records)
	for year, sum := range byYear {
		agg.YearlyTotal = append(agg.YearlyTotal, YearTotal{
			Year:           year,
			CapacityMW:     sum.InexactFloat64(),
			Label:          FormatThousands(sum.Truncate(0).IntPart()),
			Representative: representatives[year],
		})
	}
	sort.Slice(agg.YearlyTotal, func(i, j int) bool {
		return agg.YearlyTotal[i].Year < agg.YearlyTotal[j].Year
	})

	for region, sum := range byRegion {
		rounded := sum.RoundBank(0).IntPart()
		agg.RegionTotal = append(agg.RegionTotal, RegionTotal{
			Region:     region,
			CapacityMW: sum.InexactFloat64(),
			Rounded:    rounded,
			Label:      FormatThousands(rounded),
		})
	}
	sort.Slice(agg.RegionTotal, func(i, j int) bool {
		return agg.RegionTotal[i].Region < agg.RegionTotal[j].Region
	})

	return agg
}

// firstRegionPerYear picks each year's representative region: the first
// record of that year after a stable sort by (year, region) ascending.
func firstRegionPerYear(records []ppa.LongRecord) map[int]string {
	sorted := make([]ppa.LongRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year < sorted[j].Year
		}
		return sorted[i].Region < sorted[j].Region
	})

	out := make(map[int]string)
	for _, rec := range sorted {
		if _, ok := out[rec.Year]; !ok {
			out[rec.Year] = rec.Region
		}
	}
	return out
}

// JoinYearlyLabels left-joins the year totals onto the (region, year)
// rows, matching on year and on region equal to the year's
// representative. Exactly one row per year ends up labeled.
func JoinYearlyLabels(rows []RegionYear, totals []YearTotal) []LabeledRegionYear {
	byYear := make(map[int]YearTotal, len(totals))
	for _, t := range totals {
		byYear[t.Year] = t
	}

	out := make([]LabeledRegionYear, len(rows))
	for i, row := range rows {
		out[i] = LabeledRegionYear{RegionYear: row}
		if t, ok := byYear[row.Year]; ok && t.Representative == row.Region {
			out[i].Label = t.Label
			out[i].Labeled = true
		}
	}
	return out
}

// Labeled returns YearlyByRegion joined with the YearlyTotal labels.
func (a Aggregates) Labeled() []LabeledRegionYear {
	return JoinYearlyLabels(a.YearlyByRegion, a.YearlyTotal)
}

// Years returns the distinct years of YearlyTotal, ascending.
func (a Aggregates) Years() []int {
	years := make([]int, len(a.YearlyTotal))
	for i, t := range a.YearlyTotal {
		years[i] = t.Year
	}
	return years
}

// TotalCapacity is the sum of all region totals.
func (a Aggregates) TotalCapacity() float64 {
	sum := decimal.Zero
	for _, r := range a.RegionTotal {
		sum = sum.Add(decimal.NewFromFloat(r.CapacityMW))
	}
	return sum.InexactFloat64()
}
