package pipeline

import "solarppa/internal/ppa"

// ReshapeStats counts what the reshape did with each wide row.
type ReshapeStats struct {
	RawRecords  int
	LongRecords int
	// MissingRegion counts rows with no region value; they produce no
	// long record.
	MissingRegion int
	// AmbiguousRegion counts rows with more than one region value; each
	// value produces its own long record.
	AmbiguousRegion int
}

// Reshape converts wide rows into one long record per non-empty region
// cell, in row order then region column order. Empty cells are dropped.
func Reshape(raw ppa.RawTable) (ppa.LongTable, ReshapeStats) {
	stats := ReshapeStats{RawRecords: len(raw.Records)}
	out := ppa.LongTable{Records: make([]ppa.LongRecord, 0, len(raw.Records))}

	for _, rec := range raw.Records {
		emitted := 0
		for i, value := range rec.Regions {
			if value == nil || i >= len(raw.Regions) {
				continue
			}
			out.Records = append(out.Records, ppa.LongRecord{
				Row:               rec.Row,
				RawDate:           rec.ExecutionDate,
				ProjectCapacityMW: rec.CapacityMW,
				Price:             copyFloat(rec.Price),
				Region:            raw.Regions[i],
				CapacityMW:        *value,
			})
			emitted++
		}
		switch {
		case emitted == 0:
			stats.MissingRegion++
		case emitted > 1:
			stats.AmbiguousRegion++
		}
	}

	stats.LongRecords = len(out.Records)
	return out, stats
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return ppa.Float(*v)
}
