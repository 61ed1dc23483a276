// Package pipeline reshapes the wide PPA table into long records,
// normalizes their fields and computes the aggregate tables the charts are
// drawn from.
//
// # Stages
//
//	Reshape    one long record per non-empty region cell
//	Normalize  date coercion, year derivation, categorical region order
//	Aggregate  (region, year), (year) and (region) capacity sums
//
// Each stage returns a new table. Grouping always uses the plain region
// string; the categorical order on ppa.LongTable is for rendering only.
//
// # Year labels
//
// Every year total is attached to exactly one (region, year) row so that a
// stacked chart prints it once per stack. The row is chosen by
// firstRegionPerYear: stable-sort the records by (year, region) ascending
// and take the first region of each year.
package pipeline
