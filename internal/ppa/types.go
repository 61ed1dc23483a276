package ppa

import "time"

// Shared column positions inside a loaded range. Region columns start at
// FirstRegionColumn.
const (
	DateColumn = iota
	CapacityColumn
	PriceColumn
	FirstRegionColumn
)

// LongFields is the field order of an exported long table. Other
// implementations of the pipeline read the same file, so the names and
// their order must not change.
var LongFields = []string{
	"execution_date",
	"project_capacity_mw",
	"price",
	"region",
	"capacity_mw",
	"year",
}

// DateLayout is the calendar date format used wherever a date leaves the
// pipeline as text.
const DateLayout = "2006-01-02"

// RawRecord is one wide row: one agreement with one column per region.
type RawRecord struct {
	Row           int
	ExecutionDate string
	CapacityMW    float64
	Price         *float64
	Regions       []*float64
}

// RawTable is the loader output. Regions holds the region column
// identifiers in sheet order; every record's Regions slice is aligned
// with it.
type RawTable struct {
	Sheet   string
	Range   string
	Headers []string
	Regions []string
	Records []RawRecord
}

// LongRecord is one (agreement, region) observation.
type LongRecord struct {
	Row               int
	RawDate           string
	ExecutionDate     time.Time
	ProjectCapacityMW float64
	Price             *float64
	Region            string
	CapacityMW        float64
	Year              int
}

// LongTable is the reshaped table. Regions is the categorical ordering
// (distinct regions, lexicographic) and is filled in by normalization; it
// is only meant for rendering order.
type LongTable struct {
	Records []LongRecord
	Regions []string
}

// RegionIndex returns the position of region in the categorical ordering,
// or -1.
func (t LongTable) RegionIndex(region string) int {
	for i, r := range t.Regions {
		if r == region {
			return i
		}
	}
	return -1
}

// Float returns a pointer to v, for nullable fields.
func Float(v float64) *float64 {
	return &v
}
