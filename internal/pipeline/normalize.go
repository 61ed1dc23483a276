package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"solarppa/internal/ppa"
)

// dateLayouts are tried in order for date cells stored as text.
var dateLayouts = []string{
	ppa.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"1/2/2006",
	"01/02/2006",
	"1/2/2006 15:04",
}

// Numeric date text is read as an Excel serial only inside this range,
// roughly 1927 through 9999-12-31. Bare years and yyyymmdd numbers fall
// outside it.
const (
	minSerialDate = 10000
	maxSerialDate = 2958465
)

// NormalizeOptions controls date coercion.
type NormalizeOptions struct {
	// Date1904 reads serial dates with the 1904 epoch used by some Mac
	// workbooks.
	Date1904 bool
}

// Normalize coerces every record's raw date to a calendar date, derives
// its year and attaches the sorted distinct regions as the categorical
// order. The output has the same length and order as the input.
func Normalize(long ppa.LongTable, opts NormalizeOptions) (ppa.LongTable, error) {
	out := ppa.LongTable{Records: make([]ppa.LongRecord, len(long.Records))}

	for i, rec := range long.Records {
		date, err := ParseDate(rec.RawDate, opts.Date1904)
		if err != nil {
			return ppa.LongTable{}, &ppa.DateParseError{Row: rec.Row, Value: rec.RawDate, Err: err}
		}
		rec.Price = copyFloat(rec.Price)
		rec.ExecutionDate = date
		rec.Year = date.Year()
		out.Records[i] = rec
	}

	out.Regions = CategoryOrder(out.Records)
	return out, nil
}

// ParseDate reads an Excel serial number or a textual date and truncates
// the result to its calendar date in UTC. Time of day is discarded.
func ParseDate(s string, date1904 bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial < minSerialDate || serial > maxSerialDate {
			return time.Time{}, fmt.Errorf("serial date %s outside %d..%d", s, minSerialDate, maxSerialDate)
		}
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return time.Time{}, err
		}
		return truncateToDate(t), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateToDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CategoryOrder returns the distinct regions of records sorted
// lexicographically.
func CategoryOrder(records []ppa.LongRecord) []string {
	seen := make(map[string]bool)
	var regions []string
	for _, rec := range records {
		if !seen[rec.Region] {
			seen[rec.Region] = true
			regions = append(regions, rec.Region)
		}
	}
	sort.Strings(regions)
	return regions
}
