// Package loader reads the wide PPA table out of a fixed range of an Excel
// workbook.
package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"solarppa/internal/ppa"
)

// Options describes where the table lives and what shape it must have.
type Options struct {
	Sheet string
	// Range is the rectangular cell range, header row included, e.g. "A1:M300".
	Range string
	// Regions, when non-empty, are the expected region headers in column
	// order.
	Regions []string
	// CheckHeaders compares ppa.CleanName of the first three headers with
	// ExpectedHeaders.
	CheckHeaders    bool
	ExpectedHeaders []string
}

// Loader turns a workbook range into a ppa.RawTable.
type Loader struct {
	opts   Options
	logger *zap.Logger
}

// New creates a Loader. A nil logger discards output.
func New(opts Options, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{opts: opts, logger: logger.Named("loader")}
}

// LoadFile opens the workbook at path and loads the configured range.
func (l *Loader) LoadFile(path string) (ppa.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ppa.RawTable{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	l.logger.Info("Opened workbook", zap.String("path", path))
	return l.Load(f)
}

// Load reads the configured range from an open workbook. Cells are read
// raw, so date cells arrive as Excel serial numbers and are left for the
// normalizer to coerce.
func (l *Loader) Load(f *excelize.File) (ppa.RawTable, error) {
	x1, y1, x2, y2, err := parseRange(l.opts.Range)
	if err != nil {
		return ppa.RawTable{}, l.mismatch("", err.Error())
	}

	width := x2 - x1 + 1
	if len(l.opts.Regions) > 0 {
		if want := ppa.FirstRegionColumn + len(l.opts.Regions); width != want {
			return ppa.RawTable{}, l.mismatch("", fmt.Sprintf("range has %d columns, expected %d (date, capacity, price and %d regions)", width, want, len(l.opts.Regions)))
		}
	} else if width <= ppa.FirstRegionColumn {
		return ppa.RawTable{}, l.mismatch("", fmt.Sprintf("range has %d columns, need date, capacity, price and at least one region", width))
	}

	rows, err := f.GetRows(l.opts.Sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return ppa.RawTable{}, fmt.Errorf("failed to read sheet %q: %w", l.opts.Sheet, err)
	}

	cell := func(row, col int) string {
		// row and col are 1-based sheet coordinates.
		if row-1 >= len(rows) || col-1 >= len(rows[row-1]) {
			return ""
		}
		return strings.TrimSpace(rows[row-1][col-1])
	}

	table := ppa.RawTable{
		Sheet:   l.opts.Sheet,
		Range:   l.opts.Range,
		Headers: make([]string, width),
	}
	for c := 0; c < width; c++ {
		table.Headers[c] = cell(y1, x1+c)
	}

	if err := l.checkHeaders(table.Headers, x1, y1); err != nil {
		return ppa.RawTable{}, err
	}

	table.Regions = append([]string(nil), table.Headers[ppa.FirstRegionColumn:]...)
	for i, region := range table.Regions {
		if region == "" {
			name, _ := excelize.CoordinatesToCellName(x1+ppa.FirstRegionColumn+i, y1)
			return ppa.RawTable{}, l.mismatch(name, "region column has an empty header")
		}
		if len(l.opts.Regions) > 0 && region != l.opts.Regions[i] {
			name, _ := excelize.CoordinatesToCellName(x1+ppa.FirstRegionColumn+i, y1)
			return ppa.RawTable{}, l.mismatch(name, fmt.Sprintf("region header %q, expected %q", region, l.opts.Regions[i]))
		}
	}

	blank := 0
	for r := y1 + 1; r <= y2 && r <= len(rows); r++ {
		values := make([]string, width)
		empty := true
		for c := 0; c < width; c++ {
			values[c] = cell(r, x1+c)
			if values[c] != "" {
				empty = false
			}
		}
		if empty {
			blank++
			continue
		}

		record, err := l.parseRow(r, x1, values)
		if err != nil {
			return ppa.RawTable{}, err
		}
		table.Records = append(table.Records, record)
	}

	l.logger.Info("Loaded wide table",
		zap.String("sheet", table.Sheet),
		zap.String("range", table.Range),
		zap.Int("records", len(table.Records)),
		zap.Int("regions", len(table.Regions)),
		zap.Int("blank_rows", blank))
	return table, nil
}

func (l *Loader) checkHeaders(headers []string, x1, y1 int) error {
	if !l.opts.CheckHeaders {
		return nil
	}
	for i, want := range l.opts.ExpectedHeaders {
		if i >= ppa.FirstRegionColumn {
			break
		}
		if got := ppa.CleanName(headers[i]); got != want {
			name, _ := excelize.CoordinatesToCellName(x1+i, y1)
			return l.mismatch(name, fmt.Sprintf("header %q normalizes to %q, expected %q", headers[i], got, want))
		}
	}
	return nil
}

func (l *Loader) parseRow(row, x1 int, values []string) (ppa.RawRecord, error) {
	record := ppa.RawRecord{
		Row:           row,
		ExecutionDate: values[ppa.DateColumn],
		Regions:       make([]*float64, len(values)-ppa.FirstRegionColumn),
	}

	cellName := func(col int) string {
		name, _ := excelize.CoordinatesToCellName(x1+col, row)
		return name
	}

	capacity, err := parseNumber(values[ppa.CapacityColumn])
	if err != nil {
		return record, l.mismatch(cellName(ppa.CapacityColumn), err.Error())
	}
	if capacity == nil {
		return record, l.mismatch(cellName(ppa.CapacityColumn), "capacity is required")
	}
	record.CapacityMW = *capacity

	if record.Price, err = parseNumber(values[ppa.PriceColumn]); err != nil {
		return record, l.mismatch(cellName(ppa.PriceColumn), err.Error())
	}

	for i := range record.Regions {
		col := ppa.FirstRegionColumn + i
		if record.Regions[i], err = parseNumber(values[col]); err != nil {
			return record, l.mismatch(cellName(col), err.Error())
		}
	}
	return record, nil
}

func (l *Loader) mismatch(cell, reason string) error {
	return &ppa.SchemaMismatchError{
		Sheet:  l.opts.Sheet,
		Range:  l.opts.Range,
		Cell:   cell,
		Reason: reason,
	}
}

// parseNumber returns nil for an empty cell.
func parseNumber(s string) (*float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%q is not a finite number", s)
	}
	return &v, nil
}

// parseRange splits "A1:M300" into 1-based corner coordinates, ordered so
// that x1 <= x2 and y1 <= y2.
func parseRange(ref string) (x1, y1, x2, y2 int, err error) {
	parts := strings.Split(strings.ReplaceAll(ref, "$", ""), ":")
	if len(parts) != 2 {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q", ref)
	}
	if x1, y1, err = excelize.CellNameToCoordinates(parts[0]); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q: %v", ref, err)
	}
	if x2, y2, err = excelize.CellNameToCoordinates(parts[1]); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q: %v", ref, err)
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return x1, y1, x2, y2, nil
}
