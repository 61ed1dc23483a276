package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"solarppa/internal/pipeline"
	"solarppa/internal/ppa"
)

// Summary workbook sheet names.
const (
	SheetYearlyByRegion = "Yearly_By_Region"
	SheetYearlyTotal    = "Yearly_Total"
	SheetRegionTotal    = "Region_Total"
	SheetLongRecords    = "Long_Records"
)

// Workbook writes the aggregate tables and the long records to an .xlsx
// file, one sheet each, and returns the full path.
func (w *Writer) Workbook(name string, res *pipeline.Result) (string, error) {
	path := w.Path(name)
	f, err := BuildWorkbook(res)
	if err != nil {
		return path, err
	}
	defer f.Close()

	path, err = w.write(name, func(out io.Writer) error {
		if _, err := f.WriteTo(out); err != nil {
			return fmt.Errorf("failed to save workbook: %w", err)
		}
		return nil
	})
	if err != nil {
		return path, err
	}

	w.logger.Info("Wrote summary workbook",
		zap.String("path", path),
		zap.Int("regions", len(res.Aggregates.RegionTotal)),
		zap.Int("years", len(res.Aggregates.YearlyTotal)))
	return path, nil
}

// BuildWorkbook lays out the summary workbook in memory.
func BuildWorkbook(res *pipeline.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetYearlyByRegion); err != nil {
		f.Close()
		return nil, err
	}
	for _, sheet := range []string{SheetYearlyTotal, SheetRegionTotal, SheetLongRecords} {
		if _, err := f.NewSheet(sheet); err != nil {
			f.Close()
			return nil, err
		}
	}

	var rows [][]interface{}
	for _, row := range res.Aggregates.Labeled() {
		label := interface{}(nil)
		if row.Labeled {
			label = row.Label
		}
		rows = append(rows, []interface{}{row.Region, row.Year, row.CapacityMW, label})
	}
	if err := writeSheet(f, SheetYearlyByRegion, []string{"Region", "Year", "Capacity (MW)", "Year Total Label"}, rows); err != nil {
		f.Close()
		return nil, err
	}

	rows = rows[:0]
	for _, t := range res.Aggregates.YearlyTotal {
		rows = append(rows, []interface{}{t.Year, t.CapacityMW, t.Label, t.Representative})
	}
	if err := writeSheet(f, SheetYearlyTotal, []string{"Year", "Capacity (MW)", "Label", "Label Region"}, rows); err != nil {
		f.Close()
		return nil, err
	}

	rows = rows[:0]
	for _, t := range res.Aggregates.RegionTotal {
		rows = append(rows, []interface{}{t.Region, t.CapacityMW, t.Rounded, t.Label})
	}
	if err := writeSheet(f, SheetRegionTotal, []string{"Region", "Capacity (MW)", "Rounded (MW)", "Label"}, rows); err != nil {
		f.Close()
		return nil, err
	}

	rows = rows[:0]
	for _, rec := range res.Long.Records {
		price := interface{}(nil)
		if rec.Price != nil {
			price = *rec.Price
		}
		rows = append(rows, []interface{}{
			rec.ExecutionDate.Format(ppa.DateLayout),
			rec.ProjectCapacityMW,
			price,
			rec.Region,
			rec.CapacityMW,
			rec.Year,
		})
	}
	if err := writeSheet(f, SheetLongRecords, ppa.LongFields, rows); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, 18); err != nil {
			return err
		}
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
