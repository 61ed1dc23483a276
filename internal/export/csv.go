package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"solarppa/internal/ppa"
)

// LongCSV writes the normalized long table to name and returns the full
// path.
func (w *Writer) LongCSV(name string, table ppa.LongTable) (string, error) {
	path, err := w.write(name, func(out io.Writer) error {
		if err := WriteLongCSV(out, table); err != nil {
			return fmt.Errorf("failed to write %s: %w", w.Path(name), err)
		}
		return nil
	})
	if err != nil {
		return path, err
	}

	w.logger.Info("Wrote long CSV",
		zap.String("path", path),
		zap.Int("record_count", len(table.Records)))
	return path, nil
}

// WriteLongCSV encodes table in the cross-implementation long format.
func WriteLongCSV(out io.Writer, table ppa.LongTable) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(ppa.LongFields); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, rec := range table.Records {
		if err := writer.Write(longRow(rec)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func longRow(rec ppa.LongRecord) []string {
	price := ""
	if rec.Price != nil {
		price = formatFloat(*rec.Price)
	}
	return []string{
		rec.ExecutionDate.Format(ppa.DateLayout),
		formatFloat(rec.ProjectCapacityMW),
		price,
		rec.Region,
		formatFloat(rec.CapacityMW),
		strconv.Itoa(rec.Year),
	}
}

// formatFloat uses the shortest representation that reads back exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ReadLongCSVFile reads a long table previously written by LongCSV.
func ReadLongCSVFile(path string) (ppa.LongTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return ppa.LongTable{}, fmt.Errorf("failed to open long CSV: %w", err)
	}
	defer f.Close()
	return ReadLongCSV(f, path)
}

// ReadLongCSV decodes the long format. The result is not normalized:
// RawDate holds the date text and the region order is left empty.
func ReadLongCSV(in io.Reader, name string) (ppa.LongTable, error) {
	mismatch := func(cell, reason string) error {
		return &ppa.SchemaMismatchError{Sheet: name, Range: "csv", Cell: cell, Reason: reason}
	}

	reader := csv.NewReader(in)
	reader.FieldsPerRecord = len(ppa.LongFields)

	header, err := reader.Read()
	if err == io.EOF {
		return ppa.LongTable{}, mismatch("", "file is empty")
	}
	if err != nil {
		return ppa.LongTable{}, mismatch("", err.Error())
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	for i, field := range ppa.LongFields {
		if header[i] != field {
			return ppa.LongTable{}, mismatch(fmt.Sprintf("line 1 field %d", i+1), fmt.Sprintf("header %q, expected %q", header[i], field))
		}
	}

	var table ppa.LongTable
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ppa.LongTable{}, mismatch(fmt.Sprintf("line %d", line), err.Error())
		}

		number := func(col int) (float64, error) {
			v, err := strconv.ParseFloat(row[col], 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, mismatch(fmt.Sprintf("line %d field %s", line, ppa.LongFields[col]), fmt.Sprintf("%q is not a number", row[col]))
			}
			return v, nil
		}

		rec := ppa.LongRecord{Row: line, RawDate: row[0], Region: row[3]}
		if rec.ProjectCapacityMW, err = number(1); err != nil {
			return ppa.LongTable{}, err
		}
		if row[2] != "" {
			price, err := number(2)
			if err != nil {
				return ppa.LongTable{}, err
			}
			rec.Price = &price
		}
		if rec.CapacityMW, err = number(4); err != nil {
			return ppa.LongTable{}, err
		}
		if rec.Year, err = strconv.Atoi(row[5]); err != nil {
			return ppa.LongTable{}, mismatch(fmt.Sprintf("line %d field year", line), fmt.Sprintf("%q is not a year", row[5]))
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}
