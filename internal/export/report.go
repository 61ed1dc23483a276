package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"solarppa/internal/pipeline"
)

// Report writes a markdown summary of the run and returns the full path.
func (w *Writer) Report(name string, res *pipeline.Result, generated time.Time) (string, error) {
	path, err := w.write(name, func(out io.Writer) error {
		if _, err := io.WriteString(out, BuildReport(res, generated)); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	})
	if err != nil {
		return path, err
	}

	w.logger.Info("Wrote summary report", zap.String("path", path))
	return path, nil
}

// BuildReport renders the markdown summary.
func BuildReport(res *pipeline.Result, generated time.Time) string {
	agg := res.Aggregates
	var b strings.Builder

	b.WriteString("# Utility-Scale Solar PPA Summary\n\n")

	if res.Stats.RawRecords > 0 {
		fmt.Fprintf(&b, "- **Agreements loaded**: %d\n", res.Stats.RawRecords)
	}
	fmt.Fprintf(&b, "- **Region observations**: %d\n", len(res.Long.Records))
	fmt.Fprintf(&b, "- **Regions**: %d\n", len(res.Long.Regions))
	fmt.Fprintf(&b, "- **Total capacity**: %s MW\n", pipeline.FormatThousands(int64(agg.TotalCapacity())))
	if n := len(agg.YearlyTotal); n > 0 {
		fmt.Fprintf(&b, "- **Years covered**: %d-%d\n", agg.YearlyTotal[0].Year, agg.YearlyTotal[n-1].Year)
	}
	if res.Stats.MissingRegion > 0 {
		fmt.Fprintf(&b, "- **Rows without a region value (excluded)**: %d\n", res.Stats.MissingRegion)
	}
	if res.Stats.AmbiguousRegion > 0 {
		fmt.Fprintf(&b, "- **Rows with several region values (split)**: %d\n", res.Stats.AmbiguousRegion)
	}

	b.WriteString("\n## Capacity by region\n\n")
	b.WriteString("| Region | Capacity (MW) | Share |\n")
	b.WriteString("|--------|---------------|-------|\n")
	total := agg.TotalCapacity()
	for _, r := range agg.RegionTotal {
		share := 0.0
		if total > 0 {
			share = r.CapacityMW / total * 100
		}
		fmt.Fprintf(&b, "| %s | %s | %.1f%% |\n", r.Region, r.Label, share)
	}

	b.WriteString("\n## Capacity by year\n\n")
	b.WriteString("| Year | Capacity (MW) |\n")
	b.WriteString("|------|---------------|\n")
	for _, y := range agg.YearlyTotal {
		fmt.Fprintf(&b, "| %d | %s |\n", y.Year, y.Label)
	}

	fmt.Fprintf(&b, "\n---\n*Generated %s*\n", generated.Format("2 January 2006"))
	return b.String()
}
