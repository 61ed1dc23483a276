package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"solarppa/internal/ppa"
)

// Result is everything a run derives from its input.
type Result struct {
	Long       ppa.LongTable
	Stats      ReshapeStats
	Aggregates Aggregates
}

// Pipeline runs reshape, normalize and aggregate in order.
type Pipeline struct {
	opts   NormalizeOptions
	logger *zap.Logger
}

// New creates a Pipeline. A nil logger discards output.
func New(opts NormalizeOptions, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{opts: opts, logger: logger.Named("pipeline")}
}

// Run derives the long table and aggregates from a wide table. A date
// that cannot be parsed stops the run; there is no partial result.
func (p *Pipeline) Run(raw ppa.RawTable) (*Result, error) {
	long, stats := Reshape(raw)
	p.logger.Info("Reshaped wide table",
		zap.Int("raw_records", stats.RawRecords),
		zap.Int("long_records", stats.LongRecords),
		zap.Int("missing_region", stats.MissingRegion),
		zap.Int("ambiguous_region", stats.AmbiguousRegion))
	if stats.AmbiguousRegion > 0 {
		p.logger.Warn("Rows with more than one region value were split into one record per region",
			zap.Int("rows", stats.AmbiguousRegion))
	}

	res, err := p.RunLong(long)
	if err != nil {
		return nil, err
	}
	res.Stats = stats
	return res, nil
}

// RunLong normalizes and aggregates an already reshaped table, such as one
// read back from an exported long CSV.
func (p *Pipeline) RunLong(long ppa.LongTable) (*Result, error) {
	normalized, err := Normalize(long, p.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize long table: %w", err)
	}
	p.logger.Info("Normalized long table",
		zap.Int("records", len(normalized.Records)),
		zap.Strings("regions", normalized.Regions))

	agg := Aggregate(normalized)
	p.logger.Info("Aggregated capacity",
		zap.Int("region_years", len(agg.YearlyByRegion)),
		zap.Int("years", len(agg.YearlyTotal)),
		zap.Int("regions", len(agg.RegionTotal)),
		zap.Float64("total_mw", agg.TotalCapacity()))

	return &Result{
		Long:       normalized,
		Stats:      ReshapeStats{LongRecords: len(normalized.Records)},
		Aggregates: agg,
	}, nil
}
