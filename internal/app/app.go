// Package app runs one pass of the PPA pipeline: load, reshape, normalize,
// aggregate, export and draw.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"solarppa/internal/chart"
	"solarppa/internal/config"
	"solarppa/internal/export"
	"solarppa/internal/loader"
	"solarppa/internal/pipeline"
	"solarppa/internal/ppa"
)

// Outputs lists what a run produced. Paths are empty for outputs the
// configuration switched off.
type Outputs struct {
	RunID    string
	LongCSV  string
	Workbook string
	Report   string
	Figure   string
	Charts   []string
	Result   *pipeline.Result
}

// App holds the configuration and logger for a run.
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	now    func() time.Time
}

// New creates an App. A nil logger discards output.
func New(cfg *config.Config, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{cfg: cfg, logger: logger, now: time.Now}
}

// Run executes the pipeline once. Any error stops the run; files written
// before the failure are left in place.
func (a *App) Run() (*Outputs, error) {
	out := &Outputs{RunID: uuid.NewString()}
	logger := a.logger.With(zap.String("run_id", out.RunID))
	started := a.now()

	res, err := a.process(logger)
	if err != nil {
		return nil, err
	}
	out.Result = res

	if err := os.MkdirAll(a.cfg.Output.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	writer := export.NewWriter(a.cfg.Output.Dir, logger)

	if name := a.cfg.Output.LongCSV; name != "" {
		if out.LongCSV, err = writer.LongCSV(name, res.Long); err != nil {
			return nil, fmt.Errorf("failed to export long table: %w", err)
		}
	}
	if name := a.cfg.Output.Workbook; name != "" {
		if out.Workbook, err = writer.Workbook(name, res); err != nil {
			return nil, fmt.Errorf("failed to export summary workbook: %w", err)
		}
	}
	if name := a.cfg.Output.Report; name != "" {
		if out.Report, err = writer.Report(name, res, started); err != nil {
			return nil, fmt.Errorf("failed to export summary report: %w", err)
		}
	}
	if name := a.cfg.Output.Figure; name != "" {
		out.Figure = writer.Path(name)
		if out.Charts, err = a.draw(res, out.Figure, logger); err != nil {
			return nil, err
		}
	}

	logger.Info("Run complete",
		zap.Int("long_records", len(res.Long.Records)),
		zap.Int("regions", len(res.Long.Regions)),
		zap.Duration("elapsed", a.now().Sub(started)))
	return out, nil
}

// process produces the pipeline result from either the workbook or a
// previously exported long CSV.
func (a *App) process(logger *zap.Logger) (*pipeline.Result, error) {
	p := pipeline.New(pipeline.NormalizeOptions{Date1904: a.cfg.Input.Date1904}, logger)

	if path := a.cfg.Input.LongCSV; path != "" {
		logger.Info("Reading long table", zap.String("path", path))
		long, err := export.ReadLongCSVFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read long table: %w", err)
		}
		return p.RunLong(long)
	}

	raw, err := a.load(logger)
	if err != nil {
		return nil, err
	}
	res, err := p.Run(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to process %s: %w", a.cfg.Input.Path, err)
	}
	return res, nil
}

func (a *App) load(logger *zap.Logger) (ppa.RawTable, error) {
	in := a.cfg.Input
	l := loader.New(loader.Options{
		Sheet:           in.Sheet,
		Range:           in.Range,
		Regions:         in.Regions,
		CheckHeaders:    in.CheckHeaders,
		ExpectedHeaders: in.ExpectedHeaders,
	}, logger)

	raw, err := l.LoadFile(in.Path)
	if err != nil {
		return ppa.RawTable{}, fmt.Errorf("failed to load %s: %w", in.Path, err)
	}
	return raw, nil
}

func (a *App) draw(res *pipeline.Result, figure string, logger *zap.Logger) ([]string, error) {
	d, err := chart.Build(res, a.cfg.Chart.Title)
	if err != nil {
		return nil, err
	}

	width := vg.Length(a.cfg.Chart.Width) * vg.Inch
	height := vg.Length(a.cfg.Chart.Height) * vg.Inch
	if err := d.SavePNG(figure, width, height); err != nil {
		return nil, err
	}
	logger.Info("Wrote dashboard", zap.String("path", figure))

	if !a.cfg.Output.SplitCharts {
		return nil, nil
	}
	base := strings.TrimSuffix(filepath.Base(figure), filepath.Ext(figure))
	charts, err := d.SaveCharts(filepath.Dir(figure), base, width, height)
	if err != nil {
		return charts, err
	}
	logger.Info("Wrote individual charts", zap.Strings("paths", charts))
	return charts, nil
}
