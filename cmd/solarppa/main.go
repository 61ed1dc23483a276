package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"solarppa/internal/app"
	"solarppa/internal/config"
	"solarppa/internal/logging"
)

func main() {
	_ = godotenv.Load(".env.local")

	configPath := flag.String("config", "", "path to a YAML config file")
	input := flag.String("input", "", "workbook to read (overrides config)")
	sheet := flag.String("sheet", "", "sheet holding the PPA table (overrides config)")
	cellRange := flag.String("range", "", "cell range of the table, e.g. A1:M300 (overrides config)")
	fromCSV := flag.String("from-csv", "", "re-run from a previously exported long CSV instead of the workbook")
	outDir := flag.String("out", "", "output directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *input != "" {
		cfg.Input.Path = *input
	}
	if *sheet != "" {
		cfg.Input.Sheet = *sheet
	}
	if *cellRange != "" {
		cfg.Input.Range = *cellRange
	}
	if *fromCSV != "" {
		cfg.Input.LongCSV = *fromCSV
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	out, err := app.New(cfg, logger).Run()
	if err != nil {
		logger.Error("Run failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	fmt.Println("Solar PPA dashboard complete")
	fmt.Printf("Records: %d across %d regions\n", len(out.Result.Long.Records), len(out.Result.Long.Regions))
	fmt.Println("Output files:")
	for _, path := range append([]string{out.LongCSV, out.Workbook, out.Report, out.Figure}, out.Charts...) {
		if path != "" {
			fmt.Println("   -", path)
		}
	}
}
