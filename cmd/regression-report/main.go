// Command regression-report loads the local catalog dump, runs the OLS
// analysis, and prints the summary report. It can also export the normalized
// catalog as CSV or XLSX alongside the report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"steamlens/internal/catalog"
	"steamlens/internal/config"
	"steamlens/internal/exporter"
	"steamlens/internal/infrastructure"
	"steamlens/internal/regress"
)

func main() {
	dataPath := flag.String("data", "", "dataset path (defaults to the configured dataset path)")
	outDir := flag.String("out", "", "report output directory (defaults to the configured reports dir)")
	saveReport := flag.Bool("save", false, "write the report to <out>/regression_report.txt")
	exportCSV := flag.Bool("csv", false, "export the normalized catalog to <out>/catalog.csv")
	exportXLSX := flag.Bool("xlsx", false, "export the normalized catalog to <out>/catalog.xlsx")
	minYear := flag.Int("year-from", 0, "only include games released in or after this year")
	minPrice := flag.Float64("price-min", 0, "only include games priced at or above this value")
	maxPrice := flag.Float64("price-max", 0, "only include games priced at or below this value (0 disables)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if *dataPath == "" {
		*dataPath = cfg.Dataset.Path
	}
	if *outDir == "" {
		*outDir = cfg.Dataset.ReportsDir
	}

	ctx := context.Background()
	table, err := catalog.NewLoader(*dataPath, logger).Prepare(ctx)
	if err != nil {
		logger.Error("failed to prepare dataset", "path", *dataPath, "error", err)
		os.Exit(1)
	}

	if *minYear > 0 || *minPrice > 0 || *maxPrice > 0 {
		table = table.Filter(func(g catalog.Game) bool {
			if *minYear > 0 && (!g.HasReleaseDate() || g.ReleaseDate.Year() < *minYear) {
				return false
			}
			if *minPrice > 0 && g.Price < *minPrice {
				return false
			}
			if *maxPrice > 0 && g.Price > *maxPrice {
				return false
			}
			return true
		})
		logger.Info("catalog filtered", "rows", table.Len())
	}

	result := regress.Analyze(table.Frame())
	fmt.Println(result.Text)

	if *saveReport {
		path := filepath.Join(*outDir, "regression_report.txt")
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			logger.Error("failed to create output directory", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, []byte(result.Text), 0644); err != nil {
			logger.Error("failed to write report", "path", path, "error", err)
			os.Exit(1)
		}
		logger.Info("report written", "path", path)
	}

	if *exportCSV {
		if err := exporter.NewCSVWriter(*outDir).ExportCatalogCSV(table, "catalog.csv"); err != nil {
			logger.Error("CSV export failed", "error", err)
			os.Exit(1)
		}
	}
	if *exportXLSX {
		if err := exporter.NewXLSXWriter(*outDir).ExportCatalog(table, "catalog.xlsx"); err != nil {
			logger.Error("XLSX export failed", "error", err)
			os.Exit(1)
		}
	}
}
