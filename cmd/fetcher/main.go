// Command fetcher downloads the raw catalog dump to the configured dataset
// path and verifies that the result loads cleanly.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"steamlens/internal/catalog"
	"steamlens/internal/config"
	"steamlens/internal/fetch"
	"steamlens/internal/infrastructure"
)

func main() {
	url := flag.String("url", "", "download URL (defaults to the configured dataset URL)")
	out := flag.String("out", "", "destination path (defaults to the configured dataset path)")
	skipVerify := flag.Bool("skip-verify", false, "skip the post-download load check")
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

	if *url == "" {
		*url = cfg.Dataset.URL
	}
	if *out == "" {
		*out = cfg.Dataset.Path
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Dataset.Timeout)
	defer cancel()

	fetcher := fetch.NewFetcher(logger)
	if err := fetcher.Download(ctx, *url, *out); err != nil {
		logger.Error("download failed", "url", *url, "error", err)
		os.Exit(1)
	}

	if *skipVerify {
		return
	}

	table, err := catalog.NewLoader(*out, logger).Prepare(ctx)
	if err != nil {
		logger.Error("downloaded dataset does not load", "path", *out, "error", err)
		os.Exit(1)
	}
	logger.Info("dataset verified", "path", *out, "rows", table.Len())
}
