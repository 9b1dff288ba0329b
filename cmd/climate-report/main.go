package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/climate-report/internal/adapter/parser"
	"github.com/couchcryptid/climate-report/internal/adapter/report"
	"github.com/couchcryptid/climate-report/internal/config"
	"github.com/couchcryptid/climate-report/internal/observability"
	"github.com/couchcryptid/climate-report/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	sources := []pipeline.Source{
		{Name: "text", Path: cfg.TextInput, Parser: parser.NewText(cfg.StartDate())},
		{Name: "csv", Path: cfg.CSVInput, Parser: parser.CSV{}},
		{Name: "json", Path: cfg.JSONInput, Parser: parser.JSON{}},
	}
	writer := report.NewWriter(os.Stdout, logger)
	p := pipeline.New(sources, writer, cfg.ReportPath, logger, metrics, clockwork.NewRealClock())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := p.Run(ctx)

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("metrics textfile export failed", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("climate report failed", "error", runErr)
		stop()
		os.Exit(1)
	}
}
