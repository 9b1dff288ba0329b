package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/climate-report/internal/domain"
	"github.com/couchcryptid/climate-report/internal/observability"
)

// Parser decodes one input file into a dataset.
type Parser interface {
	Parse(path string) (domain.Dataset, error)
}

// ReportWriter persists the dataset summary to path.
type ReportWriter interface {
	Write(ds domain.Dataset, summary domain.Summary, path string) error
}

// Source is one input file and the parser that understands its format.
// Name labels logs and metrics ("text", "csv", "json").
type Source struct {
	Name   string
	Path   string
	Parser Parser
}

// Pipeline orchestrates the parse-unify-compute-write run.
type Pipeline struct {
	sources    []Source
	writer     ReportWriter
	reportPath string
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock
}

// New creates a Pipeline over sources in the order given.
func New(sources []Source, w ReportWriter, reportPath string, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	return &Pipeline{
		sources:    sources,
		writer:     w,
		reportPath: reportPath,
		logger:     logger,
		metrics:    metrics,
		clock:      clock,
	}
}

// Run executes every step once, in order. The first failure aborts the run
// and no report is written. ctx is only checked between steps.
func (p *Pipeline) Run(ctx context.Context) error {
	start := p.clock.Now()
	p.logger.Info("pipeline started", "sources", len(p.sources), "report", p.reportPath)

	sets := make([]domain.Dataset, 0, len(p.sources))
	for _, src := range p.sources {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("pipeline stopped before parsing %s: %w", src.Name, err)
		}
		ds, err := p.parse(src)
		if err != nil {
			return err
		}
		sets = append(sets, ds)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("pipeline stopped before computing statistics: %w", err)
	}
	unified := domain.Unify(sets...)
	p.metrics.DatasetRecords.Set(float64(len(unified)))
	p.logger.Debug("datasets unified", "records", len(unified))

	summary, err := domain.ComputeStatistics(unified)
	if err != nil {
		p.metrics.StatisticsErrors.Inc()
		return fmt.Errorf("compute statistics: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("pipeline stopped before writing report: %w", err)
	}
	if err := p.writer.Write(unified, summary, p.reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	p.metrics.ReportsWritten.Inc()

	end := p.clock.Now()
	elapsed := end.Sub(start)
	p.metrics.RunDuration.Observe(elapsed.Seconds())
	p.metrics.LastSuccessTimestamp.Set(float64(end.Unix()))
	p.logger.Info("pipeline finished", "records", len(unified), "duration", elapsed)
	return nil
}

func (p *Pipeline) parse(src Source) (domain.Dataset, error) {
	ds, err := src.Parser.Parse(src.Path)
	if err != nil {
		p.metrics.ParseErrors.WithLabelValues(src.Name).Inc()
		return nil, fmt.Errorf("parse %s source %s: %w", src.Name, src.Path, err)
	}
	p.metrics.RecordsParsed.WithLabelValues(src.Name).Add(float64(len(ds)))
	p.logger.Info("source parsed", "source", src.Name, "path", src.Path, "records", len(ds))
	return ds, nil
}
