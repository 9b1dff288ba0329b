// Package report renders a statistics summary as a plain-text climate report.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/couchcryptid/climate-report/internal/domain"
)

// DefaultPath is the report file written when no path is configured.
const DefaultPath = "climate_report.txt"

const separatorWidth = 40

// Writer writes climate reports to disk and announces each generated file on
// its confirmation stream.
type Writer struct {
	confirm io.Writer
	logger  *slog.Logger
}

// NewWriter creates a Writer that prints confirmations to confirm.
func NewWriter(confirm io.Writer, logger *slog.Logger) *Writer {
	return &Writer{confirm: confirm, logger: logger}
}

// Write renders the report for ds and summary and creates or truncates the
// file at path. An empty path selects DefaultPath. Missing parent directories
// are created.
func (w *Writer) Write(ds domain.Dataset, summary domain.Summary, path string) error {
	if path == "" {
		path = DefaultPath
	}

	content := Render(ds, summary)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // report is meant to be world-readable
		return fmt.Errorf("write report %s: %w", path, err)
	}

	w.logger.Info("report written", "path", path, "records", len(ds), "bytes", len(content))
	if w.confirm != nil {
		fmt.Fprintf(w.confirm, "Report generated: %s\n", path)
	}
	return nil
}

// Render formats the report body:
//
//	CLIMATE REPORT
//	Days analyzed: <n>
//	========================================
//
//	CLIMATE TEMPERATURE STATISTICS
//	- Mean: ...
//	- Median: ...
//	- Mode: ...
//	- Standard Deviation: ...
//
// followed by the humidity and pressure blocks in the same shape.
func Render(ds domain.Dataset, summary domain.Summary) string {
	var b strings.Builder
	b.WriteString("CLIMATE REPORT\n")
	fmt.Fprintf(&b, "Days analyzed: %d\n", len(ds))
	b.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	for _, c := range domain.Channels {
		s := summary.For(c)
		fmt.Fprintf(&b, "CLIMATE %s STATISTICS\n", strings.ToUpper(string(c)))
		fmt.Fprintf(&b, "- Mean: %s\n", formatFloat(s.Mean))
		fmt.Fprintf(&b, "- Median: %s\n", formatFloat(s.Median))
		fmt.Fprintf(&b, "- Mode: %d\n", s.Mode)
		fmt.Fprintf(&b, "- Standard Deviation: %s\n\n", formatFloat(s.StdDev))
	}
	return b.String()
}

// formatFloat prints the shortest decimal that round-trips v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
