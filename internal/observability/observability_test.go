package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-report/internal/config"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Config{LogLevel: "info", LogFormat: "json"})

	logger.Debug("hidden")
	logger.Info("visible", "records", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "climate-report", entry["app"])
	assert.NotEmpty(t, entry["run_id"])
	assert.InDelta(t, 3, entry["records"], 0)
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Config{LogLevel: "debug", LogFormat: "text"})

	logger.Debug("parsed source", "source", "csv")

	assert.Contains(t, buf.String(), "parsed source")
	assert.Contains(t, buf.String(), "csv")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.in))
		})
	}
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.RecordsParsed, m.ReportsWritten)

	m.RecordsParsed.WithLabelValues("csv").Add(28)
	m.ReportsWritten.Inc()

	path := filepath.Join(t.TempDir(), "climate.prom")
	require.NoError(t, writeTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `climate_report_records_parsed_total{source="csv"} 28`)
	assert.Contains(t, string(data), "climate_report_reports_written_total 1")
	assert.InDelta(t, 28, testutil.ToFloat64(m.RecordsParsed.WithLabelValues("csv")), 0)
}

func TestWriteTextfile_BadPath(t *testing.T) {
	err := writeTextfile(filepath.Join(t.TempDir(), "missing", "climate.prom"), prometheus.NewRegistry())
	require.Error(t, err)
}
