package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix namespaces every environment variable, e.g. CLIMATE_REPORT_PATH.
const envPrefix = "CLIMATE"

// fileEnvVar names an optional YAML file applied beneath the environment.
const fileEnvVar = "CLIMATE_CONFIG_FILE"

const dateLayout = "2006-01-02"

// Config holds all run settings. Values resolve as defaults, then the YAML
// file named by CLIMATE_CONFIG_FILE, then CLIMATE_* environment variables.
type Config struct {
	TextInput string `yaml:"text_input" split_words:"true" validate:"required"`
	CSVInput  string `yaml:"csv_input" split_words:"true" validate:"required"`
	JSONInput string `yaml:"json_input" split_words:"true" validate:"required"`

	ReportPath string `yaml:"report_path" split_words:"true" validate:"required"`

	// TextStartDate is the date given to the first line of the text input.
	TextStartDate string `yaml:"text_start_date" split_words:"true" validate:"required,datetime=2006-01-02"`

	LogLevel  string `yaml:"log_level" split_words:"true" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" split_words:"true" validate:"oneof=text json"`

	// MetricsTextfile, when set, receives a Prometheus textfile dump at exit.
	MetricsTextfile string `yaml:"metrics_textfile" split_words:"true"`

	startDate time.Time
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Config {
	return Config{
		TextInput:     "january_climate.txt",
		CSVInput:      "february_climate.csv",
		JSONInput:     "march_climate.json",
		ReportPath:    "climate_report.txt",
		TextStartDate: "2025-01-01",
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load resolves configuration from a .env file (if present), an optional YAML
// file, and the environment, then validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Defaults()

	if path := os.Getenv(fileEnvVar); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// StartDate returns TextStartDate as a UTC date.
func (c *Config) StartDate() time.Time {
	return c.startDate
}

// loadFile overlays the YAML file at path onto cfg. Keys absent from the file
// keep their current values.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", fileEnvVar, path, err)
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return fmt.Errorf("parse %s %s: %w", fileEnvVar, path, err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid %s %q: failed %q check", envName(fe.StructField()), fe.Value(), fe.Tag())
		}
		return fmt.Errorf("config validation failed: %w", err)
	}

	start, err := time.ParseInLocation(dateLayout, c.TextStartDate, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid %s_TEXT_START_DATE %q: %w", envPrefix, c.TextStartDate, err)
	}
	c.startDate = start
	return nil
}

// Word splitting used by envconfig for split_words fields.
var (
	gatherRegexp  = regexp.MustCompile("([^A-Z]+|[A-Z]+[^A-Z]+|[A-Z]+)")
	acronymRegexp = regexp.MustCompile("([A-Z]+)([A-Z][^A-Z]+)")
)

// envName returns the prefixed environment variable envconfig reads for a
// Config field, e.g. CSVInput -> CLIMATE_CSV_INPUT.
func envName(field string) string {
	var words []string
	for _, w := range gatherRegexp.FindAllString(field, -1) {
		if m := acronymRegexp.FindStringSubmatch(w); m != nil {
			words = append(words, m[1], m[2])
			continue
		}
		words = append(words, w)
	}
	return envPrefix + "_" + strings.ToUpper(strings.Join(words, "_"))
}
