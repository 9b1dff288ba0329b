// Package parser decodes climate observation files into domain datasets.
// Each format has its own Parser; all of them yield the same
// domain.Observation shape.
package parser

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/climate-report/internal/domain"
)

// ParseError locates a format error within an input file. Line is the 1-based
// file line for text and CSV inputs and the 1-based array element for JSON.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// field identifies one logical observation field and the names it is
// recognized under in CSV headers and JSON keys. The Spanish identifiers are
// the ones the upstream exports use.
type field struct {
	name    string
	aliases []string
}

var (
	dateField        = field{name: "date", aliases: []string{"fecha", "date"}}
	temperatureField = field{name: "temperature", aliases: []string{"temperatura", "temperature"}}
	humidityField    = field{name: "humidity", aliases: []string{"humedad", "humidity"}}
	pressureField    = field{name: "pressure", aliases: []string{"presion", "presión", "pressure"}}
)

// matches reports whether key names f. Comparison is case-insensitive and
// ignores surrounding whitespace and a leading UTF-8 byte order mark.
func (f field) matches(key string) bool {
	key = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(key, "\ufeff")))
	for _, a := range f.aliases {
		if key == a {
			return true
		}
	}
	return false
}

func missingField(f field) error {
	return fmt.Errorf("%w: %s", domain.ErrMissingField, f.name)
}

func invalidNumber(f field, raw string) error {
	return fmt.Errorf("%w: %s=%q", domain.ErrInvalidNumber, f.name, raw)
}
