package parser

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/climate-report/internal/domain"
)

// DefaultStartDate is the date assigned to the first line of a text source.
var DefaultStartDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Text parses line-oriented key-value files:
//
//	temperature: 15, humidity: 40, pressure: 1012
//
// The three fields appear in that fixed order. The files carry no dates, so
// line n is dated StartDate plus n-1 days.
type Text struct {
	StartDate time.Time
}

// NewText returns a Text parser whose first record is dated start.
func NewText(start time.Time) Text {
	return Text{StartDate: start}
}

// Parse reads the file at path. Every line must hold exactly three
// comma-separated key:value fields; blank lines are not skipped.
func (p Text) Parse(path string) (domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	start := p.StartDate
	if start.IsZero() {
		start = DefaultStartDate
	}

	var ds domain.Dataset
	date := start
	scanner := bufio.NewScanner(f)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		obs, err := parseTextLine(scanner.Text())
		if err != nil {
			return nil, &ParseError{Path: path, Line: lineNum, Err: err}
		}
		obs.Date = date.Format(domain.DateLayout)
		ds = append(ds, obs)
		date = date.AddDate(0, 0, 1)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ParseError{Path: path, Line: len(ds) + 1, Err: fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)}
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ds, nil
}

// parseTextLine decodes "temperature:<int>, humidity:<int>, pressure:<int>".
// Labels are positional and not interpreted.
func parseTextLine(line string) (domain.Observation, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 3 {
		return domain.Observation{}, fmt.Errorf("%w: expected 3 comma-separated fields, got %d", domain.ErrMalformedRecord, len(parts))
	}

	fields := [3]field{temperatureField, humidityField, pressureField}
	var values [3]int
	for i, part := range parts {
		_, raw, ok := strings.Cut(part, ":")
		if !ok {
			return domain.Observation{}, fmt.Errorf("%w: field %d (%s) has no ':' separator", domain.ErrMalformedRecord, i+1, fields[i].name)
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return domain.Observation{}, invalidNumber(fields[i], strings.TrimSpace(raw))
		}
		values[i] = v
	}

	return domain.Observation{
		Temperature: values[0],
		Humidity:    values[1],
		Pressure:    values[2],
	}, nil
}
