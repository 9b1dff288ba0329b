package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/climate-report/internal/domain"
)

// CSV parses comma-separated files whose header row names the date,
// temperature, humidity and pressure columns (fecha, temperatura, humedad,
// presion, or their English equivalents). Extra columns are ignored.
type CSV struct{}

// Parse reads the file at path, keeping each row's date cell verbatim.
func (CSV) Parse(path string) (domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Path: path, Line: 1, Err: fmt.Errorf("%w: missing header row", domain.ErrMalformedRecord)}
	}
	if err != nil {
		return nil, csvReadError(path, err)
	}

	cols, err := columnIndex(header)
	if err != nil {
		return nil, &ParseError{Path: path, Line: 1, Err: err}
	}

	var ds domain.Dataset
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvReadError(path, err)
		}
		line, _ := r.FieldPos(0)

		obs, err := cols.observation(row)
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Err: err}
		}
		ds = append(ds, obs)
	}
	return ds, nil
}

// csvColumns holds the header position of each required column.
type csvColumns struct {
	date, temperature, humidity, pressure int
}

func columnIndex(header []string) (csvColumns, error) {
	find := func(f field) (int, error) {
		for i, h := range header {
			if f.matches(h) {
				return i, nil
			}
		}
		return -1, missingField(f)
	}

	var cols csvColumns
	var err error
	if cols.date, err = find(dateField); err != nil {
		return cols, err
	}
	if cols.temperature, err = find(temperatureField); err != nil {
		return cols, err
	}
	if cols.humidity, err = find(humidityField); err != nil {
		return cols, err
	}
	if cols.pressure, err = find(pressureField); err != nil {
		return cols, err
	}
	return cols, nil
}

func (c csvColumns) observation(row []string) (domain.Observation, error) {
	cell := func(i int, f field) (string, error) {
		if i >= len(row) {
			return "", missingField(f)
		}
		return row[i], nil
	}
	number := func(i int, f field) (int, error) {
		raw, err := cell(i, f)
		if err != nil {
			return 0, err
		}
		raw = strings.TrimSpace(raw)
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, invalidNumber(f, raw)
		}
		return v, nil
	}

	date, err := cell(c.date, dateField)
	if err != nil {
		return domain.Observation{}, err
	}
	temperature, err := number(c.temperature, temperatureField)
	if err != nil {
		return domain.Observation{}, err
	}
	humidity, err := number(c.humidity, humidityField)
	if err != nil {
		return domain.Observation{}, err
	}
	pressure, err := number(c.pressure, pressureField)
	if err != nil {
		return domain.Observation{}, err
	}

	return domain.Observation{
		Date:        date,
		Temperature: temperature,
		Humidity:    humidity,
		Pressure:    pressure,
	}, nil
}

// csvReadError converts encoding/csv syntax errors into a ParseError.
func csvReadError(path string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &ParseError{Path: path, Line: perr.Line, Err: fmt.Errorf("%w: %v", domain.ErrMalformedRecord, perr.Err)}
	}
	return fmt.Errorf("read %s: %w", path, err)
}
