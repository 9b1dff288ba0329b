package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/climate-report/internal/domain"
)

// JSON parses files holding a top-level array of observation objects:
//
//	[{"fecha": "2025-03-01", "temperatura": 18, "humedad": "52", "presion": 1009}]
//
// Numeric fields may be JSON numbers or strings holding an integer.
type JSON struct{}

// Parse reads the file at path. Output order mirrors array order.
func (JSON) Parse(path string) (domain.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	if b := bytes.TrimSpace(data); len(b) == 0 || b[0] != '[' {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("%w: top-level value is not an array", domain.ErrMalformedRecord)}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)}
	}

	ds := make(domain.Dataset, 0, len(items))
	for i, item := range items {
		obs, err := jsonObservation(item)
		if err != nil {
			return nil, &ParseError{Path: path, Line: i + 1, Err: err}
		}
		ds = append(ds, obs)
	}
	return ds, nil
}

func jsonObservation(item json.RawMessage) (domain.Observation, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
		return domain.Observation{}, fmt.Errorf("%w: array element is not an object", domain.ErrMalformedRecord)
	}

	rawDate, ok := lookup(obj, dateField)
	if !ok {
		return domain.Observation{}, missingField(dateField)
	}
	var date string
	if len(rawDate) == 0 || rawDate[0] != '"' || json.Unmarshal(rawDate, &date) != nil {
		return domain.Observation{}, fmt.Errorf("%w: date must be a string, got %s", domain.ErrMalformedRecord, rawDate)
	}

	number := func(f field) (int, error) {
		raw, ok := lookup(obj, f)
		if !ok {
			return 0, missingField(f)
		}
		v, ok := jsonInt(raw)
		if !ok {
			return 0, invalidNumber(f, string(raw))
		}
		return v, nil
	}

	temperature, err := number(temperatureField)
	if err != nil {
		return domain.Observation{}, err
	}
	humidity, err := number(humidityField)
	if err != nil {
		return domain.Observation{}, err
	}
	pressure, err := number(pressureField)
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

// lookup finds f in obj, trying aliases in declaration order.
func lookup(obj map[string]json.RawMessage, f field) (json.RawMessage, bool) {
	for _, alias := range f.aliases {
		if v, ok := obj[alias]; ok {
			return bytes.TrimSpace(v), true
		}
	}
	for k, v := range obj {
		if f.matches(k) {
			return bytes.TrimSpace(v), true
		}
	}
	return nil, false
}

// jsonInt coerces a JSON number or a string holding a base-10 integer.
// Fractional numbers are truncated toward zero.
func jsonInt(raw json.RawMessage) (int, bool) {
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		return v, err == nil
	}

	s := string(raw)
	v, err := strconv.Atoi(s)
	if err == nil {
		return v, true
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int cannot hold.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int(math.Trunc(f)), true
}
