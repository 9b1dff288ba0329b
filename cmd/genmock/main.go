// Command genmock writes deterministic sample inputs for the climate report:
// a labelled text file, a CSV file, and a JSON file, one per month. The files
// are read back with the real parsers and the resulting statistics are printed
// so test assertions can be updated from them.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir data/mock -days 28 -seed 42
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/climate-report/internal/adapter/parser"
	"github.com/couchcryptid/climate-report/internal/adapter/report"
	"github.com/couchcryptid/climate-report/internal/domain"
)

var baseDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// jsonRecord uses the field names of the historical station exports.
type jsonRecord struct {
	Fecha       string `json:"fecha"`
	Temperatura int    `json:"temperatura"`
	Humedad     int    `json:"humedad"`
	Presion     int    `json:"presion"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", ".", "directory to write the sample inputs into")
	days := flag.Int("days", 28, "observations per file")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	if *days <= 0 {
		flag.Usage()
		return fmt.Errorf("-days must be positive, got %d", *days)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))

	textPath := filepath.Join(*outDir, "january_climate.txt")
	csvPath := filepath.Join(*outDir, "february_climate.csv")
	jsonPath := filepath.Join(*outDir, "march_climate.json")

	if err := writeText(textPath, generate(rng, baseDate, *days)); err != nil {
		return fmt.Errorf("writing text sample: %w", err)
	}
	if err := writeCSV(csvPath, generate(rng, baseDate.AddDate(0, 1, 0), *days)); err != nil {
		return fmt.Errorf("writing csv sample: %w", err)
	}
	if err := writeJSON(jsonPath, generate(rng, baseDate.AddDate(0, 2, 0), *days)); err != nil {
		return fmt.Errorf("writing json sample: %w", err)
	}
	log.Printf("wrote %s, %s, %s (%d days each)", textPath, csvPath, jsonPath, *days)

	return printStats(textPath, csvPath, jsonPath)
}

// generate produces one month of plausible winter readings.
func generate(rng *rand.Rand, start time.Time, days int) domain.Dataset {
	ds := make(domain.Dataset, 0, days)
	for i := range days {
		ds = append(ds, domain.Observation{
			Date:        start.AddDate(0, 0, i).Format(domain.DateLayout),
			Temperature: rng.IntN(25) - 5,
			Humidity:    40 + rng.IntN(51),
			Pressure:    995 + rng.IntN(31),
		})
	}
	return ds
}

func writeText(path string, ds domain.Dataset) error {
	var b strings.Builder
	for _, o := range ds {
		fmt.Fprintf(&b, "Temperature: %d, Humidity: %d, Pressure: %d\n", o.Temperature, o.Humidity, o.Pressure)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func writeCSV(path string, ds domain.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"fecha", "temperatura", "humedad", "presion"}); err != nil {
		return err
	}
	for _, o := range ds {
		row := []string{
			o.Date,
			strconv.Itoa(o.Temperature),
			strconv.Itoa(o.Humidity),
			strconv.Itoa(o.Pressure),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func writeJSON(path string, ds domain.Dataset) error {
	recs := make([]jsonRecord, 0, len(ds))
	for _, o := range ds {
		recs = append(recs, jsonRecord{
			Fecha:       o.Date,
			Temperatura: o.Temperature,
			Humedad:     o.Humidity,
			Presion:     o.Pressure,
		})
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// printStats parses the generated files back and prints the report they
// would produce. Random data may have no unique mode; that is reported, not fatal.
func printStats(textPath, csvPath, jsonPath string) error {
	domain.SetClock(clockwork.NewFakeClockAt(baseDate.AddDate(0, 3, 0)))
	defer domain.SetClock(nil)

	text, err := parser.NewText(baseDate).Parse(textPath)
	if err != nil {
		return fmt.Errorf("re-parse text sample: %w", err)
	}
	csvData, err := parser.CSV{}.Parse(csvPath)
	if err != nil {
		return fmt.Errorf("re-parse csv sample: %w", err)
	}
	jsonData, err := parser.JSON{}.Parse(jsonPath)
	if err != nil {
		return fmt.Errorf("re-parse json sample: %w", err)
	}

	ds := domain.Unify(text, csvData, jsonData)
	summary, err := domain.ComputeStatistics(ds)
	if err != nil {
		log.Printf("statistics unavailable for this seed: %v", err)
		return nil
	}

	fmt.Println("\n=== Expected report for updating test assertions ===")
	fmt.Print(report.Render(ds, summary))
	return nil
}
