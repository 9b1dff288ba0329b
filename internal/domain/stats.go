package domain

import (
	"fmt"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// ChannelStats holds the descriptive statistics for one channel.
type ChannelStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Mode   int     `json:"mode"`
	StdDev float64 `json:"stdev"`
}

// Summary maps every channel to its statistics. It is derived entirely from
// a dataset and never persisted on its own.
type Summary struct {
	Channels   map[Channel]ChannelStats `json:"channels"`
	ComputedAt time.Time                `json:"computed_at"`
}

// For returns the statistics block for c.
func (s Summary) For(c Channel) ChannelStats {
	return s.Channels[c]
}

// ComputeStatistics derives mean, median, mode and sample standard deviation
// for every channel of ds. The first failing channel aborts the calculation.
func ComputeStatistics(ds Dataset) (Summary, error) {
	if len(ds) == 0 {
		return Summary{}, fmt.Errorf("statistics: %w", ErrEmptyDataset)
	}

	summary := Summary{Channels: make(map[Channel]ChannelStats, len(Channels))}
	for _, c := range Channels {
		cs, err := channelStats(ds.Column(c))
		if err != nil {
			return Summary{}, fmt.Errorf("statistics: %s: %w", c, err)
		}
		summary.Channels[c] = cs
	}
	summary.ComputedAt = clock.Now()
	return summary, nil
}

func channelStats(col []int) (ChannelStats, error) {
	mean, err := Mean(col)
	if err != nil {
		return ChannelStats{}, fmt.Errorf("mean: %w", err)
	}
	median, err := Median(col)
	if err != nil {
		return ChannelStats{}, fmt.Errorf("median: %w", err)
	}
	mode, err := Mode(col)
	if err != nil {
		return ChannelStats{}, fmt.Errorf("mode: %w", err)
	}
	stdev, err := StdDev(col)
	if err != nil {
		return ChannelStats{}, fmt.Errorf("stdev: %w", err)
	}
	return ChannelStats{Mean: mean, Median: median, Mode: mode, StdDev: stdev}, nil
}

// Mean returns the arithmetic mean of values.
func Mean(values []int) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyDataset
	}
	return stat.Mean(toFloats(values), nil), nil
}

// Median returns the middle value of the sorted column. For an even number of
// values it is the average of the two central values.
func Median(values []int) (float64, error) {
	n := len(values)
	if n == 0 {
		return 0, ErrEmptyDataset
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2]), nil
	}
	return (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2, nil
}

// Mode returns the single most frequent value. When more than one distinct
// value shares the highest frequency there is no unique mode and
// ErrNoUniqueMode is returned; no value is picked arbitrarily.
func Mode(values []int) (int, error) {
	if len(values) == 0 {
		return 0, ErrEmptyDataset
	}

	counts := make(map[int]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	var mode, best, tied int
	for v, n := range counts {
		switch {
		case n > best:
			mode, best, tied = v, n, 1
		case n == best:
			tied++
		}
	}
	if tied > 1 {
		return 0, fmt.Errorf("%w: found %d equally common values", ErrNoUniqueMode, tied)
	}
	return mode, nil
}

// StdDev returns the sample standard deviation (n-1 denominator) of values.
func StdDev(values []int) (float64, error) {
	if len(values) < 2 {
		return 0, ErrTooFewValues
	}
	return stat.StdDev(toFloats(values), nil), nil
}

func toFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
