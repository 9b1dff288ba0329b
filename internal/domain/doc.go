// Package domain models daily climate observations and the descriptive
// statistics computed over them.
//
// # Observations
//
// Every input format (key-value text, CSV, JSON) decodes into the same
// [Observation] struct, so parser outputs are interchangeable:
//
//	{Date: "2025-01-01", Temperature: 15, Humidity: 40, Pressure: 1012}
//
// Dates are ISO 8601 calendar dates kept as literal strings. The text source
// carries no dates; its parser synthesizes them from a configured start date,
// one day per line.
//
// # Channels
//
// A channel is one measured quantity: temperature, humidity or pressure.
// [Channels] fixes the order used when computing and reporting statistics.
//
// # Statistics
//
// For each channel [ComputeStatistics] derives:
//
//	Mean    arithmetic mean
//	Median  middle of the sorted column, average of the two central values when even
//	Mode    the single most frequent value
//	StdDev  sample standard deviation (n-1 denominator)
//
// The calculation is strict. An empty dataset, a channel with fewer than two
// values, or a channel whose highest frequency is shared by more than one
// value all fail instead of producing a partial summary.
package domain
