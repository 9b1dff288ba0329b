package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	got, err := Mean([]int{10, 20, 30})
	require.NoError(t, err)
	assert.InDelta(t, 20.0, got, 1e-9)

	got, err = Mean([]int{1, 2})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got, 1e-9)

	_, err = Mean(nil)
	require.ErrorIs(t, err, ErrEmptyDataset)
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []int
		expected float64
	}{
		{"odd length", []int{10, 20, 30}, 20},
		{"unsorted odd", []int{30, 10, 20}, 20},
		{"even length averages central pair", []int{4, 1, 3, 2}, 2.5},
		{"single value", []int{7}, 7},
		{"negative values", []int{-5, -1, -3}, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Median(tt.values)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}

	t.Run("does not reorder input", func(t *testing.T) {
		values := []int{3, 1, 2}
		_, err := Median(values)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 1, 2}, values)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Median(nil)
		require.ErrorIs(t, err, ErrEmptyDataset)
	})
}

func TestMode(t *testing.T) {
	t.Run("single most common value", func(t *testing.T) {
		got, err := Mode([]int{1, 2, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, 2, got)
	})

	t.Run("single element", func(t *testing.T) {
		got, err := Mode([]int{5})
		require.NoError(t, err)
		assert.Equal(t, 5, got)
	})

	t.Run("all equal", func(t *testing.T) {
		got, err := Mode([]int{4, 4, 4})
		require.NoError(t, err)
		assert.Equal(t, 4, got)
	})

	t.Run("tie fails", func(t *testing.T) {
		_, err := Mode([]int{1, 1, 2, 2})
		require.ErrorIs(t, err, ErrNoUniqueMode)
		assert.Contains(t, err.Error(), "2 equally common values")
	})

	t.Run("all distinct fails", func(t *testing.T) {
		_, err := Mode([]int{10, 20, 30})
		require.ErrorIs(t, err, ErrNoUniqueMode)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Mode(nil)
		require.ErrorIs(t, err, ErrEmptyDataset)
	})
}

func TestStdDev(t *testing.T) {
	t.Run("sample not population", func(t *testing.T) {
		got, err := StdDev([]int{10, 20, 30})
		require.NoError(t, err)
		assert.InDelta(t, 10.0, got, 1e-9)
	})

	t.Run("constant column", func(t *testing.T) {
		got, err := StdDev([]int{3, 3})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, got, 1e-9)
	})

	t.Run("fewer than two values", func(t *testing.T) {
		_, err := StdDev([]int{1})
		require.ErrorIs(t, err, ErrTooFewValues)

		_, err = StdDev(nil)
		require.ErrorIs(t, err, ErrTooFewValues)
	})
}

func TestComputeStatistics(t *testing.T) {
	fixedTime := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	t.Run("all channels", func(t *testing.T) {
		ds := Dataset{
			{Date: "2025-01-01", Temperature: 15, Humidity: 40, Pressure: 1012},
			{Date: "2025-01-02", Temperature: 16, Humidity: 41, Pressure: 1011},
			{Date: "2025-01-03", Temperature: 15, Humidity: 41, Pressure: 1012},
		}

		summary, err := ComputeStatistics(ds)
		require.NoError(t, err)

		temp := summary.For(Temperature)
		assert.InDelta(t, 46.0/3, temp.Mean, 1e-9)
		assert.InDelta(t, 15.0, temp.Median, 1e-9)
		assert.Equal(t, 15, temp.Mode)
		assert.InDelta(t, 0.5773502691896257, temp.StdDev, 1e-9)

		hum := summary.For(Humidity)
		assert.Equal(t, 41, hum.Mode)
		assert.InDelta(t, 41.0, hum.Median, 1e-9)

		pres := summary.For(Pressure)
		assert.Equal(t, 1012, pres.Mode)
		assert.InDelta(t, 1012.0, pres.Median, 1e-9)

		assert.Len(t, summary.Channels, 3)
		assert.Equal(t, fixedTime, summary.ComputedAt)
	})

	t.Run("empty dataset", func(t *testing.T) {
		_, err := ComputeStatistics(nil)
		require.ErrorIs(t, err, ErrEmptyDataset)
	})

	t.Run("single record", func(t *testing.T) {
		_, err := ComputeStatistics(Dataset{{Date: "2025-01-01", Temperature: 1, Humidity: 2, Pressure: 3}})
		require.ErrorIs(t, err, ErrTooFewValues)
		assert.Contains(t, err.Error(), "temperature")
	})

	t.Run("tied mode names the channel", func(t *testing.T) {
		ds := Dataset{
			{Temperature: 5, Humidity: 1, Pressure: 9},
			{Temperature: 5, Humidity: 1, Pressure: 9},
			{Temperature: 5, Humidity: 2, Pressure: 9},
			{Temperature: 6, Humidity: 2, Pressure: 9},
		}
		_, err := ComputeStatistics(ds)
		require.ErrorIs(t, err, ErrNoUniqueMode)
		assert.Contains(t, err.Error(), "statistics: humidity: mode")
	})
}

func TestSetClock(t *testing.T) {
	t.Run("set custom clock", func(t *testing.T) {
		fixedTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		SetClock(clockwork.NewFakeClockAt(fixedTime))
		assert.Equal(t, fixedTime, clock.Now())
		SetClock(nil)
	})

	t.Run("reset to real clock", func(t *testing.T) {
		SetClock(clockwork.NewFakeClockAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
		SetClock(nil)
		assert.True(t, time.Since(clock.Now()) < time.Second)
	})
}
