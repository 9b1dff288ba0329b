package domain

// DateLayout is the ISO 8601 calendar date layout used for observation dates.
const DateLayout = "2006-01-02"

// Observation is one dated measurement triple.
type Observation struct {
	Date        string `json:"date"`
	Temperature int    `json:"temperature"`
	Humidity    int    `json:"humidity"`
	Pressure    int    `json:"pressure"`
}

// Dataset is an ordered sequence of observations. Order is source order and
// duplicate dates are allowed.
type Dataset []Observation

// Channel names one measured quantity of an observation.
type Channel string

const (
	Temperature Channel = "temperature"
	Humidity    Channel = "humidity"
	Pressure    Channel = "pressure"
)

// Channels lists every channel in report order.
var Channels = []Channel{Temperature, Humidity, Pressure}

// Value returns the channel's reading from o. Unknown channels read as 0.
func (c Channel) Value(o Observation) int {
	switch c {
	case Temperature:
		return o.Temperature
	case Humidity:
		return o.Humidity
	case Pressure:
		return o.Pressure
	default:
		return 0
	}
}

// Column extracts the channel's values from ds, preserving order.
func (ds Dataset) Column(c Channel) []int {
	col := make([]int, len(ds))
	for i, o := range ds {
		col[i] = c.Value(o)
	}
	return col
}

// Unify concatenates datasets in the order given. Each input keeps its
// internal order; nothing is sorted, deduplicated, or validated. The result
// never shares a backing array with an input.
func Unify(sets ...Dataset) Dataset {
	n := 0
	for _, s := range sets {
		n += len(s)
	}
	unified := make(Dataset, 0, n)
	for _, s := range sets {
		unified = append(unified, s...)
	}
	return unified
}
