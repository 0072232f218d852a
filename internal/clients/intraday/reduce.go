// Package intraday reduces intraday index snapshots to daily OHLC values.
package intraday

// Tick is one intraday snapshot of an index value.
type Tick struct {
	Time  string // "HH:mm:ss", lexicographically ordered
	Price float64
}

// OHLC is the daily reduction of a tick series.
type OHLC struct {
	Open  float64 // price at the earliest time
	High  float64 // maximum price
	Low   float64 // minimum price
	Close float64 // price at the latest time
}

// Reduce collapses a tick series into OHLC. Open and Close are selected by
// time ordering; High and Low by price ordering. The series need not be
// sorted. Returns the zero OHLC for an empty series.
func Reduce(ticks []Tick) OHLC {
	if len(ticks) == 0 {
		return OHLC{}
	}

	first, last := ticks[0], ticks[0]
	high, low := ticks[0].Price, ticks[0].Price

	for _, tk := range ticks[1:] {
		if tk.Time < first.Time {
			first = tk
		}
		if tk.Time > last.Time {
			last = tk
		}
		if tk.Price > high {
			high = tk.Price
		}
		if tk.Price < low {
			low = tk.Price
		}
	}

	return OHLC{Open: first.Price, High: high, Low: low, Close: last.Price}
}
