package intraday

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduce(t *testing.T) {
	ticks := []Tick{
		{Time: "09:00:00", Price: 100},
		{Time: "09:05:00", Price: 105},
		{Time: "09:10:00", Price: 95},
	}
	ohlc := Reduce(ticks)
	assert.Equal(t, 100.0, ohlc.Open)
	assert.Equal(t, 105.0, ohlc.High)
	assert.Equal(t, 95.0, ohlc.Low)
	assert.Equal(t, 95.0, ohlc.Close)
}

func TestReduceUnsorted(t *testing.T) {
	// Open and Close come from time ordering, not slice position.
	ticks := []Tick{
		{Time: "09:10:00", Price: 95},
		{Time: "09:00:00", Price: 100},
		{Time: "09:05:00", Price: 105},
	}
	ohlc := Reduce(ticks)
	assert.Equal(t, OHLC{Open: 100, High: 105, Low: 95, Close: 95}, ohlc)
}

func TestReduceEmpty(t *testing.T) {
	assert.Equal(t, OHLC{}, Reduce(nil))
}
