package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestSample_RisingEdgeAfterDelay(t *testing.T) {
	d := New(50 * time.Millisecond)

	stable, rose := d.Sample(true, at(0))
	assert.False(t, stable)
	assert.False(t, rose)

	stable, rose = d.Sample(true, at(20))
	assert.False(t, stable)
	assert.False(t, rose)

	stable, rose = d.Sample(true, at(50))
	assert.True(t, stable)
	assert.True(t, rose)

	// held high: no further edges
	stable, rose = d.Sample(true, at(80))
	assert.True(t, stable)
	assert.False(t, rose)
}

func TestSample_BounceWithinWindowRejected(t *testing.T) {
	d := New(50 * time.Millisecond)

	d.Sample(true, at(0))
	d.Sample(false, at(20)) // reversal restarts the timer
	d.Sample(true, at(40))

	stable, rose := d.Sample(true, at(60))
	assert.False(t, stable, "level must not stabilize until 50ms after the last change")
	assert.False(t, rose)

	stable, rose = d.Sample(true, at(90))
	assert.True(t, stable)
	assert.True(t, rose)
}

func TestSample_FallingEdgeIsNotRising(t *testing.T) {
	d := New(50 * time.Millisecond)

	d.Sample(true, at(0))
	d.Sample(true, at(50)) // stable high

	d.Sample(false, at(100))
	stable, rose := d.Sample(false, at(150))
	assert.False(t, stable)
	assert.False(t, rose)
}

func TestSample_RepeatedCycles(t *testing.T) {
	d := New(50 * time.Millisecond)

	d.Sample(true, at(0))
	_, rose := d.Sample(true, at(50))
	assert.True(t, rose)

	d.Sample(false, at(100))
	d.Sample(false, at(150))

	d.Sample(true, at(200))
	_, rose = d.Sample(true, at(250))
	assert.True(t, rose, "second rising edge after a full cycle")
}
