// Package debounce stabilizes a raw binary sensor sample. A candidate level
// change must hold for the full debounce delay before it is accepted; any
// reversal inside the window restarts the timer, so a level change that
// reverses within the window never produces an edge.
package debounce

import "time"

type Debouncer struct {
	delay       time.Duration
	lastReading bool
	stable      bool
	lastChange  time.Time
}

func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Sample feeds one raw reading at the given time. It returns the current
// stable level and whether a stabilized rising edge occurred on this sample.
func (d *Debouncer) Sample(raw bool, now time.Time) (stable bool, rose bool) {
	if raw != d.lastReading {
		d.lastChange = now
	}
	d.lastReading = raw

	if now.Sub(d.lastChange) >= d.delay && raw != d.stable {
		d.stable = raw
		rose = d.stable
	}
	return d.stable, rose
}
