// Package lightingcontroller runs the scheduler loop: each tick it samples
// both sensors, advances the debouncers, and feeds one evaluation to the
// lighting state machine.
package lightingcontroller

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/stairlight-controller/internal/datadog"
	"github.com/thatsimonsguy/stairlight-controller/internal/debounce"
	"github.com/thatsimonsguy/stairlight-controller/internal/sensor"
	"github.com/thatsimonsguy/stairlight-controller/internal/sequence"
)

type Controller struct {
	machine *sequence.Machine
	sensors sensor.Reader
	top     *debounce.Debouncer
	bottom  *debounce.Debouncer
}

func New(machine *sequence.Machine, sensors sensor.Reader, debounceDelay time.Duration) *Controller {
	return &Controller{
		machine: machine,
		sensors: sensors,
		top:     debounce.New(debounceDelay),
		bottom:  debounce.New(debounceDelay),
	}
}

// Run drives the controller until a signal arrives, then resets the machine
// so every channel is off before returning.
func (c *Controller) Run(tick <-chan time.Time, sig <-chan os.Signal, now func() time.Time) {
	log.Info().Msg("Starting lighting controller")

	for {
		select {
		case s := <-sig:
			log.Info().Str("signal", s.String()).Msg("Shutting down, clearing all channels")
			c.machine.Reset()
			return
		case <-tick:
			c.Step(now())
		}
	}
}

// Step executes exactly one control tick. A sensor read failure skips the
// evaluation; the machine only ever sees valid samples.
func (c *Controller) Step(now time.Time) error {
	topRaw, bottomRaw, err := c.sensors.Read()
	if err != nil {
		log.Warn().Err(err).Msg("Sensor read failed, skipping tick")
		return err
	}

	topHigh, topRose := c.top.Sample(topRaw, now)
	bottomHigh, bottomRose := c.bottom.Sample(bottomRaw, now)

	if topRose {
		log.Debug().Msg("Top sensor edge")
		datadog.Count("sensor.edges", 1, "source:top")
	}
	if bottomRose {
		log.Debug().Msg("Bottom sensor edge")
		datadog.Count("sensor.edges", 1, "source:bottom")
	}

	c.machine.Tick(now, sequence.Input{
		TopHigh:    topHigh,
		BottomHigh: bottomHigh,
		TopRose:    topRose,
		BottomRose: bottomRose,
	})
	return nil
}
