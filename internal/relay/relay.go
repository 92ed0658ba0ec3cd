// Package relay tracks the logical lit state of each light channel and drives
// the relay board. Logical state is idempotent; the actuator command is issued
// on every call because the relays need an explicit signal per transition.
package relay

import (
	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/stairlight-controller/internal/gpio"
	"github.com/thatsimonsguy/stairlight-controller/internal/model"
)

type Bank struct {
	pins []model.GPIOPin
	lit  []bool
}

func NewBank(pins []model.GPIOPin) *Bank {
	return &Bank{
		pins: pins,
		lit:  make([]bool, len(pins)),
	}
}

func NewBankFromConfig(channelPins []int, activeHigh bool) *Bank {
	pins := make([]model.GPIOPin, len(channelPins))
	for i, n := range channelPins {
		pins[i] = model.GPIOPin{Number: n, ActiveHigh: activeHigh}
	}
	return NewBank(pins)
}

func (b *Bank) TurnOn(i int) {
	if !b.lit[i] {
		b.lit[i] = true
	}
	gpio.Activate(b.pins[i])
	log.Debug().Int("channel", i).Int("pin", b.pins[i].Number).Msg("Channel on")
}

func (b *Bank) TurnOff(i int) {
	if b.lit[i] {
		b.lit[i] = false
	}
	gpio.Deactivate(b.pins[i])
	log.Debug().Int("channel", i).Int("pin", b.pins[i].Number).Msg("Channel off")
}

func (b *Bank) Lit(i int) bool {
	return b.lit[i]
}

func (b *Bank) LitCount() int {
	count := 0
	for _, on := range b.lit {
		if on {
			count++
		}
	}
	return count
}

func (b *Bank) Count() int {
	return len(b.pins)
}
