package lightingcontroller

import (
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thatsimonsguy/stairlight-controller/internal/model"
	"github.com/thatsimonsguy/stairlight-controller/internal/sensor"
	"github.com/thatsimonsguy/stairlight-controller/internal/sequence"
)

type fakeOutput struct {
	lit []bool
}

func newFakeOutput(n int) *fakeOutput { return &fakeOutput{lit: make([]bool, n)} }

func (f *fakeOutput) TurnOn(i int)  { f.lit[i] = true }
func (f *fakeOutput) TurnOff(i int) { f.lit[i] = false }

func TestStepDebouncesBeforeTriggering(t *testing.T) {
	out := newFakeOutput(3)
	machine := sequence.New(out, 3, 500*time.Millisecond, 2*time.Second)
	reader := sensor.NewFakeReader([]sensor.Sample{
		{Top: true}, // bounce, reverses next sample
		{Top: false},
		{Top: true}, // holds from here on
		{Top: true},
		{Top: true},
		{Top: true},
	})
	c := New(machine, reader, 50*time.Millisecond)

	base := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		err := c.Step(base.Add(time.Duration(i*20) * time.Millisecond))
		assert.NoError(t, err)
	}

	// the bounce at t=0 never stabilized; the level that began at t=40ms
	// stabilized at t=100ms and armed the on-sequence
	assert.Equal(t, model.PhaseTurningOn, machine.Phase())
}

func TestStepSkipsTickOnSensorError(t *testing.T) {
	out := newFakeOutput(3)
	machine := sequence.New(out, 3, 500*time.Millisecond, 2*time.Second)
	reader := sensor.NewFakeReader(nil)
	reader.ReadError = errors.New("gpio line unavailable")
	c := New(machine, reader, 50*time.Millisecond)

	err := c.Step(time.Now())
	assert.Error(t, err)
	assert.Equal(t, model.PhaseIdle, machine.Phase())
}

func TestRunResetsOnSignal(t *testing.T) {
	out := newFakeOutput(2)
	machine := sequence.New(out, 2, 500*time.Millisecond, 2*time.Second)
	reader := sensor.NewFakeReader([]sensor.Sample{{Top: true}})
	c := New(machine, reader, 0)

	tick := make(chan time.Time)
	sig := make(chan os.Signal, 1)
	done := make(chan struct{})

	base := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	times := make(chan time.Time, 2)
	times <- base
	times <- base.Add(600 * time.Millisecond)

	go func() {
		c.Run(tick, sig, func() time.Time { return <-times })
		close(done)
	}()

	tick <- base
	tick <- base

	sig <- syscall.SIGTERM

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after signal")
	}

	assert.Equal(t, model.PhaseIdle, machine.Phase())
	assert.Equal(t, []bool{false, false}, out.lit)
}
