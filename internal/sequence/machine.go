// Package sequence implements the staircase lighting state machine. The
// machine consumes debounced sensor samples and the current time once per
// scheduler tick and drives the channel outputs through sequential on and off
// sweeps. All state lives in a single Machine owned by the caller; there is no
// shared or global state.
package sequence

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/stairlight-controller/internal/model"
)

// Output drives one light channel. Implementations must treat repeated calls
// with the same target state as idempotent on logical state while still
// issuing the actuator command.
type Output interface {
	TurnOn(i int)
	TurnOff(i int)
}

// Input is one tick's worth of debounced sensor data.
type Input struct {
	TopHigh    bool // stable level of the top sensor
	BottomHigh bool // stable level of the bottom sensor
	TopRose    bool // stabilized rising edge on the top sensor this tick
	BottomRose bool // stabilized rising edge on the bottom sensor this tick
}

// CycleSummary describes one completed on/hold/off cycle, handed to the
// cycle-complete hook after the machine has reset to idle.
type CycleSummary struct {
	StartedAt    time.Time
	CompletedAt  time.Time
	OffDirection model.Direction
	ChannelCount int
}

// endRun is an in-progress sequential on-sweep from one end. The top run's
// cursor walks 0..N (N meaning done); the bottom run's walks N-1..-1.
type endRun struct {
	active   bool
	cursor   int
	lastStep time.Time
}

// offSweep is the single off-sequence. Its direction is fixed for the
// duration of the sweep and undefined outside the turning-off phases.
type offSweep struct {
	direction model.Direction
	cursor    int
	lastStep  time.Time
}

type Machine struct {
	out          Output
	channels     int
	stepDelay    time.Duration
	holdDuration time.Duration

	phase  model.Phase
	top    endRun
	bottom endRun
	off    offSweep

	topTrigger    time.Time
	bottomTrigger time.Time
	waitStart     time.Time
	cycleStart    time.Time

	onCycleComplete func(CycleSummary)
}

func New(out Output, channels int, stepDelay, holdDuration time.Duration) *Machine {
	m := &Machine{
		out:          out,
		channels:     channels,
		stepDelay:    stepDelay,
		holdDuration: holdDuration,
	}
	m.clear()
	return m
}

// OnCycleComplete registers a hook invoked after each full cycle resets to idle.
func (m *Machine) OnCycleComplete(fn func(CycleSummary)) {
	m.onCycleComplete = fn
}

func (m *Machine) Phase() model.Phase {
	return m.phase
}

// Tick runs exactly one state-machine evaluation. It never blocks.
func (m *Machine) Tick(now time.Time, in Input) {
	if in.TopRose {
		m.topTrigger = now
	}
	if in.BottomRose {
		m.bottomTrigger = now
	}

	switch m.phase {
	case model.PhaseIdle, model.PhaseTurningOn:
		if in.TopRose && !m.top.active {
			m.armStart(&m.top, model.DirectionTop, now)
		}
		if in.BottomRose && !m.bottom.active {
			m.armStart(&m.bottom, model.DirectionBottom, now)
		}
		if m.phase == model.PhaseIdle && (m.top.active || m.bottom.active) {
			m.phase = model.PhaseTurningOn
			m.cycleStart = now
			log.Info().Str("phase", string(m.phase)).Msg("Sensor trigger, starting on-sequence")
		}

	case model.PhaseWaitOn:
		// triggers never arm runs here; a stable-high sensor extends the hold
		m.top.active = false
		m.bottom.active = false
		if in.TopHigh || in.BottomHigh {
			m.waitStart = now
		}
		if now.Sub(m.waitStart) >= m.holdDuration {
			m.beginTurningOff(now)
		}

	case model.PhaseTurningOff, model.PhaseTurningOffWithOn:
		m.handleOffInterrupt(now, in)
	}

	switch m.phase {
	case model.PhaseTurningOn:
		m.tickTurningOn(now)
	case model.PhaseTurningOff:
		if m.stepOff(now) {
			m.completeCycle(now)
		}
	case model.PhaseTurningOffWithOn:
		m.tickBlend(now)
	}
}

// Reset unlights every channel and returns the machine to idle. It is
// idempotent and safe to call from any phase.
func (m *Machine) Reset() {
	for i := 0; i < m.channels; i++ {
		m.out.TurnOff(i)
	}
	m.clear()
}

func (m *Machine) clear() {
	m.phase = model.PhaseIdle
	m.top = endRun{cursor: 0}
	m.bottom = endRun{cursor: m.channels - 1}
	m.off = offSweep{}
	m.topTrigger = time.Time{}
	m.bottomTrigger = time.Time{}
	m.waitStart = time.Time{}
	m.cycleStart = time.Time{}
}

// armStart arms an End Run at its starting cursor. The first step lands one
// stepDelay after arming.
func (m *Machine) armStart(r *endRun, dir model.Direction, now time.Time) {
	r.active = true
	r.cursor = m.startIndex(dir)
	r.lastStep = now
	log.Debug().Str("end", string(dir)).Int("cursor", r.cursor).Msg("Armed on-sweep")
}

// armAdopt arms an End Run at the off-sweep's current cursor so it relights
// exactly the channels the partial off-sweep extinguished.
func (m *Machine) armAdopt(r *endRun, dir model.Direction, now time.Time) {
	r.active = true
	r.cursor = m.off.cursor
	r.lastStep = now
	log.Debug().Str("end", string(dir)).Int("cursor", r.cursor).Msg("Armed on-sweep from off cursor")
}

func (m *Machine) startIndex(dir model.Direction) int {
	if dir == model.DirectionTop {
		return 0
	}
	return m.channels - 1
}

func (m *Machine) stepFor(dir model.Direction) int {
	if dir == model.DirectionTop {
		return 1
	}
	return -1
}

func (m *Machine) pastTerminus(cursor int, dir model.Direction) bool {
	if dir == model.DirectionTop {
		return cursor >= m.channels
	}
	return cursor < 0
}

// beginTurningOff chooses the off direction and initializes the sweep. The end
// whose last trigger was earlier extinguishes first; an end that never
// triggered counts as later than any trigger, so a single-ended cycle turns
// off from the end that started it.
func (m *Machine) beginTurningOff(now time.Time) {
	var dir model.Direction
	switch {
	case m.bottomTrigger.IsZero():
		dir = model.DirectionTop
	case m.topTrigger.IsZero():
		dir = model.DirectionBottom
	case m.topTrigger.Before(m.bottomTrigger):
		dir = model.DirectionTop
	default:
		dir = model.DirectionBottom
	}

	m.off = offSweep{direction: dir, cursor: m.startIndex(dir), lastStep: now}
	m.phase = model.PhaseTurningOff
	log.Info().
		Str("direction", string(dir)).
		Dur("held_for", now.Sub(m.cycleStart)).
		Msg("Hold expired, starting off-sequence")
}

// handleOffInterrupt applies the cancellation/merge rules while an off-sweep
// is in progress. An edge opposing the off direction abandons the off-sequence
// and resumes turning on; an edge matching it starts a concurrent on-sweep. In
// the blended phase any opposing edge escalates straight to turning on.
func (m *Machine) handleOffInterrupt(now time.Time, in Input) {
	sameRose, opposingRose := in.TopRose, in.BottomRose
	sameRun, opposingRun := &m.top, &m.bottom
	sameDir, opposingDir := model.DirectionTop, model.DirectionBottom
	if m.off.direction == model.DirectionBottom {
		sameRose, opposingRose = in.BottomRose, in.TopRose
		sameRun, opposingRun = &m.bottom, &m.top
		sameDir, opposingDir = model.DirectionBottom, model.DirectionTop
	}

	if opposingRose {
		m.armAdopt(opposingRun, opposingDir, now)
		if sameRose && !sameRun.active {
			m.armStart(sameRun, sameDir, now)
		}
		m.off = offSweep{}
		m.phase = model.PhaseTurningOn
		log.Info().
			Str("trigger", string(opposingDir)).
			Msg("Opposing trigger cancelled off-sequence, resuming on-sequence")
		return
	}

	if sameRose && m.phase == model.PhaseTurningOff {
		m.armStart(sameRun, sameDir, now)
		m.phase = model.PhaseTurningOffWithOn
		log.Info().
			Str("trigger", string(sameDir)).
			Msg("Matching trigger during off-sequence, starting concurrent on-sweep")
	}
}

func (m *Machine) tickTurningOn(now time.Time) {
	if m.top.active && m.stepOn(&m.top, model.DirectionTop, now) {
		m.finishTurnOn(model.DirectionTop, now)
		return
	}
	if m.bottom.active && m.stepOn(&m.bottom, model.DirectionBottom, now) {
		m.finishTurnOn(model.DirectionBottom, now)
	}
}

// stepOn advances one End Run by at most one channel and reports whether the
// run has reached its terminus.
func (m *Machine) stepOn(r *endRun, dir model.Direction, now time.Time) bool {
	if now.Sub(r.lastStep) < m.stepDelay {
		return false
	}
	if !m.pastTerminus(r.cursor, dir) {
		m.out.TurnOn(r.cursor)
		r.lastStep = now
		r.cursor += m.stepFor(dir)
	}
	return m.pastTerminus(r.cursor, dir)
}

// finishTurnOn enters the hold phase. Any completing run has swept the entire
// strip from its end, so all channels are lit at this point. The completing
// end's trigger timestamp is refreshed for off-direction tie-breaking.
func (m *Machine) finishTurnOn(dir model.Direction, now time.Time) {
	m.phase = model.PhaseWaitOn
	m.waitStart = now
	if dir == model.DirectionTop {
		m.topTrigger = now
	} else {
		m.bottomTrigger = now
	}
	log.Info().Str("completed_by", string(dir)).Msg("All channels lit, holding")
}

// stepOff advances the off-sweep by at most one channel and reports whether
// the sweep has extinguished its final channel.
func (m *Machine) stepOff(now time.Time) bool {
	if now.Sub(m.off.lastStep) < m.stepDelay {
		return false
	}
	if !m.pastTerminus(m.off.cursor, m.off.direction) {
		m.out.TurnOff(m.off.cursor)
		m.off.lastStep = now
		m.off.cursor += m.stepFor(m.off.direction)
	}
	return m.pastTerminus(m.off.cursor, m.off.direction)
}

// tickBlend advances the off-sweep and the concurrent on-sweep independently,
// each on its own timer. When the off-sweep finishes, the pending on-sweep is
// promoted to a plain turning-on phase.
func (m *Machine) tickBlend(now time.Time) {
	if m.stepOff(now) {
		m.off = offSweep{}
		m.phase = model.PhaseTurningOn
		log.Info().Msg("Off-sweep finished during blend, promoting concurrent on-sweep")
		return
	}

	run, dir := &m.top, model.DirectionTop
	if m.off.direction == model.DirectionBottom {
		run, dir = &m.bottom, model.DirectionBottom
	}
	if run.active {
		// completion is handled once the phase promotes to turning on
		m.stepOn(run, dir, now)
	}
}

// completeCycle is the cycle supervisor's terminal action: reset everything
// to the idle baseline and notify the completion hook.
func (m *Machine) completeCycle(now time.Time) {
	summary := CycleSummary{
		StartedAt:    m.cycleStart,
		CompletedAt:  now,
		OffDirection: m.off.direction,
		ChannelCount: m.channels,
	}
	m.Reset()
	log.Info().
		Str("off_direction", string(summary.OffDirection)).
		Dur("cycle_duration", summary.CompletedAt.Sub(summary.StartedAt)).
		Msg("Cycle complete. System reset to idle")
	if m.onCycleComplete != nil {
		m.onCycleComplete(summary)
	}
}
