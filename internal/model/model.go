package model

import "time"

// Phase is the controller's current state. Exactly one phase is active at a time.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseTurningOn        Phase = "turning_on"
	PhaseWaitOn           Phase = "wait_on"
	PhaseTurningOff       Phase = "turning_off"
	PhaseTurningOffWithOn Phase = "turning_off_with_on"
)

// Direction names one physical end of the staircase. Channel index 0 is the
// top-most step, index N-1 the bottom-most.
type Direction string

const (
	DirectionTop    Direction = "top"
	DirectionBottom Direction = "bottom"
)

type GPIOPin struct {
	Number     int
	ActiveHigh bool
}

// Cycle is one completed on/hold/off pass, recorded for history.
type Cycle struct {
	ID           int64
	StartedAt    time.Time
	CompletedAt  time.Time
	OffDirection Direction
	ChannelCount int
}
