// Package mqtt publishes lighting cycle and system lifecycle events to a
// home-automation broker. Publishing is optional; the controller runs fine
// with no broker configured.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/thatsimonsguy/stairlight-controller/internal/model"
)

const (
	TopicEvents = "home/stairs/lighting/events"
	TopicSystem = "home/stairs/lighting/system"
)

// Publisher sends a payload to a topic. Implementations must be safe for use
// from the controller goroutine.
type Publisher interface {
	Publish(topic string, payload []byte) error
	Close()
}

// CycleEvent is the wire payload for one completed lighting cycle.
type CycleEvent struct {
	Event        string `json:"event"`
	StartedAt    string `json:"started_at"`
	CompletedAt  string `json:"completed_at"`
	OffDirection string `json:"off_direction"`
	ChannelCount int    `json:"channel_count"`
}

// SystemEvent is the wire payload for controller lifecycle transitions.
type SystemEvent struct {
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
	Channels  int    `json:"channels"`
	SafeMode  bool   `json:"safe_mode"`
}

func FormatCyclePayload(startedAt, completedAt time.Time, offDirection model.Direction, channels int) ([]byte, error) {
	return json.Marshal(CycleEvent{
		Event:        "cycle_complete",
		StartedAt:    startedAt.UTC().Format(time.RFC3339),
		CompletedAt:  completedAt.UTC().Format(time.RFC3339),
		OffDirection: string(offDirection),
		ChannelCount: channels,
	})
}

func FormatSystemPayload(event string, at time.Time, channels int, safeMode bool) ([]byte, error) {
	return json.Marshal(SystemEvent{
		Event:     event,
		Timestamp: at.UTC().Format(time.RFC3339),
		Channels:  channels,
		SafeMode:  safeMode,
	})
}
