package gpio

import (
	"fmt"

	"github.com/thatsimonsguy/stairlight-controller/internal/config"
	"github.com/thatsimonsguy/stairlight-controller/internal/model"
	"github.com/thatsimonsguy/stairlight-controller/internal/pinctrl"
	"github.com/thatsimonsguy/stairlight-controller/system/shutdown"
)

var safeMode bool

// seams for tests
var readLevel = pinctrl.ReadLevel
var setPin = pinctrl.SetPin

func SetSafeMode(enabled bool) {
	safeMode = enabled
}

// ValidateStartupPins refuses startup if any channel relay already reads active.
// A relay stuck on at boot means the board state is unknown and sweeping from it
// would leave channels out of sync with the machine's lit flags.
func ValidateStartupPins(cfg *config.Config) error {
	for i, pin := range cfg.ChannelPins {
		level, err := readLevel(pin)
		if err != nil {
			return fmt.Errorf("failed to read pin level for channel %d (GPIO %d): %w", i, pin, err)
		}
		active := level == cfg.RelayActiveHigh
		if active {
			return fmt.Errorf("channel %d (GPIO %d) reads active at startup", i, pin)
		}
	}
	return nil
}

var Activate = func(pin model.GPIOPin) {
	if safeMode {
		return
	}

	drive := "dh"
	if !pin.ActiveHigh {
		drive = "dl"
	}
	if err := setPin(pin.Number, "op", "pn", drive); err != nil {
		shutdown.ShutdownWithError(err, fmt.Sprintf("Failed to activate pin %d", pin.Number))
	}
}

var Deactivate = func(pin model.GPIOPin) {
	if safeMode {
		return
	}

	drive := "dl"
	if !pin.ActiveHigh {
		drive = "dh"
	}
	if err := setPin(pin.Number, "op", "pn", drive); err != nil {
		shutdown.ShutdownWithError(err, fmt.Sprintf("Failed to deactivate pin %d", pin.Number))
	}
}
