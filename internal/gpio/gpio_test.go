package gpio

import (
	"testing"

	"github.com/thatsimonsguy/stairlight-controller/internal/config"
	"github.com/thatsimonsguy/stairlight-controller/internal/model"
)

func modelPin(number int, activeHigh bool) model.GPIOPin {
	return model.GPIOPin{Number: number, ActiveHigh: activeHigh}
}

func TestValidateStartupPins_AllInactive(t *testing.T) {
	origReadLevel := readLevel
	defer func() { readLevel = origReadLevel }()

	readLevel = func(pin int) (bool, error) { return false, nil }

	cfg := &config.Config{
		ChannelPins:     []int{4, 5, 13},
		RelayActiveHigh: true,
	}

	if err := ValidateStartupPins(cfg); err != nil {
		t.Fatalf("expected valid state, got error: %v", err)
	}
}

func TestValidateStartupPins_RelayStuckOn(t *testing.T) {
	origReadLevel := readLevel
	defer func() { readLevel = origReadLevel }()

	readLevel = func(pin int) (bool, error) { return pin == 5, nil }

	cfg := &config.Config{
		ChannelPins:     []int{4, 5, 13},
		RelayActiveHigh: true,
	}

	if err := ValidateStartupPins(cfg); err == nil {
		t.Fatal("expected error due to active relay at startup, got nil")
	}
}

func TestValidateStartupPins_ActiveLow(t *testing.T) {
	origReadLevel := readLevel
	defer func() { readLevel = origReadLevel }()

	// active-low board: high level means inactive
	readLevel = func(pin int) (bool, error) { return true, nil }

	cfg := &config.Config{
		ChannelPins:     []int{4, 5},
		RelayActiveHigh: false,
	}

	if err := ValidateStartupPins(cfg); err != nil {
		t.Fatalf("expected valid state for active-low relays, got error: %v", err)
	}
}

func TestActivate_SafeModeSkipsWrites(t *testing.T) {
	origSetPin := setPin
	defer func() {
		setPin = origSetPin
		SetSafeMode(false)
	}()

	called := false
	setPin = func(pin int, opts ...string) error {
		called = true
		return nil
	}

	SetSafeMode(true)
	Activate(modelPin(4, true))

	if called {
		t.Fatal("expected no pinctrl writes in safe mode")
	}
}

func TestActivateDeactivate_DriveLevels(t *testing.T) {
	origSetPin := setPin
	defer func() { setPin = origSetPin }()

	var gotOpts []string
	setPin = func(pin int, opts ...string) error {
		gotOpts = opts
		return nil
	}

	Activate(modelPin(4, true))
	if gotOpts[len(gotOpts)-1] != "dh" {
		t.Fatalf("expected dh for active-high activate, got %v", gotOpts)
	}

	Deactivate(modelPin(4, true))
	if gotOpts[len(gotOpts)-1] != "dl" {
		t.Fatalf("expected dl for active-high deactivate, got %v", gotOpts)
	}

	Activate(modelPin(4, false))
	if gotOpts[len(gotOpts)-1] != "dl" {
		t.Fatalf("expected dl for active-low activate, got %v", gotOpts)
	}
}
