package pinctrl

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// LineState is the parsed output of `pinctrl get <pin>` for a single pin.
type LineState struct {
	Pin   int
	Mode  string // "ip", "op", "no"
	Level string // "hi", "lo", "--"
}

var getLineRegex = regexp.MustCompile(`^\s*(\d+):\s+(\S+).*\|\s+(\S+)\s+//`)

// SetPin applies pinctrl set options to a GPIO pin.
// Example: SetPin(10, "op", "pn", "dh") sets pin 10 as output, no pull, drive high.
func SetPin(pin int, opts ...string) error {
	args := append([]string{"set", fmt.Sprint(pin)}, opts...)
	cmd := exec.Command("pinctrl", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("pinctrl set failed: %s (output: %s)", err, string(out))
	}
	return nil
}

// ReadLevel performs a fast read of the logic level of a pin using `pinctrl lev <pin>`.
func ReadLevel(pin int) (bool, error) {
	cmd := exec.Command("pinctrl", "lev", fmt.Sprint(pin))
	out, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("failed to read level for pin %d: %w", pin, err)
	}
	switch strings.TrimSpace(string(out)) {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("unexpected output from pinctrl lev: %q", strings.TrimSpace(string(out)))
	}
}

// GetLine returns the mode and level of a single pin from `pinctrl get <pin>`.
func GetLine(pin int) (*LineState, error) {
	cmd := exec.Command("pinctrl", "get", fmt.Sprint(pin))
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute pinctrl get: %w", err)
	}
	state, err := parseGetLine(string(out))
	if err != nil {
		return nil, err
	}
	if state.Pin != pin {
		return nil, fmt.Errorf("pinctrl get returned pin %d, wanted %d", state.Pin, pin)
	}
	return state, nil
}

func parseGetLine(out string) (*LineState, error) {
	for _, line := range strings.Split(out, "\n") {
		matches := getLineRegex.FindStringSubmatch(line)
		if len(matches) != 4 {
			continue
		}
		pin, _ := strconv.Atoi(matches[1])
		return &LineState{Pin: pin, Mode: matches[2], Level: matches[3]}, nil
	}
	return nil, fmt.Errorf("no pin line found in pinctrl output: %q", out)
}
