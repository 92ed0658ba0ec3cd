//go:build linux

package sensor

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// LineReader reads the motion sensor lines from actual hardware.
type LineReader struct {
	chip   *gpiocdev.Chip
	top    *gpiocdev.Line
	bottom *gpiocdev.Line
}

// NewLineReader requests both sensor lines as inputs with pull-down, matching
// the open-collector output of the PIR modules.
func NewLineReader(chipName string, topPin, bottomPin int) (*LineReader, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	topLine, err := chip.RequestLine(topPin, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request top sensor pin %d: %w", topPin, err)
	}

	bottomLine, err := chip.RequestLine(bottomPin, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		topLine.Close()
		chip.Close()
		return nil, fmt.Errorf("request bottom sensor pin %d: %w", bottomPin, err)
	}

	return &LineReader{chip: chip, top: topLine, bottom: bottomLine}, nil
}

func (r *LineReader) Read() (bool, bool, error) {
	topRaw, err := r.top.Value()
	if err != nil {
		return false, false, fmt.Errorf("read top sensor: %w", err)
	}

	bottomRaw, err := r.bottom.Value()
	if err != nil {
		return false, false, fmt.Errorf("read bottom sensor: %w", err)
	}

	return topRaw != 0, bottomRaw != 0, nil
}

func (r *LineReader) Close() error {
	var errs []error

	if r.top != nil {
		if err := r.top.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close top line: %w", err))
		}
	}
	if r.bottom != nil {
		if err := r.bottom.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close bottom line: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
