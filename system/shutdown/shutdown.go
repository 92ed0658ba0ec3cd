package shutdown

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/thatsimonsguy/stairlight-controller/internal/env"
	"github.com/thatsimonsguy/stairlight-controller/internal/pinctrl"
)

// Shutdown drives every channel relay to its inactive level and exits. This
// is the last-resort path for actuation failures; the normal signal path
// shuts down through the controller loop instead.
func Shutdown() {
	if !env.Cfg.SafeMode {
		drive := "dl"
		if !env.Cfg.RelayActiveHigh {
			drive = "dh"
		}
		for _, pin := range env.Cfg.ChannelPins {
			pinctrl.SetPin(pin, "op", "pn", drive)
		}
		log.Info().Msg("All channel relays deactivated")
		os.Exit(0)
	}
}

func ShutdownWithError(err error, msg string) {
	log.Error().Err(err).Msg(msg)
	Shutdown()
}
