package env

import (
	"github.com/thatsimonsguy/stairlight-controller/internal/config"
)

var Cfg *config.Config
