package startup

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/thatsimonsguy/stairlight-controller/internal/env"
)

// WriteBootScript writes a shell script that drives every channel relay to
// its inactive level. It runs at boot, before the controller starts, so the
// stairs never light up from floating pins during startup.
func WriteBootScript() error {
	var lines []string
	lines = append(lines, "#!/bin/bash", "", "# Staircase lighting GPIO pin configuration at boot", "")

	drive := "dl"
	if !env.Cfg.RelayActiveHigh {
		drive = "dh"
	}
	for i, pin := range env.Cfg.ChannelPins {
		lines = append(lines, fmt.Sprintf("# channel %d", i))
		lines = append(lines, fmt.Sprintf("pinctrl set %d op pn %s", pin, drive))
		lines = append(lines, "")
	}

	contents := strings.Join(lines, "\n") + "\n"
	return os.WriteFile(env.Cfg.BootScriptFilePath, []byte(contents), 0755)
}

func InstallBootService() error {
	unitContents := fmt.Sprintf(`[Unit]
Description=Configure staircase lighting GPIO pins at boot
After=network.target

[Service]
Type=oneshot
Environment=PATH=/usr/local/bin:/usr/bin:/bin
ExecStart=%s
RemainAfterExit=true

[Install]
WantedBy=multi-user.target
`, env.Cfg.BootScriptFilePath)

	return os.WriteFile(env.Cfg.OSServicePath, []byte(unitContents), 0644)
}

func InstallControllerService() error {
	gpioUnitName := filepath.Base(env.Cfg.OSServicePath)

	user := "oebus"
	workdir := "/home/oebus/stairlight-controller"
	execCmd := "go run ./cmd/stairlight-controller/main.go"

	unit := fmt.Sprintf(`[Unit]
Description=Staircase lighting controller main service
After=%s
Requires=%s

[Service]
Type=simple
User=%s
WorkingDirectory=%s
Environment=PATH=/usr/local/go/bin:/usr/local/bin:/usr/bin:/bin
ExecStart=/bin/bash -lc '%s'
Restart=on-failure
RestartSec=5s

[Install]
WantedBy=multi-user.target
`, gpioUnitName, gpioUnitName, user, workdir, execCmd)

	return os.WriteFile(env.Cfg.MainServicePath, []byte(unit), 0644)
}

// RunBootScript re-runs the boot pin configuration in-process, used at
// controller startup to guarantee a dark baseline before validation.
func RunBootScript() error {
	cmd := exec.Command("/bin/bash", env.Cfg.BootScriptFilePath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
