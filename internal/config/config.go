package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	ConfigFile      string
	LogLevel        zerolog.Level
	SafeMode        bool
	InstallServices bool

	// channel_pins lists the relay BCM pin for each step, index 0 = top-most
	ChannelPins     []int `json:"channel_pins"`
	SensorTopPin    *int  `json:"sensor_top_pin"`
	SensorBottomPin *int  `json:"sensor_bottom_pin"`
	RelayActiveHigh bool  `json:"relay_active_high"`
	GPIOChip        string `json:"gpio_chip"`

	StepDelayMS        int `json:"step_delay_ms"`
	LightsOnDurationMS int `json:"lights_on_duration_ms"`
	DebounceDelayMS    int `json:"debounce_delay_ms"`
	PollIntervalMS     int `json:"poll_interval_ms"`

	DBPath      string   `json:"db_path"`
	DDAgentAddr string   `json:"dd_agent_addr"`
	DDNamespace string   `json:"dd_namespace"`
	DDTags      []string `json:"dd_tags"`
	NtfyTopic   string   `json:"ntfy_topic"`
	MQTTBroker  string   `json:"mqtt_broker"`

	BootScriptFilePath string `json:"boot_script_file_path"`
	OSServicePath      string `json:"os_service_path"`
	MainServicePath    string `json:"main_service_path"`
}

func Load() Config {
	var logLevel string
	var cfg Config

	flag.StringVar(&cfg.ConfigFile, "config-file", "config.json", "Path to controller config file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&cfg.SafeMode, "safe-mode", false, "Disable all GPIO writes system-wide")
	flag.BoolVar(&cfg.InstallServices, "install-services", false, "Write boot script and systemd units, then exit")
	flag.Parse()

	loaded := loadFile(cfg.ConfigFile)
	loaded.ConfigFile = cfg.ConfigFile
	loaded.SafeMode = cfg.SafeMode
	loaded.InstallServices = cfg.InstallServices
	loaded.LogLevel = parseLogLevel(logLevel)
	return loaded
}

func loadFile(path string) Config {
	var cfg Config

	file, err := os.Open(path)
	if err != nil {
		panic("Failed to load config file: " + err.Error())
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		panic("Failed to parse config file: " + err.Error())
	}

	cfg.applyDefaults()
	cfg.validate()
	return cfg
}

func parseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (cfg *Config) applyDefaults() {
	if cfg.StepDelayMS == 0 {
		cfg.StepDelayMS = 500
	}
	if cfg.LightsOnDurationMS == 0 {
		cfg.LightsOnDurationMS = 2000
	}
	if cfg.DebounceDelayMS == 0 {
		cfg.DebounceDelayMS = 50
	}
	if cfg.PollIntervalMS == 0 {
		cfg.PollIntervalMS = 20
	}
	if cfg.GPIOChip == "" {
		cfg.GPIOChip = "gpiochip0"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "data/stairlights.db"
	}
	if cfg.DDNamespace == "" {
		cfg.DDNamespace = "stairlights."
	}
	if cfg.BootScriptFilePath == "" {
		cfg.BootScriptFilePath = "/usr/local/bin/stairlight-gpio-init.sh"
	}
	if cfg.OSServicePath == "" {
		cfg.OSServicePath = "/etc/systemd/system/stairlight-gpio.service"
	}
	if cfg.MainServicePath == "" {
		cfg.MainServicePath = "/etc/systemd/system/stairlight-controller.service"
	}
}

func (cfg *Config) validate() {
	var (
		missingFields []string
		usedPins      = map[int]string{}
		conflicts     []string
	)

	if len(cfg.ChannelPins) == 0 {
		missingFields = append(missingFields, "channel_pins")
	}
	if cfg.SensorTopPin == nil {
		missingFields = append(missingFields, "sensor_top_pin")
	}
	if cfg.SensorBottomPin == nil {
		missingFields = append(missingFields, "sensor_bottom_pin")
	}

	claim := func(name string, pin int) {
		if other, exists := usedPins[pin]; exists {
			conflicts = append(conflicts, fmt.Sprintf("%s and %s both use pin %d", name, other, pin))
		} else {
			usedPins[pin] = name
		}
	}

	for i, pin := range cfg.ChannelPins {
		claim(fmt.Sprintf("channel_pins[%d]", i), pin)
	}
	if cfg.SensorTopPin != nil {
		claim("sensor_top_pin", *cfg.SensorTopPin)
	}
	if cfg.SensorBottomPin != nil {
		claim("sensor_bottom_pin", *cfg.SensorBottomPin)
	}

	if len(missingFields) > 0 {
		panic("Missing required config fields: " + strings.Join(missingFields, ", "))
	}
	if len(conflicts) > 0 {
		panic("Conflicting GPIO pins: " + strings.Join(conflicts, ", "))
	}
}

func (cfg *Config) StepDelay() time.Duration {
	return time.Duration(cfg.StepDelayMS) * time.Millisecond
}

func (cfg *Config) LightsOnDuration() time.Duration {
	return time.Duration(cfg.LightsOnDurationMS) * time.Millisecond
}

func (cfg *Config) DebounceDelay() time.Duration {
	return time.Duration(cfg.DebounceDelayMS) * time.Millisecond
}

func (cfg *Config) PollInterval() time.Duration {
	return time.Duration(cfg.PollIntervalMS) * time.Millisecond
}
