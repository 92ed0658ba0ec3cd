package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/stairlight-controller/db"
	"github.com/thatsimonsguy/stairlight-controller/internal/config"
	"github.com/thatsimonsguy/stairlight-controller/internal/controllers/lightingcontroller"
	"github.com/thatsimonsguy/stairlight-controller/internal/datadog"
	"github.com/thatsimonsguy/stairlight-controller/internal/env"
	"github.com/thatsimonsguy/stairlight-controller/internal/gpio"
	"github.com/thatsimonsguy/stairlight-controller/internal/logging"
	"github.com/thatsimonsguy/stairlight-controller/internal/model"
	"github.com/thatsimonsguy/stairlight-controller/internal/mqtt"
	"github.com/thatsimonsguy/stairlight-controller/internal/notifications"
	"github.com/thatsimonsguy/stairlight-controller/internal/relay"
	"github.com/thatsimonsguy/stairlight-controller/internal/sensor"
	"github.com/thatsimonsguy/stairlight-controller/internal/sequence"
	"github.com/thatsimonsguy/stairlight-controller/system/startup"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel)
	env.Cfg = &cfg

	log.Info().
		Int("channels", len(cfg.ChannelPins)).
		Str("config_file", cfg.ConfigFile).
		Msg("Starting staircase lighting controller")

	if cfg.InstallServices {
		installServices()
		return
	}

	gpio.SetSafeMode(cfg.SafeMode)
	if cfg.SafeMode {
		log.Warn().Msg("SAFE MODE ENABLED — GPIO writes are disabled system-wide")
	}

	datadog.InitMetrics()
	notifications.Init()

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("Failed to open cycle history database")
	}
	defer conn.Close()
	if err := db.ApplyMigrations(conn); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	if !cfg.SafeMode {
		if err := startup.RunBootScript(); err != nil {
			log.Warn().Err(err).Msg("Boot script failed, continuing with pin validation")
		}
	}
	if err := gpio.ValidateStartupPins(&cfg); err != nil {
		log.Fatal().Err(err).Msg("Refusing to start with channel relays in unknown state")
	}

	reader, err := sensor.NewLineReader(cfg.GPIOChip, *cfg.SensorTopPin, *cfg.SensorBottomPin)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open motion sensor lines")
	}
	defer reader.Close()

	bank := relay.NewBankFromConfig(cfg.ChannelPins, cfg.RelayActiveHigh)
	machine := sequence.New(bank, bank.Count(), cfg.StepDelay(), cfg.LightsOnDuration())

	var publisher mqtt.Publisher
	if cfg.MQTTBroker != "" {
		publisher, err = mqtt.NewRealPublisher(cfg.MQTTBroker)
		if err != nil {
			log.Warn().Err(err).Msg("MQTT unavailable, continuing without event publishing")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	machine.OnCycleComplete(func(s sequence.CycleSummary) {
		datadog.Count("cycles.completed", 1, "off_direction:"+string(s.OffDirection))
		datadog.Gauge("cycles.duration_seconds", s.CompletedAt.Sub(s.StartedAt).Seconds())

		if err := db.InsertCycle(conn, model.Cycle{
			StartedAt:    s.StartedAt,
			CompletedAt:  s.CompletedAt,
			OffDirection: s.OffDirection,
			ChannelCount: s.ChannelCount,
		}); err != nil {
			log.Warn().Err(err).Msg("Failed to record cycle")
		}

		if publisher != nil {
			payload, err := mqtt.FormatCyclePayload(s.StartedAt, s.CompletedAt, s.OffDirection, s.ChannelCount)
			if err == nil {
				err = publisher.Publish(mqtt.TopicEvents, payload)
			}
			if err != nil {
				log.Warn().Err(err).Msg("Failed to publish cycle event")
			}
		}

		msg := fmt.Sprintf("Cycle complete in %s, turned off from the %s",
			s.CompletedAt.Sub(s.StartedAt).Round(time.Millisecond), s.OffDirection)
		if err := notifications.Send("Stairlight cycle", msg); err != nil {
			log.Debug().Err(err).Msg("Cycle notification not sent")
		}
	})

	publishSystemEvent(publisher, "startup", bank.Count(), cfg.SafeMode)

	controller := lightingcontroller.New(machine, reader, cfg.DebounceDelay())

	ticker := time.NewTicker(cfg.PollInterval())
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	controller.Run(ticker.C, sig, time.Now)

	publishSystemEvent(publisher, "shutdown", bank.Count(), cfg.SafeMode)
	if err := notifications.Send("Stairlight controller", "Controller shut down cleanly"); err != nil {
		log.Debug().Err(err).Msg("Shutdown notification not sent")
	}
	log.Info().Msg("Controller stopped")
}

func publishSystemEvent(publisher mqtt.Publisher, event string, channels int, safeMode bool) {
	if publisher == nil {
		return
	}
	payload, err := mqtt.FormatSystemPayload(event, time.Now(), channels, safeMode)
	if err == nil {
		err = publisher.Publish(mqtt.TopicSystem, payload)
	}
	if err != nil {
		log.Warn().Err(err).Str("event", event).Msg("Failed to publish system event")
	}
}

func installServices() {
	if err := startup.WriteBootScript(); err != nil {
		log.Fatal().Err(err).Msg("Failed to write boot script")
	}
	if err := startup.InstallBootService(); err != nil {
		log.Fatal().Err(err).Msg("Failed to install boot service unit")
	}
	if err := startup.InstallControllerService(); err != nil {
		log.Fatal().Err(err).Msg("Failed to install controller service unit")
	}
	log.Info().
		Str("boot_script", env.Cfg.BootScriptFilePath).
		Str("boot_unit", env.Cfg.OSServicePath).
		Str("main_unit", env.Cfg.MainServicePath).
		Msg("Service files installed")
}
