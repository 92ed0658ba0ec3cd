package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/thatsimonsguy/stairlight-controller/db"
	"github.com/thatsimonsguy/stairlight-controller/internal/config"
	"github.com/thatsimonsguy/stairlight-controller/internal/pinctrl"
)

func main() {
	DebugCLI()
}

func DebugCLI() {
	var dbPath, configFile, command string
	var limit int
	flag.StringVar(&dbPath, "db", "data/stairlights.db", "Path to the SQLite database file")
	flag.StringVar(&configFile, "config-file", "config.json", "Path to controller config file (pin-states only)")
	flag.StringVar(&command, "cmd", "", "Command to run: recent-cycles, cycle-count, purge-cycles, pin-states")
	flag.IntVar(&limit, "limit", 10, "Number of cycles to show for recent-cycles")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *help || command == "" {
		fmt.Println("\nUsage of stairlight-debug:")
		fmt.Println("  -db string\tPath to the SQLite database file (default 'data/stairlights.db')")
		fmt.Println("  -config-file string\tPath to controller config file, used by pin-states")
		fmt.Println("  -cmd string\tCommand to run: recent-cycles, cycle-count, purge-cycles, pin-states")
		fmt.Println("  -limit int\tNumber of cycles to show for recent-cycles")
		fmt.Println("  -help\tShow this help message")
		os.Exit(0)
	}

	var err error
	switch command {
	case "recent-cycles":
		err = printRecentCycles(dbPath, limit)
	case "cycle-count":
		err = printCycleCount(dbPath)
	case "purge-cycles":
		err = purgeCycles(dbPath)
	case "pin-states":
		err = printPinStates(configFile)
	default:
		fmt.Println("Invalid command")
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Command %s failed: %v\n", command, err)
		os.Exit(1)
	}
}

func printRecentCycles(dbPath string, limit int) error {
	cycles, err := db.RecentCyclesCLI(dbPath, limit)
	if err != nil {
		return err
	}
	if len(cycles) == 0 {
		fmt.Println("No cycles recorded")
		return nil
	}
	for _, c := range cycles {
		fmt.Printf("#%d  %s  duration=%s  off_direction=%s  channels=%d\n",
			c.ID,
			c.StartedAt.Format(time.RFC3339),
			c.CompletedAt.Sub(c.StartedAt),
			c.OffDirection,
			c.ChannelCount,
		)
	}
	return nil
}

func printCycleCount(dbPath string) error {
	count, err := db.CycleCountCLI(dbPath)
	if err != nil {
		return err
	}
	fmt.Printf("%d cycles recorded\n", count)
	return nil
}

func purgeCycles(dbPath string) error {
	deleted, err := db.PurgeCyclesCLI(dbPath)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d cycles\n", deleted)
	return nil
}

func printPinStates(configFile string) error {
	file, err := os.Open(configFile)
	if err != nil {
		return err
	}
	defer file.Close()

	var cfg config.Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return err
	}

	for i, pin := range cfg.ChannelPins {
		state, err := pinctrl.GetLine(pin)
		if err != nil {
			return err
		}
		fmt.Printf("channel %d  GPIO %-2d  mode=%s level=%s\n", i, pin, state.Mode, state.Level)
	}
	if cfg.SensorTopPin != nil {
		if state, err := pinctrl.GetLine(*cfg.SensorTopPin); err == nil {
			fmt.Printf("sensor top     GPIO %-2d  mode=%s level=%s\n", *cfg.SensorTopPin, state.Mode, state.Level)
		}
	}
	if cfg.SensorBottomPin != nil {
		if state, err := pinctrl.GetLine(*cfg.SensorBottomPin); err == nil {
			fmt.Printf("sensor bottom  GPIO %-2d  mode=%s level=%s\n", *cfg.SensorBottomPin, state.Mode, state.Level)
		}
	}
	return nil
}
