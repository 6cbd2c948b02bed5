package main

import (
	"flag"
	"fmt"
	"os"

	"EnergyOptimizer/internal/di"
	"EnergyOptimizer/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}
	// The terminal belongs to the UI; logs go to a file.
	cfg.Log.Output = cfg.TUI.LogFile
	cfg.Log.Format = "json"

	term, cleanup, err := di.InitializeTerminal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialization failed: %v\n", err)
		os.Exit(1)
	}

	err = term.Run()
	cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
