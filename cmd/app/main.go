package main

import (
	"flag"
	"log"
	"os"

	"EnergyOptimizer/internal/di"
	"EnergyOptimizer/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s status=%s every %s", cfg.Environment, cfg.Status.URL, cfg.Status.PollInterval)

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if cfg.Cache.Redis.Enabled {
		log.Printf("redis: connected %s:%d", cfg.Cache.Redis.Host, cfg.Cache.Redis.Port)
	}
	if cfg.Kafka.Enabled {
		log.Printf("kafka: brokers=%v diagnostics=%s", cfg.Kafka.Brokers, cfg.Kafka.DiagnosticsTopic)
	}

	err = app.Run()
	cleanup()
	if err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
