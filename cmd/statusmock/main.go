package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"EnergyOptimizer/internal/handler/statusapi"
	"EnergyOptimizer/internal/services/forecast"
	xhttp "EnergyOptimizer/pkg/http"
	applogger "EnergyOptimizer/pkg/logger"
)

func main() {
	port := flag.Int("port", 8000, "listen port")
	usage := flag.Float64("usage", forecast.DefaultUsage, "simulated meter reading in kWh")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	l, err := applogger.New(&applogger.Config{Level: *level, Format: "console", Output: "stdout"})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	srv := xhttp.NewServer(statusapi.NewHandler(forecast.New(*usage)), l,
		xhttp.WithPort(*port),
		xhttp.WithCORS(true),
	)
	if err := srv.Start(); err != nil {
		l.Error("status mock start error", applogger.Error(err))
		os.Exit(1)
	}
	l.Info("status mock serving", applogger.Int("port", *port), applogger.Float64("usage", *usage))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	if err := srv.Stop(context.Background()); err != nil {
		l.Error("status mock shutdown error", applogger.Error(err))
	}
}
