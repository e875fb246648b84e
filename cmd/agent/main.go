package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fulfillment/internal/agent"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const defaultDevicePath = "/dev/usb/lp0"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	client, err := agent.NewClient(agent.ClientConfig{
		BaseURL: goDotEnvVariable("SERVER_URL"),
		APIKey:  goDotEnvVariable("AGENT_API_KEY"),
		AgentID: goDotEnvVariable("AGENT_ID"),
	})
	if err != nil {
		log.Fatalf("Error creating client: %v", err)
	}

	devicePath := os.Getenv("PRINTER_DEVICE")
	if devicePath == "" {
		devicePath = defaultDevicePath
	}
	printer, err := agent.NewDevicePrinter(devicePath)
	if err != nil {
		log.Fatalf("Error creating printer: %v", err)
	}

	runner, err := agent.NewRunner(client, printer, agent.RunnerConfig{
		PollInterval: time.Duration(intEnv("POLL_INTERVAL_SECONDS", 5)) * time.Second,
		BatchSize:    intEnv("POLL_BATCH_SIZE", 5),
	}, logger)
	if err != nil {
		log.Fatalf("Error creating runner: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("print agent started", "device", devicePath)
	if err = runner.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Agent stopped: %v", err)
	}
	logger.Info("print agent stopped")
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}
