package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chat-relay/contract"
	"chat-relay/domain/event"
	"chat-relay/internal"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"chat-relay/transport"
)

// Exit codes to provide meaningful status to the operating system or
// service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Relay terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components and manages the server lifecycle.
// Keeping this out of main ensures defers fire before the process
// exits and keeps the wiring testable.
func run() (int, error) {
	// 1. Configuration & logger. A local .env is optional.
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Core: registry + relay, with telemetry fanned out off the
	// broadcast path.
	events := make(chan event.Event, config.TelemetryBufferSize)
	registry := runtime.NewRegistry()
	relay := runtime.NewRelay(log, registry, events)

	sessionOpts := runtime.SessionOptions{
		OutboundBufferSize: config.OutboundBufferSize,
		HandshakeTimeout:   config.HandshakeTimeout,
		PingInterval:       config.PingInterval,
		MaxNameLength:      config.MaxNameLength,
	}
	connOpts := transport.ConnOptions{
		IdleTimeout:    config.IdleTimeout,
		WriteTimeout:   config.WriteTimeout,
		MaxMessageSize: config.MaxMessageSize,
	}

	server := transport.NewServer(log, config.Addr(), connOpts, func(conn contract.Conn) contract.Worker {
		return runtime.NewSession(log, conn, registry, relay, sessionOpts)
	})

	telemetry := workers.NewTelemetryWorker(log, events, []event.Handler{
		event.NewPeerLifecycleHandler(log),
		event.NewMessageRelayedHandler(log),
		event.NewDeliveryDropHandler(log),
	})

	// 3. Supervised lifecycle: SIGINT/SIGTERM cancels ctx, the
	// supervisor drains both workers, then run returns.
	supervisor := workers.NewSupervisor(log)
	supervisor.Add(server, telemetry)
	supervisor.Run(ctx)

	log.Info("Relay stopped")
	return exitOK, nil
}
