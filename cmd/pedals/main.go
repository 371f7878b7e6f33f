package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leandrodaf/midipedals/internal/bridge"
	"github.com/leandrodaf/midipedals/sdk/contracts"
	"github.com/leandrodaf/midipedals/sdk/keyboard"
	"github.com/leandrodaf/midipedals/sdk/midi"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("pedals", flag.ContinueOnError)
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn, error")
	logFile := fs.String("log-file", "", "write logs to this file instead of stderr")
	clientName := fs.String("client-name", contracts.DefaultClientName, "MIDI client name")
	deviceName := fs.String("device-name", contracts.DefaultVirtualDeviceName, "virtual keyboard name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level, err := parseLogLevel(*logLevel)
	if err != nil {
		return err
	}

	options, err := midi.ApplyDefaultOptions(
		contracts.WithLogLevel(level),
		contracts.WithLogFile(*logFile),
		contracts.WithClientName(*clientName),
		contracts.WithVirtualDeviceName(*deviceName),
	)
	if err != nil {
		return err
	}

	client, err := midi.NewClient(&options)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return bridge.Run(ctx, bridge.Config{
		Client: client,
		NewKeyboard: func() (contracts.VirtualKeyboard, error) {
			return keyboard.NewVirtualKeyboard(&options)
		},
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: options.Logger,
	})
}

func parseLogLevel(s string) (contracts.LogLevel, error) {
	switch s {
	case "debug":
		return contracts.DebugLevel, nil
	case "info":
		return contracts.InfoLevel, nil
	case "warn":
		return contracts.WarnLevel, nil
	case "error":
		return contracts.ErrorLevel, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
