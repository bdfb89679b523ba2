package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/akshayakula/myogen/pkg/hand"
)

type RunCommand struct {
	Port    string `long:"port" description:"Serial port for the command stream (overrides config)"`
	Sim     bool   `long:"sim" description:"Simulate the actuator instead of driving hardware"`
	Verbose bool   `short:"v" long:"verbose" description:"Debug logging"`
}

// logBeeper routes buzzer tones to the log; the dev board has no speaker.
type logBeeper struct {
	logger zerolog.Logger
}

func (b logBeeper) Tone(freq uint16) {
	b.logger.Debug().Uint16("freq_hz", freq).Msg("buzzer")
}

func (c *RunCommand) Execute(args []string) error {
	logger := initLogger(c.Verbose)

	cfg, err := loadConfig(c.Port)
	if err != nil {
		return err
	}
	proto, err := cfg.WireProtocol()
	if err != nil {
		return err
	}
	limits, err := cfg.ChannelLimits()
	if err != nil {
		return err
	}

	conn, err := openPort(cfg.Port, cfg.BaudRate())
	if err != nil {
		return err
	}
	defer conn.Close()
	logger.Info().Str("port", cfg.Port).Int("baud", cfg.BaudRate()).Msg("command stream open")

	var sink hand.Actuator
	switch {
	case c.Sim:
		sink = hand.NewSimActuator()
		logger.Info().Msg("actuator simulated")
	case cfg.HandPort != "":
		baud := cfg.HandBaud
		if baud == 0 {
			baud = cfg.BaudRate()
		}
		out, err := openPort(cfg.HandPort, baud)
		if err != nil {
			return err
		}
		defer out.Close()
		sink = hand.NewSerialActuator(out)
		logger.Info().Str("port", cfg.HandPort).Msg("driving hand")
	default:
		return fmt.Errorf("no hand_port configured; pass --sim to run without hardware")
	}

	ctrl, err := hand.NewController(hand.Options{
		Transport: conn,
		Actuator:  sink,
		Beeper:    logBeeper{logger},
		Protocol:  proto,
		Limits:    limits,
		Logger:    &logger,
	})
	if err != nil {
		return fmt.Errorf("create controller: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ctrl.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
