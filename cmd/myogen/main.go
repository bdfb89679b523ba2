package main

import (
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
)

type Options struct {
	Setup   SetupCommand   `command:"setup" description:"Scan serial ports and write myogen.json"`
	Run     RunCommand     `command:"run" description:"Run the hand control loop"`
	Send    SendCommand    `command:"send" description:"Send a pose or six raw angles to the hand"`
	Monitor MonitorCommand `command:"monitor" alias:"mon" description:"Run the control loop with a live angle chart"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func initLogger(verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).With().Timestamp().Str("app", "myogen").Logger().Level(level)
}

func main() {
	parser.LongDescription = "Myogen - control loop and tooling for the 6-servo uHand"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
