package main

import (
	"fmt"
	"time"

	"go.bug.st/serial"

	"github.com/akshayakula/myogen/pkg/hand"
)

// openPort opens a serial device with a short read timeout, so the control
// loop's drain never blocks past its tick deadline.
func openPort(device string, baud int) (serial.Port, error) {
	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", device, err)
	}
	if err := port.SetReadTimeout(5 * time.Millisecond); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", device, err)
	}
	return port, nil
}

// loadConfig reads myogen.json and applies a --port override.
func loadConfig(portOverride string) (*hand.Config, error) {
	cfg, err := hand.LoadConfig()
	if err != nil {
		if portOverride == "" {
			return nil, fmt.Errorf("no configuration found, run 'myogen setup' or pass --port")
		}
		cfg = &hand.Config{}
	}
	if portOverride != "" {
		cfg.Port = portOverride
	}
	if cfg.Port == "" {
		return nil, fmt.Errorf("no serial port configured, run 'myogen setup' or pass --port")
	}
	return cfg, nil
}
