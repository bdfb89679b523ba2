package hand

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/akshayakula/myogen/pkg/wire"
)

const DefaultConfigFile = "myogen.json"

// Config holds the hand configuration.
type Config struct {
	// Port is the serial device the command stream arrives on.
	Port string `json:"port"`
	Baud int    `json:"baud,omitempty"`

	// Protocol selects the wire format: "simple", "vendor" or "auto".
	Protocol string `json:"protocol,omitempty"`

	// HandPort, when set, is a second serial device the smoothed servo
	// frames are written to. Without it the run command needs --sim.
	HandPort string `json:"hand_port,omitempty"`
	HandBaud int    `json:"hand_baud,omitempty"`

	// Limits overrides per-channel angle bounds, keyed by channel name.
	Limits map[string][2]float64 `json:"limits,omitempty"`
}

const DefaultBaud = 9600

// LoadConfig loads configuration from the default config file.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists.
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}

// BaudRate returns the configured baud rate or the hardware default.
func (c *Config) BaudRate() int {
	if c.Baud > 0 {
		return c.Baud
	}
	return DefaultBaud
}

// WireProtocol parses the configured protocol name.
func (c *Config) WireProtocol() (wire.Protocol, error) {
	p, ok := wire.ParseProtocol(c.Protocol)
	if !ok {
		return wire.Auto, fmt.Errorf("unknown protocol %q (want simple, vendor or auto)", c.Protocol)
	}
	return p, nil
}

// ChannelLimits merges the config's limit overrides over the defaults.
func (c *Config) ChannelLimits() (Limits, error) {
	limits := DefaultLimits()
	for name, pair := range c.Limits {
		found := false
		for _, ch := range AllChannels() {
			if ch.String() == name {
				if pair[0] > pair[1] || pair[0] < 0 || pair[1] > 180 {
					return limits, fmt.Errorf("limits for %s: [%g, %g] not a subset of [0, 180]", name, pair[0], pair[1])
				}
				limits[ch] = Limit{Min: pair[0], Max: pair[1]}
				found = true
				break
			}
		}
		if !found {
			return limits, fmt.Errorf("unknown channel %q in limits", name)
		}
	}
	return limits, nil
}
