package main

import (
	"fmt"
	"strings"

	"github.com/akshayakula/myogen/pkg/hand"
	"github.com/akshayakula/myogen/pkg/wire"
)

type SendCommand struct {
	Port     string `long:"port" description:"Serial port (overrides config)"`
	Protocol string `long:"protocol" choice:"simple" choice:"vendor" default:"simple" description:"Wire format to encode"`
	Pose     string `long:"pose" description:"Named pose to send"`
	MoveMS   uint16 `long:"time" default:"1000" description:"Vendor-protocol move time in ms"`

	Args struct {
		Angles []float64 `positional-arg-name:"angle" description:"Six angles in degrees, thumb..wrist"`
	} `positional-args:"yes"`
}

func (c *SendCommand) Execute(args []string) error {
	target, err := c.target()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c.Port)
	if err != nil {
		return err
	}
	limits, err := cfg.ChannelLimits()
	if err != nil {
		return err
	}
	target = limits.Clamp(target)

	var frame []byte
	switch c.Protocol {
	case "vendor":
		ranges := hand.VendorRanges()
		targets := make([]wire.ServoTarget, hand.NumChannels)
		for _, ch := range hand.AllChannels() {
			targets[ch] = wire.ServoTarget{
				ID:       byte(ch) + 1,
				Position: ranges[ch].FromDegrees(target[ch]),
			}
		}
		frame = wire.AppendServoMove(nil, c.MoveMS, targets)
	default:
		var angles [hand.NumChannels]byte
		for i, deg := range target {
			angles[i] = byte(deg + 0.5)
		}
		frame = wire.AppendSetServo(nil, angles)
	}

	port, err := openPort(cfg.Port, cfg.BaudRate())
	if err != nil {
		return err
	}
	defer port.Close()

	if _, err := port.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	fmt.Printf("Sent %s frame, targets %v\n", c.Protocol, target)
	return nil
}

func (c *SendCommand) target() (hand.TargetVector, error) {
	if c.Pose != "" {
		v, ok := hand.Poses[c.Pose]
		if !ok {
			return v, fmt.Errorf("unknown pose %q (have: %s)", c.Pose, strings.Join(hand.PoseNames(), ", "))
		}
		return v, nil
	}
	if len(c.Args.Angles) != hand.NumChannels {
		return hand.TargetVector{}, fmt.Errorf("need --pose or exactly %d angles, got %d", hand.NumChannels, len(c.Args.Angles))
	}
	var v hand.TargetVector
	copy(v[:], c.Args.Angles)
	return v, nil
}
