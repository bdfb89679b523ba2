package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.bug.st/serial"

	"github.com/akshayakula/myogen/pkg/hand"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type SetupCommand struct {
	Baud     int    `long:"baud" default:"9600" description:"Baud rate to record"`
	Protocol string `long:"protocol" choice:"auto" choice:"simple" choice:"vendor" default:"auto" description:"Wire format to record"`
}

// candidatePatterns match the device names USB-serial adapters show up
// under: Arduino-style CDC devices and CH340 bridges.
var candidatePatterns = []string{"usbmodem", "usbserial", "ttyUSB", "ttyACM", "wchusbserial", "CH340"}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(titleStyle.Render("Myogen Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━"))
	fmt.Println()
	fmt.Println("Scanning serial ports...")

	ports, err := serial.GetPortsList()
	if err != nil {
		return fmt.Errorf("list serial ports: %w", err)
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found. Connect the hand and try again.")
		os.Exit(1)
	}

	var candidates []string
	for _, port := range ports {
		for _, pat := range candidatePatterns {
			if strings.Contains(port, pat) {
				candidates = append(candidates, port)
				break
			}
		}
	}

	fmt.Printf("Found %d port(s), %d look like a USB-serial hand:\n", len(ports), len(candidates))
	for _, port := range ports {
		marker := "  "
		if len(candidates) > 0 && port == candidates[0] {
			marker = successStyle.Render("→ ")
		}
		fmt.Println(marker + port)
	}

	if len(candidates) == 0 {
		fmt.Println()
		fmt.Println("No obvious candidate. Edit " + hand.DefaultConfigFile + " by hand or pass --port to run.")
		os.Exit(1)
	}

	cfg := &hand.Config{
		Port:     candidates[0],
		Baud:     c.Baud,
		Protocol: c.Protocol,
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Println()
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", hand.DefaultConfigFile)
	fmt.Println()
	fmt.Println("Start the control loop with: " + titleStyle.Render("myogen run"))
	return nil
}
