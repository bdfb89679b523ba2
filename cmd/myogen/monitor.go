package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/akshayakula/myogen/pkg/hand"
)

type MonitorCommand struct {
	Port string `long:"port" description:"Serial port for the command stream (overrides config)"`
	Sim  bool   `long:"sim" description:"Simulate the actuator instead of driving hardware"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

// Channel colors - distinct colors for each finger and the wrist
var channelColors = map[hand.Channel]string{
	hand.Thumb:  "196", // red
	hand.Index:  "208", // orange
	hand.Middle: "226", // yellow
	hand.Ring:   "46",  // green
	hand.Pinky:  "51",  // cyan
	hand.Wrist:  "201", // magenta
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type monitorModel struct {
	ctrl     *hand.Controller
	chart    *streamlinechart.Model
	width    int
	height   int
	logs     []string
	quitting bool
	frames   uint64
	errors   uint64
	gyro     string
}

func (m *monitorModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// Messages from the controller
type stateMsg hand.State
type logMsg string

func waitForState(ctrl *hand.Controller) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ctrl.States())
	}
}

func waitForLog(ctrl *hand.Controller) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-ctrl.Logs())
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *monitorModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *monitorModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialMonitorModel(ctrl *hand.Controller) monitorModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(0, 180),
	)

	// Set up data set styles for each channel
	for _, ch := range hand.AllChannels() {
		color := channelColors[ch]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(ch.String(), runes.ThinLineStyle, style)
	}

	return monitorModel{
		ctrl:  ctrl,
		chart: &chart,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.ctrl),
		waitForLog(m.ctrl),
	)
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case stateMsg:
		state := hand.State(msg)
		for _, ch := range hand.AllChannels() {
			m.chart.PushDataSet(ch.String(), state.Actual[ch])
		}
		m.chart.DrawAll()
		m.frames = state.Frames
		m.errors = state.FramingErrors
		if state.HasGyro {
			g := state.Gyro
			m.gyro = fmt.Sprintf("gyro %d/%d/%d", g.GX, g.GY, g.GZ)
		}
		return m, waitForState(m.ctrl)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.ctrl)
	}

	return m, nil
}

func (m monitorModel) View() string {
	if m.quitting {
		return "Monitor stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("Myogen Monitor"))
	sb.WriteString(fmt.Sprintf(" - %d frames, %d framing errors", m.frames, m.errors))
	if m.gyro != "" {
		sb.WriteString(statusStyle.Render("  " + m.gyro))
	}
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4).
		Foreground(lipgloss.Color("9"))

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func renderLegend() string {
	var items []string
	for _, ch := range hand.AllChannels() {
		color := channelColors[ch]
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
		item := colorStyle.Render("━━") + " " + ch.String()
		items = append(items, item)
	}
	return strings.Join(items, "  ")
}

func (c *MonitorCommand) Execute(args []string) error {
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

	var sink hand.Actuator = hand.NewSimActuator()
	if !c.Sim && cfg.HandPort != "" {
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
	}

	ctrl, err := hand.NewController(hand.Options{
		Transport: conn,
		Actuator:  sink,
		Protocol:  proto,
		Limits:    limits,
	})
	if err != nil {
		return fmt.Errorf("create controller: %w", err)
	}

	// Start controller in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := ctrl.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Controller error: %v", err)
		}
	}()

	// Run TUI
	p := tea.NewProgram(initialMonitorModel(ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}

	return nil
}
