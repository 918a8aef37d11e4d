// Package console implements the terminal dashboard: a live clock, one panel
// per safety domain, the ignition status, SOS alerts and the SOS history
// overlay.
package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"safety_monitor/internal/models"
)

const (
	clockInterval      = 1 * time.Second
	sosTimeout         = 5 * time.Second
	historyPlaceholder = "No SOS signals sent yet."
)

// SOS keys map to the three device sources.
var sosKeys = map[string]string{
	"1": "Smart Helmet",
	"2": "Mining Safety",
	"3": "Fire/Smoke Alarm",
}

// SOSSender sends a manual SOS on behalf of a device.
type SOSSender interface {
	SendSOS(ctx context.Context, source string) (models.Notification, error)
}

// ── Messages ─────────────────────────────────────────────────────────

type clockMsg time.Time

type stateMsg models.Dashboard

type alertMsg models.UserAlert

type mapMsg models.MapDirective

type notificationMsg models.Notification

type disconnectedMsg struct{ err error }

type sosResultMsg struct {
	note models.Notification
	err  error
}

// ── Model ────────────────────────────────────────────────────────────

type Model struct {
	sender    SOSSender
	stream    <-chan tea.Msg
	dash      models.Dashboard
	hasState  bool
	alert     *models.UserAlert
	recenter  *models.MapDirective
	status    string
	err       error
	now       time.Time
	width     int
	height    int
	history   bool
	connected bool
}

// New builds the console model. stream may be nil when running offline.
func New(sender SOSSender, stream <-chan tea.Msg) Model {
	return Model{
		sender:    sender,
		stream:    stream,
		now:       time.Now(),
		connected: stream != nil,
	}
}

// ── Commands ─────────────────────────────────────────────────────────

func clockCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func (m Model) sendSOS(source string) tea.Cmd {
	sender := m.sender
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sosTimeout)
		defer cancel()
		n, err := sender.SendSOS(ctx, source)
		return sosResultMsg{note: n, err: err}
	}
}

func (m Model) waitStream() tea.Cmd {
	if m.stream == nil {
		return nil
	}
	return WaitForStream(m.stream)
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return tea.Batch(clockCmd(), m.waitStream())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "h":
			m.history = !m.history
		case "esc":
			// dismiss only hides; nothing is cleared
			if m.history {
				m.history = false
			} else {
				m.alert = nil
			}
		case "1", "2", "3":
			if m.sender == nil {
				m.status = "SOS unavailable: no API client"
				return m, nil
			}
			m.status = "Sending SOS from " + sosKeys[key] + "..."
			return m, m.sendSOS(sosKeys[key])
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case clockMsg:
		m.now = time.Time(msg)
		return m, clockCmd()

	case stateMsg:
		m.dash = models.Dashboard(msg)
		m.hasState = true
		m.connected = true
		return m, m.waitStream()

	case alertMsg:
		a := models.UserAlert(msg)
		m.alert = &a
		return m, m.waitStream()

	case mapMsg:
		d := models.MapDirective(msg)
		m.recenter = &d
		return m, m.waitStream()

	case notificationMsg:
		n := models.Notification(msg)
		m.status = "SOS logged: " + n.Message
		return m, m.waitStream()

	case disconnectedMsg:
		m.connected = false
		m.err = msg.err
		return m, nil

	case sosResultMsg:
		if msg.err != nil {
			m.status = "SOS failed: " + msg.err.Error()
		} else {
			m.status = "SOS sent: " + msg.note.Message
		}
	}

	return m, nil
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorOk       = lipgloss.Color("78")
	colorWarn     = lipgloss.Color("220")
	colorCrit     = lipgloss.Color("196")
)

func severityColor(s models.Severity) lipgloss.Color {
	switch s {
	case models.SeverityCritical:
		return colorCrit
	case models.SeverityWarning:
		return colorWarn
	default:
		return colorOk
	}
}

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	width := m.width - 2
	if width < 60 {
		width = 60
	}

	sections := []string{m.renderTitleBar(width)}

	if m.alert != nil {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(colorCrit).
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorCrit).
			Width(width).
			Padding(0, 1).
			Render(m.alert.Title+"\n"+m.alert.Message))
	}

	switch {
	case m.history:
		sections = append(sections, m.renderHistory(width))
	case !m.hasState:
		sections = append(sections, lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Align(lipgloss.Center).
			Padding(2, 0).
			Render("Waiting for dashboard state..."))
	default:
		sections = append(sections, m.renderPanels(width)...)
	}

	if m.status != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(colorLabel).Padding(0, 1).Render(m.status))
	}
	sections = append(sections, m.renderFooter(width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().Bold(true).Foreground(colorTitleFg).Render("SAFETY MONITOR")

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	parts := []string{dimS.Render(m.now.Format("15:04:05"))}
	if m.connected {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorOk).Render("LIVE"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorCrit).Render("OFFLINE"))
	}
	if m.hasState {
		parts = append(parts, dimS.Render(fmt.Sprintf("tick %d", m.dash.Tick)))
	}
	right := strings.Join(parts, dimS.Render(" │ "))

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + strings.Repeat(" ", gap) + right)
}

func (m Model) renderPanels(width int) []string {
	r := m.dash.Reading
	verdict := func(c models.AlertCategory) models.Verdict { return m.dash.Verdicts[c] }

	ignition := lipgloss.NewStyle().Bold(true).Foreground(colorOk).Render("Ignition: " + m.dash.Ignition)
	if !m.dash.IgnitionGranted {
		ignition = lipgloss.NewStyle().Bold(true).Foreground(colorCrit).Render("Ignition: " + m.dash.Ignition)
	}
	helmet := []string{
		row("Alcohol", strconv.FormatFloat(r.Alcohol, 'f', 3, 64), verdict(models.CategoryIgnitionLock)),
		row("Accident", yesNo(r.Accident), verdict(models.CategoryAccidentImpact)),
		row("Location", fmt.Sprintf("%.5f, %.5f", r.Location.Lat, r.Location.Lon), models.Verdict{}),
		ignition,
	}

	mining := []string{
		row("Gas", fmt.Sprintf("%d ppm", r.GasPPM), verdict(models.CategoryMineGas)),
		row("Temperature", fmt.Sprintf("%.1f °C", r.TemperatureC), verdict(models.CategoryMineHeat)),
		row("Air quality", fmt.Sprintf("AQI %d", r.AirQuality), verdict(models.CategoryMineAirQuality)),
	}
	if m.dash.MiningAlert != "" {
		mining = append(mining, message(verdict(m.dash.MiningAlert)))
	}

	fire := []string{
		row("Flame", fmt.Sprintf("%d", r.Flame), verdict(models.CategoryFireSmoke)),
		row("Smoke", fmt.Sprintf("%.2f mg/m³", r.SmokeMgM3), verdict(models.CategoryFireSmoke)),
	}
	if m.dash.FireLinkStatus != "" {
		fire = append(fire, lipgloss.NewStyle().Foreground(colorLabel).Render("Remote link: "+m.dash.FireLinkStatus))
	}
	if m.recenter != nil {
		fire = append(fire, lipgloss.NewStyle().Foreground(colorWarn).Render(
			fmt.Sprintf("%s (%.5f, %.5f)", m.recenter.Callout, m.recenter.Center.Lat, m.recenter.Center.Lon)))
	}

	return []string{
		panel("Smart Helmet", helmet, width),
		panel("Mining Safety", mining, width),
		panel("Fire/Smoke Alarm", fire, width),
	}
}

func (m Model) renderHistory(width int) string {
	lines := []string{lipgloss.NewStyle().Bold(true).Render("SOS History")}
	if len(m.dash.History) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorDim).Render(historyPlaceholder))
	}
	for _, n := range m.dash.History {
		lines = append(lines, fmt.Sprintf("%s  %-16s  %s",
			n.OccurredAt.Local().Format("15:04:05"), n.Source, n.Message))
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(colorDim).Render("esc: close"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderFooter(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	keyS := lipgloss.NewStyle().Foreground(colorLabel)
	keys := dimS.Render("q") + keyS.Render(":quit") +
		dimS.Render("  h") + keyS.Render(":history") +
		dimS.Render("  esc") + keyS.Render(":dismiss") +
		dimS.Render("  1/2/3") + keyS.Render(":SOS helmet/mine/fire")
	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(keys)
}

func panel(title string, rows []string, width int) string {
	head := lipgloss.NewStyle().Bold(true).Foreground(colorTitleFg).Render(title)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{head}, rows...)...))
}

func row(label, value string, v models.Verdict) string {
	l := lipgloss.NewStyle().Foreground(colorLabel).Width(14).Render(label)
	sev := v.Severity
	if sev == "" {
		sev = models.SeverityNormal
	}
	val := lipgloss.NewStyle().Foreground(severityColor(sev)).Render(value)
	return l + " " + val
}

func message(v models.Verdict) string {
	return lipgloss.NewStyle().Bold(true).Foreground(severityColor(v.Severity)).Render(v.Message)
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "no"
}
