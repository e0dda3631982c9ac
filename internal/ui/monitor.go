package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bnema/pointerbridge/internal/logger"
	"github.com/bnema/pointerbridge/internal/pointer"
)

// EventMsg carries one decoded pointer event into the monitor
type EventMsg struct {
	Window uint64
	Time   time.Time
	Event  pointer.Event
}

// LogMsg carries a bridge diagnostic into the monitor
type LogMsg struct {
	Severity logger.Severity
	Text     string
}

// MonitorConfig holds configuration for the monitor UI
type MonitorConfig struct {
	Title     string
	Windows   []uint64
	MaxEvents int
	Recording string
}

type pointerKey struct {
	window uint64
	id     int32
	typ    pointer.Type
}

// MonitorModel is the Bubble Tea model showing live pointer events
type MonitorModel struct {
	title     string
	windows   []uint64
	recording string
	spinner   spinner.Model

	events    []EventMsg
	maxEvents int
	total     int
	counts    map[pointer.Kind]int
	active    map[pointerKey]EventMsg
	logs      []LogMsg

	width    int
	height   int
	paused   bool
	quitting bool
}

// NewMonitorModel creates a new monitor model
func NewMonitorModel(cfg MonitorConfig) *MonitorModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	if cfg.MaxEvents <= 0 {
		cfg.MaxEvents = 15
	}
	if cfg.Title == "" {
		cfg.Title = "pointerbridge monitor"
	}

	return &MonitorModel{
		title:     cfg.Title,
		windows:   cfg.Windows,
		recording: cfg.Recording,
		spinner:   s,
		maxEvents: cfg.MaxEvents,
		counts:    make(map[pointer.Kind]int),
		active:    make(map[pointerKey]EventMsg),
	}
}

// Init implements tea.Model
func (m *MonitorModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model
func (m *MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "c":
			m.Clear()
		case "p", " ":
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case EventMsg:
		m.AddEvent(msg)

	case LogMsg:
		m.logs = append(m.logs, msg)
		if len(m.logs) > 5 {
			m.logs = m.logs[len(m.logs)-5:]
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// AddEvent records an event and updates the active pointer set
func (m *MonitorModel) AddEvent(ev EventMsg) {
	if m.paused {
		return
	}

	m.total++
	m.counts[ev.Event.Kind]++

	m.events = append(m.events, ev)
	if len(m.events) > m.maxEvents {
		m.events = m.events[len(m.events)-m.maxEvents:]
	}

	key := pointerKey{window: ev.Window, id: ev.Event.ID, typ: ev.Event.Type}
	switch ev.Event.Kind {
	case pointer.KindUp, pointer.KindLeave, pointer.KindCancel:
		delete(m.active, key)
	default:
		m.active[key] = ev
	}
}

// Clear drops the event history
func (m *MonitorModel) Clear() {
	m.events = nil
	m.total = 0
	m.counts = make(map[pointer.Kind]int)
	m.active = make(map[pointerKey]EventMsg)
}

// Total returns the number of events seen since the last clear
func (m *MonitorModel) Total() int {
	return m.total
}

// ActivePointers returns the number of pointers currently down or hovering
func (m *MonitorModel) ActivePointers() int {
	return len(m.active)
}

// View implements tea.Model
func (m *MonitorModel) View() string {
	if m.quitting {
		return MutedStyle.Render("Closing monitor...\n")
	}

	var sections []string
	sections = append(sections, TitleStyle.Render(m.title))
	sections = append(sections, m.statusView())
	sections = append(sections, m.activeView())
	sections = append(sections, m.eventsView())
	if len(m.logs) > 0 {
		sections = append(sections, m.logsView())
	}
	sections = append(sections, m.controlsView())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *MonitorModel) statusView() string {
	windows := make([]string, len(m.windows))
	for i, w := range m.windows {
		windows[i] = fmt.Sprintf("0x%x", w)
	}

	state := m.spinner.View() + " listening"
	if m.paused {
		state = WarningStyle.Render("paused")
	}

	parts := []string{
		state,
		SubtleStyle.Render("windows: ") + strings.Join(windows, ", "),
		SubtleStyle.Render("events: ") + fmt.Sprintf("%d", m.total),
	}
	for _, k := range []pointer.Kind{pointer.KindDown, pointer.KindUpdate, pointer.KindUp, pointer.KindCancel} {
		parts = append(parts, KindStyle(k).Render(fmt.Sprintf("%s %d", k, m.counts[k])))
	}
	if m.recording != "" {
		parts = append(parts, ErrorStyle.Render(IconPointer)+" rec "+m.recording)
	}
	return strings.Join(parts, "  ")
}

func (m *MonitorModel) activeView() string {
	keys := make([]pointerKey, 0, len(m.active))
	for k := range m.active {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].window != keys[j].window {
			return keys[i].window < keys[j].window
		}
		if keys[i].typ != keys[j].typ {
			return keys[i].typ < keys[j].typ
		}
		return keys[i].id < keys[j].id
	})

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		ev := m.active[k].Event
		rows = append(rows, []string{
			fmt.Sprintf("0x%x", k.window),
			ev.Type.String(),
			fmt.Sprintf("%d", ev.ID),
			fmt.Sprintf("%.1f", ev.Position.X),
			fmt.Sprintf("%.1f", ev.Position.Y),
			fmt.Sprintf("%d", ev.Aux.Pressure),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorderStyle).
		Headers("WINDOW", "TYPE", "ID", "X", "Y", "PRESSURE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})

	return SubheaderStyle.Render("Active pointers") + "\n" + t.Render()
}

func (m *MonitorModel) eventsView() string {
	var b strings.Builder
	b.WriteString(SubheaderStyle.Render("Recent events"))
	b.WriteString("\n")

	if len(m.events) == 0 {
		b.WriteString(MutedStyle.Render("  waiting for input..."))
		return b.String()
	}

	for i := len(m.events) - 1; i >= 0; i-- {
		b.WriteString(FormatEvent(m.events[i]))
		if i > 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *MonitorModel) logsView() string {
	lines := make([]string, len(m.logs))
	for i, l := range m.logs {
		style := TextStyle
		switch l.Severity {
		case logger.SeverityWarning:
			style = WarningStyle
		case logger.SeverityError:
			style = ErrorStyle
		case logger.SeverityDebug:
			style = MutedStyle
		}
		lines[i] = style.Render(fmt.Sprintf("%-7s", l.Severity)) + " " + l.Text
	}
	return BoxStyle.Render(strings.Join(lines, "\n"))
}

func (m *MonitorModel) controlsView() string {
	return strings.Join([]string{
		FormatControl("q", "Quit"),
		FormatControl("p", "Pause"),
		FormatControl("c", "Clear"),
	}, "  ")
}

// FormatEvent renders one event on a single line
func FormatEvent(ev EventMsg) string {
	e := ev.Event
	ts := "--:--:--.000"
	if !ev.Time.IsZero() {
		ts = ev.Time.Format("15:04:05.000")
	}

	line := fmt.Sprintf("%s %s 0x%x %-5s id=%-3d (%7.1f, %7.1f)",
		SubtleStyle.Render(ts), FormatKind(e.Kind), ev.Window, e.Type, e.ID, e.Position.X, e.Position.Y)
	if e.Aux.ChangedButton != pointer.ButtonChangeNone {
		line += fmt.Sprintf(" button=%d", e.Aux.ChangedButton)
	}
	if e.Aux.Pressure != 0 {
		line += fmt.Sprintf(" pressure=%d", e.Aux.Pressure)
	}
	if e.TargetDisplay != 0 {
		line += fmt.Sprintf(" display=%d", e.TargetDisplay)
	}
	return line
}
