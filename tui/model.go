package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"keymidi/keymap"
	"keymidi/midi"
	"keymidi/source"
	"keymidi/theme"
	"keymidi/tracker"
	"keymidi/widgets"
)

type Model struct {
	Tracker  *tracker.Tracker
	Terminal *source.Terminal
	Keys     *keymap.Map
	Theme    *theme.Theme

	OutputName string
	PanicKey   string

	devices <-chan midi.DeviceEvent // nil when the port is not watched
	errs    <-chan error

	connected bool
	lastErr   string
	quitting  bool
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

type ErrorMsg struct{ Err error }

func NewModel(tr *tracker.Tracker, term *source.Terminal, keys *keymap.Map, th *theme.Theme, outputName, panicKey string) Model {
	return Model{
		Tracker:    tr,
		Terminal:   term,
		Keys:       keys,
		Theme:      th,
		OutputName: outputName,
		PanicKey:   panicKey,
		connected:  true,
	}
}

// WithDevices shows connect/disconnect events from a port watcher
func (m Model) WithDevices(events <-chan midi.DeviceEvent) Model {
	m.devices = events
	return m
}

// WithErrors shows send errors
func (m Model) WithErrors(errs <-chan error) Model {
	m.errs = errs
	return m
}

func ListenForUpdates(tr *tracker.Tracker) tea.Cmd {
	return func() tea.Msg {
		<-tr.Updates()
		return UpdateMsg{}
	}
}

func ListenForDevices(events <-chan midi.DeviceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func ListenForErrors(errs <-chan error) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-errs
		if !ok {
			return nil
		}
		return ErrorMsg{Err: err}
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForUpdates(m.Tracker)}
	if m.devices != nil {
		cmds = append(cmds, ListenForDevices(m.devices))
	}
	if m.errs != nil {
		cmds = append(cmds, ListenForErrors(m.errs))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch {
		case key == "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case m.PanicKey != "" && key == m.PanicKey:
			m.Tracker.AllNotesOff()
			m.Terminal.Silence()
		default:
			m.Terminal.Press(key)
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Tracker)

	case DeviceEventMsg:
		m.connected = msg.Type == midi.DeviceConnected
		if msg.Err != nil {
			m.lastErr = msg.Err.Error()
		}
		return m, ListenForDevices(m.devices)

	case ErrorMsg:
		m.lastErr = msg.Err.Error()
		return m, ListenForErrors(m.errs)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	status := lipgloss.NewStyle().Foreground(m.Theme.Success()).Render("connected")
	if !m.connected {
		status = warnStyle.Render("disconnected")
	}
	header := headerStyle.Render(fmt.Sprintf("keymidi  → %s", m.OutputName)) + "  " + status

	active := m.Tracker.Active()
	sounding := make(map[uint8]bool, len(active))
	for _, note := range active {
		sounding[note] = true
	}
	caps := make(map[string]widgets.KeyCap, m.Keys.Len())
	for _, key := range m.Keys.Keys() {
		note, _ := m.Keys.Lookup(key)
		caps[key] = widgets.KeyCap{
			Label:  key,
			Note:   keymap.NoteName(note),
			Color:  m.Theme.NoteColor(note),
			Active: sounding[note],
		}
	}
	keyboard := widgets.RenderKeyboard(caps, m.Theme.Symbols.KeyHeld, m.Theme.Symbols.KeyIdle)

	var names []string
	for _, note := range active {
		names = append(names, fmt.Sprintf("%c %s", m.Theme.Symbols.Note, keymap.NoteName(note)))
	}
	notes := dimStyle.Render("(silent)")
	if len(names) > 0 {
		notes = lipgloss.NewStyle().Foreground(m.Theme.Active()).Render(strings.Join(names, "  "))
	}

	stats := m.Tracker.Stats()
	counters := lipgloss.NewStyle().Foreground(m.Theme.FG()).Render(fmt.Sprintf("sent %d  failed %d", stats.Sent, stats.Failed))

	help := []widgets.KeyBinding{{Key: "ctrl+c", Desc: "quit"}}
	if m.PanicKey != "" {
		help = append([]widgets.KeyBinding{{Key: m.PanicKey, Desc: "all notes off"}}, help...)
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(keyboard)
	out.WriteString("\n\n")
	out.WriteString(notes)
	out.WriteString("\n")
	out.WriteString(counters)
	if m.lastErr != "" {
		out.WriteString("\n")
		out.WriteString(warnStyle.Render(m.lastErr))
	}
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeySection{{Keys: help}})))

	return out.String()
}
