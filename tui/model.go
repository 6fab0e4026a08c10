package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nano-kontrol/daw"
	"nano-kontrol/daw/sim"
	"nano-kontrol/midi"
	"nano-kontrol/script"
	"nano-kontrol/theme"
	"nano-kontrol/widgets"
)

const ticksPerBeat = script.OneBarInTicks / 4

type Model struct {
	Runner    *script.Runner
	Host      *sim.Host
	Project   []string
	DeviceMgr *midi.DeviceManager // nil in virtual mode
	Output    *midi.Output
	Virtual   *midi.Virtual // keyboard input, nil with hardware
	Theme     *theme.Theme

	status     script.Status
	faders     [script.NumGroups]uint8
	held       map[uint8]bool // latched virtual buttons
	cursor     int
	controller string
	quitting   bool
}

type StatusMsg script.Status

type DeviceEventMsg midi.DeviceEvent

func NewModel(runner *script.Runner, host *sim.Host, project []string, th *theme.Theme) Model {
	m := Model{
		Runner:  runner,
		Host:    host,
		Project: project,
		Theme:   th,
		held:    make(map[uint8]bool),
	}
	for i := range m.faders {
		m.faders[i] = 127
	}
	return m
}

func ListenForStatus(r *script.Runner) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(<-r.Updates)
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	if deviceMgr == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

// Pump feeds controller events into the runner until the controller closes
func Pump(c midi.Controller, r *script.Runner) {
	for ev := range c.Events() {
		r.Post(script.Event{Channel: ev.Channel, Control: ev.Control, Value: ev.Value})
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForStatus(m.Runner),
		ListenForDevices(m.DeviceMgr),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case StatusMsg:
		m.status = script.Status(msg)
		return m, ListenForStatus(m.Runner)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		switch event.Type {
		case midi.DeviceConnected:
			m.controller = event.ID
			if m.Output != nil {
				m.Output.Attach(event.Controller)
			}
			go Pump(event.Controller, m.Runner)
			m.Runner.DeviceConnected()
		case midi.DeviceDisconnected:
			if m.controller == event.ID {
				m.controller = ""
			}
			if m.Output != nil {
				m.Output.Detach(event.ID)
			}
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "l":
		m.Host.LoadProject(m.Project)
		m.Runner.ProjectLoaded()
		return m, nil
	}

	if m.Virtual == nil {
		return m, nil
	}

	if control, ok := latchKeys[key]; ok {
		m.toggleHold(control)
		return m, nil
	}

	switch key {
	case "1", "2", "3", "4", "5", "6", "7", "8":
		m.cursor = int(key[0] - '1')
	case "s":
		m.tap(script.SoloButton(m.cursor))
	case "m":
		m.tap(script.MuteButton(m.cursor))
	case "a":
		m.tap(script.ArmButton(m.cursor))
	case "up", "down":
		v := int(m.faders[m.cursor])
		if key == "up" {
			v += 8
		} else {
			v -= 8
		}
		v = max(0, min(127, v))
		m.faders[m.cursor] = uint8(v)
		m.Virtual.Inject(midi.CCEvent{Control: uint8(script.TracksFirstFader + m.cursor), Value: uint8(v)})
	case " ", "p":
		m.tap(script.PlayButton)
	case "x":
		m.tap(script.StopButton)
	case "r":
		m.tap(script.RecordButton)
	}
	return m, nil
}

// latchKeys hold their button on the first press and release it on the
// second, so modifiers and chords can be played from a keyboard
var latchKeys = map[string]uint8{
	"c":     script.ModeButton,
	",":     script.RewindButton,
	".":     script.ForwardButton,
	"left":  script.PrevTrackButton,
	"right": script.NextTrackButton,
	"[":     script.MarkerPrevButton,
	"]":     script.MarkerNextButton,
	"enter": script.MarkerSetButton,
}

func (m Model) tap(control uint8) {
	m.Virtual.Tap(0, control)
}

func (m Model) toggleHold(control uint8) {
	if m.held[control] {
		delete(m.held, control)
		m.Virtual.Release(0, control)
		return
	}
	m.held[control] = true
	m.Virtual.Press(0, control)
}

// Held reports whether a latched button is down
func (m Model) Held(control uint8) bool {
	return m.held[control]
}

func (m Model) heldRow() string {
	labels := []struct {
		control uint8
		label   string
	}{
		{script.ModeButton, "CYCLE"},
		{script.RewindButton, "REW"},
		{script.ForwardButton, "FF"},
		{script.PrevTrackButton, "TRK<"},
		{script.NextTrackButton, "TRK>"},
		{script.MarkerSetButton, "SET"},
		{script.MarkerPrevButton, "MRK<"},
		{script.MarkerNextButton, "MRK>"},
	}
	buttons := make([]widgets.Button, len(labels))
	for i, l := range labels {
		buttons[i] = widgets.Button{Label: l.label, On: m.held[l.control]}
	}
	return "held  " + widgets.RenderButtonRow(m.Theme, buttons)
}

func formatPos(ticks int) string {
	if ticks < 0 {
		return "--"
	}
	bar := ticks/script.OneBarInTicks + 1
	beat := (ticks%script.OneBarInTicks)/ticksPerBeat + 1
	return fmt.Sprintf("%d:%d", bar, beat)
}

func (m Model) strips() []widgets.GroupStrip {
	strips := make([]widgets.GroupStrip, script.NumGroups)
	for g := range strips {
		strips[g] = widgets.GroupStrip{
			Number: g + 1,
			Level:  float64(m.faders[g]) / 127,
			Solo:   m.status.LEDs[script.SoloButton(g)],
			Mute:   m.status.LEDs[script.MuteButton(g)],
			Arm:    m.status.LEDs[script.ArmButton(g)],
		}
		if g < len(m.status.Groups) {
			strips[g].Tracks = len(m.status.Groups[g])
			strips[g].Masters = len(m.status.Masters[g])
		}
	}
	return strips
}

func (m Model) transport() []widgets.Button {
	leds := m.status.LEDs
	return []widgets.Button{
		{Label: "REW", On: leds[script.RewindButton]},
		{Label: "FF", On: leds[script.ForwardButton]},
		{Label: "STOP", On: leds[script.StopButton]},
		{Label: "PLAY", On: leds[script.PlayButton]},
		{Label: "REC", On: leds[script.RecordButton]},
		{Label: "CYCLE", On: leds[script.ModeButton]},
	}
}

func (m Model) selectionLine(st sim.State) string {
	var parts []string
	if st.SelStart != daw.NoSelection && st.SelEnd != daw.NoSelection {
		parts = append(parts, fmt.Sprintf("sel %s-%s", formatPos(st.SelStart), formatPos(st.SelEnd)))
	} else {
		parts = append(parts, "sel --")
	}
	if m.status.Selecting {
		parts = append(parts, fmt.Sprintf("selecting from %s step %d", formatPos(m.status.PendingStart), m.status.Step))
	}
	if m.status.Saved {
		parts = append(parts, fmt.Sprintf("saved %s-%s", formatPos(m.status.SavedStart), formatPos(m.status.SavedEnd)))
	}
	return strings.Join(parts, "  ")
}

func (m Model) mixerView(st sim.State) string {
	dim := lipgloss.NewStyle().Foreground(m.Theme.Color(theme.RoleLEDOff))
	var lines []string
	for i, tr := range st.Tracks {
		if tr.Name == "" {
			continue
		}
		flags := []byte("---")
		if tr.Solo {
			flags[0] = 'S'
		}
		if tr.Muted {
			flags[1] = 'M'
		}
		if tr.Armed {
			flags[2] = 'R'
		}
		line := fmt.Sprintf("%3d %-14s %s %4.2f", i, tr.Name, flags, tr.Volume)
		if tr.Muted {
			line = dim.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.Host.Snapshot()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.LED(true))
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())

	playState := "STOP"
	if st.Playing {
		playState = "PLAY"
	}
	if st.Recording {
		playState += " REC"
	}
	loop := "SONG"
	if st.Loop == daw.LoopPattern {
		loop = "PAT"
	}
	device := "no device"
	switch {
	case m.Virtual != nil:
		device = "virtual"
	case m.controller != "":
		device = m.controller
	}

	header := headerStyle.Render(fmt.Sprintf("nano-kontrol  %s  %s  %s  [%s]", playState, formatPos(st.Pos), loop, device))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(widgets.RenderButtonRow(m.Theme, m.transport()))
	if m.Virtual != nil {
		out.WriteString("\n")
		out.WriteString(m.heldRow())
	}
	out.WriteString("\n\n")
	out.WriteString(widgets.RenderGroupStrips(m.Theme, m.strips()))
	out.WriteString("\n\n")
	out.WriteString(m.selectionLine(st))
	out.WriteString("\n\n")
	out.WriteString(m.mixerView(st))
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render(m.help()))

	return out.String()
}

func (m Model) help() string {
	if m.Virtual == nil {
		return "l:reload project  q:quit"
	}
	return widgets.RenderKeyHelp([]widgets.KeySection{
		{Keys: []widgets.KeyBinding{
			{Key: "1-8", Desc: "pick group, s/m/a solo/mute/arm, up/down fader"},
			{Key: "p x r", Desc: "play stop record"},
			{Key: "c , .", Desc: "hold/release cycle, rewind, forward"},
			{Key: "left right", Desc: "hold/release prev/next track"},
			{Key: "[ ] enter", Desc: "hold/release marker prev/next/set"},
			{Key: "l q", Desc: "reload project, quit"},
		}},
	})
}
