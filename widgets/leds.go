package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nano-kontrol/theme"
)

// RenderLED renders a single button LED
func RenderLED(th *theme.Theme, on bool) string {
	sym := th.Symbols.LEDOff
	if on {
		sym = th.Symbols.LEDOn
	}
	return lipgloss.NewStyle().Foreground(th.LED(on)).Render(string(sym))
}

// Button is a labelled LED in the transport section
type Button struct {
	Label string
	On    bool
}

// RenderButtonRow renders labelled LEDs with spacing: "● PLAY  ○ STOP"
func RenderButtonRow(th *theme.Theme, buttons []Button) string {
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		parts[i] = RenderLED(th, b.On) + " " + b.Label
	}
	return strings.Join(parts, "  ")
}

// GroupStrip is one channel strip of the controller
type GroupStrip struct {
	Number  int // 1-based
	Tracks  int
	Masters int
	Level   float64 // fader position 0-1
	Solo    bool
	Mute    bool // LED state: lit while audible
	Arm     bool
}

const stripWidth = 7

// RenderGroupStrips renders strips side by side:
//
//	 1      2
//	S ●    S ○
//	M ●    M ○
//	R ○    R ○
//	▮▮▮    ▮
//	3/1    2/1
func RenderGroupStrips(th *theme.Theme, strips []GroupStrip) string {
	cols := make([]string, len(strips))
	for i, s := range strips {
		cols[i] = renderStrip(th, s)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func renderStrip(th *theme.Theme, s GroupStrip) string {
	style := lipgloss.NewStyle().Width(stripWidth)
	fg := lipgloss.NewStyle().Foreground(th.FG())

	header := fg.Render(fmt.Sprintf("%2d", s.Number))
	if s.Tracks == 0 {
		empty := string(th.Symbols.Empty)
		return style.Render(strings.Join([]string{header, empty, empty, empty, "", fg.Render("-")}, "\n"))
	}

	lines := []string{
		header,
		"S " + lipgloss.NewStyle().Foreground(ledColor(th, s.Solo, th.Solo())).Render(ledSym(th, s.Solo)),
		"M " + RenderLED(th, s.Mute),
		"R " + lipgloss.NewStyle().Foreground(ledColor(th, s.Arm, th.Arm())).Render(ledSym(th, s.Arm)),
		RenderLevel(th, s.Level, stripWidth-2),
		fg.Render(fmt.Sprintf("%d/%d", s.Tracks, s.Masters)),
	}
	return style.Render(strings.Join(lines, "\n"))
}

func ledSym(th *theme.Theme, on bool) string {
	if on {
		return string(th.Symbols.LEDOn)
	}
	return string(th.Symbols.LEDOff)
}

func ledColor(th *theme.Theme, on bool, onColor lipgloss.Color) lipgloss.Color {
	if on {
		return onColor
	}
	return th.LED(false)
}

// RenderLevel renders a fader level as a bar of at most width cells
func RenderLevel(th *theme.Theme, level float64, width int) string {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	n := int(level*float64(width) + 0.5)
	bar := strings.Repeat(string(th.Symbols.Fader), n)
	return lipgloss.NewStyle().Foreground(th.Level(level)).Render(bar)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
