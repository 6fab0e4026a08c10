package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols

	ledOn  RGB
	ledOff RGB
}

type Symbols struct {
	LEDOn  rune // ● lit
	LEDOff rune // ○ dark
	Fader  rune // ▮ fader fill
	Empty  rune // · no tracks
}

// New builds a theme. LED colours default to the palette ends.
func New(palette *Palette) *Theme {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			LEDOn:  '●',
			LEDOff: '○',
			Fader:  '▮',
			Empty:  '·',
		},
		ledOn:  palette.Lookup(RoleLEDOn),
		ledOff: palette.Lookup(RoleLEDOff),
	}
}

// WithLEDColors overrides the LED colours with #rrggbb values; empty strings
// keep the current colour
func (t *Theme) WithLEDColors(on, off string) (*Theme, error) {
	if on != "" {
		c, err := ParseHex(on)
		if err != nil {
			return nil, err
		}
		t.ledOn = c
	}
	if off != "" {
		c, err := ParseHex(off)
		if err != nil {
			return nil, err
		}
		t.ledOff = c
	}
	return t, nil
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG     = 0.0
	RoleLEDOff = 0.2
	RoleFG     = 0.4
	RoleArm    = 0.6
	RoleSolo   = 0.8
	RoleLEDOn  = 1.0
)

func (t *Theme) BG() lipgloss.Color {
	return toLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return toLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Arm() lipgloss.Color {
	return toLipgloss(t.Palette.Lookup(RoleArm))
}

func (t *Theme) Solo() lipgloss.Color {
	return toLipgloss(t.Palette.Lookup(RoleSolo))
}

// LED returns the colour of a lit or dark LED
func (t *Theme) LED(on bool) lipgloss.Color {
	if on {
		return toLipgloss(t.ledOn)
	}
	return toLipgloss(t.ledOff)
}

// Level shades between the dark and lit LED colours, used for fader levels
func (t *Theme) Level(norm float64) lipgloss.Color {
	return toLipgloss(t.ledOff.Blend(t.ledOn, norm))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return toLipgloss(t.Palette.Lookup(norm))
}

func toLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}
