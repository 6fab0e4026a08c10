package script

import "nano-kontrol/daw"

// PatternControl jogs through patterns while MODE is held. Releasing MODE
// without having jogged toggles the loop mode instead.
type PatternControl struct {
	transport daw.Transport
	modeHeld  bool
	moved     bool
}

func NewPatternControl(transport daw.Transport) *PatternControl {
	return &PatternControl{transport: transport}
}

func (p *PatternControl) ModeHeld() bool {
	return p.modeHeld
}

func (p *PatternControl) PressMode() {
	p.modeHeld = true
}

// ReleaseMode reports whether the release should toggle the loop mode
func (p *PatternControl) ReleaseMode() bool {
	toggle := !p.moved
	p.modeHeld = false
	p.moved = false
	return toggle
}

func (p *PatternControl) NextPattern() {
	p.moved = true
	p.transport.Jog(daw.JogPattern, 1)
}

func (p *PatternControl) PrevPattern() {
	p.moved = true
	p.transport.Jog(daw.JogPattern, -1)
}
