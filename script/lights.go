package script

import "nano-kontrol/daw"

// Lights is the semantic layer over Hardware
type Lights struct {
	hw        *Hardware
	transport daw.Transport
}

func NewLights(hw *Hardware, transport daw.Transport) *Lights {
	return &Lights{hw: hw, transport: transport}
}

func (l *Lights) Update(button uint8, on bool) {
	l.hw.UpdateButtonLight(button, on)
}

// UpdateTransport mirrors record/play/loop-mode state. On init the momentary
// transport buttons are switched off too.
func (l *Lights) UpdateTransport(init bool) {
	if init {
		l.hw.UpdateButtonLight(RewindButton, false)
		l.hw.UpdateButtonLight(ForwardButton, false)
		l.hw.UpdateButtonLight(StopButton, false)
	}

	l.hw.UpdateButtonLight(RecordButton, l.transport.IsRecording())
	l.hw.UpdateButtonLight(PlayButton, l.transport.IsPlaying())
	l.hw.UpdateButtonLight(ModeButton, l.transport.LoopMode() == daw.LoopPattern)
}
