package script

import "nano-kontrol/daw"

// LoopModeControl flips between pattern and song mode, showing the channel
// rack in pattern mode
type LoopModeControl struct {
	transport daw.Transport
	ui        daw.UI
}

func NewLoopModeControl(transport daw.Transport, ui daw.UI) *LoopModeControl {
	return &LoopModeControl{transport: transport, ui: ui}
}

func (l *LoopModeControl) Toggle() {
	l.transport.ToggleLoopMode()
	if l.transport.LoopMode() == daw.LoopPattern {
		l.ui.ShowWindow(daw.WindowChannelRack)
	} else {
		l.ui.HideWindow(daw.WindowChannelRack)
	}
}
