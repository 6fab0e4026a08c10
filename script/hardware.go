package script

import "nano-kontrol/debug"

// LEDSender sends a control change to the controller. Channels are 0-based
// wire channels.
type LEDSender interface {
	SendCC(channel, control, value uint8) error
}

// Hardware turns LEDs on the nanoKONTROL2 on and off. It mirrors the last
// value sent for every control so the state can be shown elsewhere.
type Hardware struct {
	out              LEDSender
	trackChannel     uint8
	transportChannel uint8
	lit              [128]bool
}

// NewHardware takes 1-based channels, the way the Kontrol Editor shows them
func NewHardware(out LEDSender, trackChannel, transportChannel int) *Hardware {
	return &Hardware{
		out:              out,
		trackChannel:     wireChannel(trackChannel),
		transportChannel: wireChannel(transportChannel),
	}
}

func wireChannel(ch int) uint8 {
	if ch < 1 || ch > 16 {
		return 0
	}
	return uint8(ch - 1)
}

// channelFor picks the track channel for S/M/R buttons, transport otherwise
func (hw *Hardware) channelFor(button uint8) uint8 {
	if button >= TracksFirstButton {
		return hw.trackChannel
	}
	return hw.transportChannel
}

func (hw *Hardware) send(channel, button uint8, on bool) {
	if button > 127 {
		return
	}
	var value uint8
	if on {
		value = 127
	}
	hw.lit[button] = on
	if hw.out == nil {
		return
	}
	if err := hw.out.SendCC(channel, button, value); err != nil {
		debug.Warn("led", "send cc=%d ch=%d: %v", button, channel, err)
	}
}

// UpdateButtonLight turns a single button LED on or off
func (hw *Hardware) UpdateButtonLight(button uint8, on bool) {
	hw.send(hw.channelFor(button), button, on)
}

// UpdateTrackButtons sets every S/M/R LED at once
func (hw *Hardware) UpdateTrackButtons(on bool) {
	for b := TracksFirstButton; b <= TracksLastButton; b++ {
		hw.send(hw.trackChannel, uint8(b), on)
	}
}

// Lit reports the last state sent for a button
func (hw *Hardware) Lit(button uint8) bool {
	if button > 127 {
		return false
	}
	return hw.lit[button]
}

// LitButtons returns a copy of the LED mirror
func (hw *Hardware) LitButtons() [128]bool {
	return hw.lit
}
