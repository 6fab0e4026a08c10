package midi

// CCEvent is a control change received from a controller. Channel is the
// 0-based wire channel.
type CCEvent struct {
	Channel uint8
	Control uint8
	Value   uint8
}

// Pressed reports whether the event is a button going down
func (e CCEvent) Pressed() bool {
	return e.Value > 0
}

// eventBuffer is sized so a burst of fader moves doesn't drop button releases
const eventBuffer = 128
