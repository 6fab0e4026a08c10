package midi

// ControllerType identifies the kind of controller
type ControllerType int

const (
	ControllerUnknown ControllerType = iota
	ControllerNanoKontrol2
	ControllerVirtual
)

func (t ControllerType) String() string {
	switch t {
	case ControllerNanoKontrol2:
		return "nanoKONTROL2"
	case ControllerVirtual:
		return "virtual"
	default:
		return "unknown"
	}
}

// Controller is the interface for control-change surfaces
type Controller interface {
	ID() string
	Type() ControllerType

	// Input events from the controller
	Events() <-chan CCEvent

	// Output to the controller. Channels are 0-based.
	SendCC(channel, control, value uint8) error
	ClearLEDs(channels ...uint8) error

	// Lifecycle
	Close() error
}
