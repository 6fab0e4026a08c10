package midi

import "sync"

// Virtual is an in-memory controller. Events are injected by the caller and
// LED writes are mirrored so they can be drawn on screen.
type Virtual struct {
	id     string
	events chan CCEvent

	mu     sync.Mutex
	closed bool
	leds   map[uint8][128]uint8
	onSend func(channel, control, value uint8)
}

func NewVirtual(id string) *Virtual {
	return &Virtual{
		id:     id,
		events: make(chan CCEvent, eventBuffer),
		leds:   make(map[uint8][128]uint8),
	}
}

func (v *Virtual) ID() string {
	return v.id
}

func (v *Virtual) Type() ControllerType {
	return ControllerVirtual
}

func (v *Virtual) Events() <-chan CCEvent {
	return v.events
}

// OnSend registers a callback for every LED write
func (v *Virtual) OnSend(fn func(channel, control, value uint8)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onSend = fn
}

// Inject queues an event as if it came from the hardware. It reports false
// when the controller is closed or the queue is full.
func (v *Virtual) Inject(ev CCEvent) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return false
	}
	select {
	case v.events <- ev:
		return true
	default:
		return false
	}
}

// Press injects a button going down
func (v *Virtual) Press(channel, control uint8) bool {
	return v.Inject(CCEvent{Channel: channel, Control: control, Value: 127})
}

// Release injects a button coming back up
func (v *Virtual) Release(channel, control uint8) bool {
	return v.Inject(CCEvent{Channel: channel, Control: control, Value: 0})
}

// Tap injects a press followed by a release
func (v *Virtual) Tap(channel, control uint8) bool {
	return v.Press(channel, control) && v.Release(channel, control)
}

func (v *Virtual) SendCC(channel, control, value uint8) error {
	v.mu.Lock()
	leds := v.leds[channel]
	leds[control&0x7f] = value
	v.leds[channel] = leds
	fn := v.onSend
	v.mu.Unlock()

	if fn != nil {
		fn(channel, control, value)
	}
	return nil
}

// LED returns the last value sent for a control
func (v *Virtual) LED(channel, control uint8) uint8 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.leds[channel][control&0x7f]
}

func (v *Virtual) ClearLEDs(channels ...uint8) error {
	for _, ch := range channels {
		for cc := uint8(0); cc < 128; cc++ {
			v.SendCC(ch, cc, 0)
		}
	}
	return nil
}

func (v *Virtual) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.closed {
		v.closed = true
		close(v.events)
	}
	return nil
}
