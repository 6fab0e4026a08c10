package midi

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"nano-kontrol/debug"
)

var ccSendCount uint64

// NanoKontrol2 handles a Korg nanoKONTROL2 set to external LED mode
type NanoKontrol2 struct {
	id       string
	inPort   drivers.In
	outPort  drivers.Out
	send     func(msg gomidi.Message) error
	stopFunc func()

	mu     sync.Mutex
	closed bool
	events chan CCEvent
}

// NewNanoKontrol2 opens the ports of a nanoKONTROL2. Either port may be nil.
func NewNanoKontrol2(id string, inPort drivers.In, outPort drivers.Out) (*NanoKontrol2, error) {
	nk := &NanoKontrol2{
		id:      id,
		inPort:  inPort,
		outPort: outPort,
		events:  make(chan CCEvent, eventBuffer),
	}

	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, errors.Wrapf(err, "open output %q", outPort.String())
		}
		nk.send = send
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, nk.receive)
		if err != nil {
			return nil, errors.Wrapf(err, "open input %q", inPort.String())
		}
		nk.stopFunc = stop
	}

	return nk, nil
}

func (nk *NanoKontrol2) receive(msg gomidi.Message, timestampms int32) {
	var channel, control, value uint8
	if !msg.GetControlChange(&channel, &control, &value) {
		return
	}

	nk.mu.Lock()
	defer nk.mu.Unlock()
	if nk.closed {
		return
	}
	select {
	case nk.events <- CCEvent{Channel: channel, Control: control, Value: value}:
	default:
		debug.Warn("nk2", "event queue full, dropped cc=%d value=%d", control, value)
	}
}

func (nk *NanoKontrol2) ID() string {
	return nk.id
}

func (nk *NanoKontrol2) Type() ControllerType {
	return ControllerNanoKontrol2
}

func (nk *NanoKontrol2) Events() <-chan CCEvent {
	return nk.events
}

// SendCC lights (127) or clears (0) the LED of a button
func (nk *NanoKontrol2) SendCC(channel, control, value uint8) error {
	if nk.send == nil {
		return nil
	}
	count := atomic.AddUint64(&ccSendCount, 1)
	if count%100 == 0 {
		debug.Log("nk2-send", "sent count=%d", count)
	}
	return errors.Wrapf(nk.send(gomidi.ControlChange(channel, control, value)), "send cc %d", control)
}

// ClearLEDs switches every LED off on the given channels
func (nk *NanoKontrol2) ClearLEDs(channels ...uint8) error {
	for _, ch := range channels {
		for cc := uint8(0); cc < 128; cc++ {
			if err := nk.SendCC(ch, cc, 0); err != nil {
				return err
			}
		}
	}
	return nil
}

func (nk *NanoKontrol2) Close() error {
	if nk.stopFunc != nil {
		nk.stopFunc()
	}

	nk.mu.Lock()
	defer nk.mu.Unlock()
	if !nk.closed {
		nk.closed = true
		close(nk.events)
	}
	return nil
}
