package midi

import "sync"

// Output forwards LED writes to whichever controller is attached. Writes
// with nothing attached are dropped.
type Output struct {
	mu sync.RWMutex
	c  Controller
}

// Attach routes writes to c; nil detaches
func (o *Output) Attach(c Controller) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.c = c
}

// Detach drops c if it is the attached controller
func (o *Output) Detach(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.c != nil && o.c.ID() == id {
		o.c = nil
	}
}

// Attached returns the current controller, or nil
func (o *Output) Attached() Controller {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.c
}

func (o *Output) SendCC(channel, control, value uint8) error {
	c := o.Attached()
	if c == nil {
		return nil
	}
	return c.SendCC(channel, control, value)
}
