package script

import (
	"context"
	"time"

	"nano-kontrol/debug"
)

// DefaultRefreshRate is how often dirty LED state is flushed
const DefaultRefreshRate = 30

// Runner owns a Session and feeds it from one goroutine, so the script keeps
// the single-threaded callback model whatever goroutine the MIDI driver
// delivers on.
type Runner struct {
	session  *Session
	events   chan Event
	loads    chan struct{}
	connects chan struct{}
	dirty    chan struct{}
	rate     int

	// Updates receives a status snapshot after every handled input
	Updates chan Status
}

func NewRunner(session *Session, rate int) *Runner {
	if rate <= 0 {
		rate = DefaultRefreshRate
	}
	return &Runner{
		session:  session,
		events:   make(chan Event, 64),
		loads:    make(chan struct{}, 1),
		connects: make(chan struct{}, 1),
		dirty:    make(chan struct{}, 1),
		rate:     rate,
		Updates:  make(chan Status, 1),
	}
}

// Post queues a control change. Press-end events must not be lost, so this
// blocks when the queue is full.
func (r *Runner) Post(ev Event) {
	r.events <- ev
}

// ProjectLoaded queues a project-load notification
func (r *Runner) ProjectLoaded() {
	select {
	case r.loads <- struct{}{}:
	default:
	}
}

// DeviceConnected queues an LED redraw for a newly attached controller
func (r *Runner) DeviceConnected() {
	select {
	case r.connects <- struct{}{}:
	default:
	}
}

// MarkDirty flags the transport LEDs for the next refresh tick. Safe to call
// from any goroutine, including from inside the Session.
func (r *Runner) MarkDirty() {
	select {
	case r.dirty <- struct{}{}:
	default:
	}
}

// Run processes inputs until ctx is done
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.rate))
	defer ticker.Stop()

	r.publish()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-r.events:
			handled := r.session.OnControlChange(ev)
			if !handled {
				debug.Log("runner", "unhandled cc=%d value=%d", ev.Control, ev.Value)
			}
			r.publish()
		case <-r.loads:
			r.session.OnProjectLoad()
			r.publish()
		case <-r.connects:
			r.session.OnDeviceConnected()
			r.publish()
		case <-ticker.C:
			select {
			case <-r.dirty:
				r.session.OnRefresh(DirtyLEDs)
				r.publish()
			default:
			}
		}
	}
}

func (r *Runner) publish() {
	st := r.session.Status()
	// Replace a stale snapshot nobody has read yet
	select {
	case <-r.Updates:
	default:
	}
	select {
	case r.Updates <- st:
	default:
	}
}
