// Package script maps a Korg nanoKONTROL2 onto a DAW: transport buttons,
// marker-based time selections, and eight track groups driven by the S/M/R
// buttons and faders. A Session is the whole script; the host calls it
// synchronously, one event at a time.
package script

import (
	"time"

	"nano-kontrol/daw"
	"nano-kontrol/debug"
)

// Event is a control change received from the controller
type Event struct {
	Channel uint8
	Control uint8
	Value   uint8
}

// Options tune a Session
type Options struct {
	TrackChannel     int // 1-based
	TransportChannel int // 1-based
	FlashDelay       time.Duration
	SettleDelay      time.Duration

	// Sleep blocks for the flash and settle delays; time.Sleep when nil
	Sleep func(time.Duration)
}

// DefaultOptions returns the stock channels and delays
func DefaultOptions() Options {
	return Options{
		TrackChannel:     DefaultTrackChannel,
		TransportChannel: DefaultTransportChannel,
		FlashDelay:       DefaultFlashDelay,
		SettleDelay:      DefaultSettleDelay,
	}
}

func (o Options) sleeper() func(time.Duration) {
	if o.Sleep != nil {
		return o.Sleep
	}
	return time.Sleep
}

// Session holds every manager of the script. Create one per host session.
type Session struct {
	hw       *Hardware
	tracks   *Tracks
	controls *Controls
}

// New is the init callback: it builds the managers and resets the LEDs
func New(host daw.Host, out LEDSender, opts Options) *Session {
	if opts.TrackChannel == 0 {
		opts.TrackChannel = DefaultTrackChannel
	}
	if opts.TransportChannel == 0 {
		opts.TransportChannel = DefaultTransportChannel
	}
	debug.Log("init", "session track-ch=%d transport-ch=%d", opts.TrackChannel, opts.TransportChannel)

	hw := NewHardware(out, opts.TrackChannel, opts.TransportChannel)
	tracks := NewTracks(hw, host, opts)
	return &Session{
		hw:       hw,
		tracks:   tracks,
		controls: NewControls(hw, host, tracks.Scan),
	}
}

func (s *Session) Tracks() *Tracks { return s.tracks }
func (s *Session) Controls() *Controls { return s.controls }
func (s *Session) Hardware() *Hardware { return s.hw }
func (s *Session) Selection() *Selection { return s.controls.Selection() }

// OnProjectLoad rescans the track groups
func (s *Session) OnProjectLoad() {
	s.tracks.Scan()
}

// OnDeviceConnected rescans and then brings a freshly attached controller
// in line with the current state: S/M/R LEDs from the groups, transport
// LEDs from the host.
func (s *Session) OnDeviceConnected() {
	s.tracks.Scan()
	s.tracks.RedrawLEDs()
	s.controls.UpdateButtonStates(true)
}

// OnRefresh redraws the transport LEDs when the host flags them dirty.
// flags is a bitmask: any set DirtyLEDs bit triggers the redraw, other bits
// are ignored. A host that reports dirty state as distinct values rather
// than bits has to map them to DirtyLEDs before calling.
func (s *Session) OnRefresh(flags int) {
	if flags&DirtyLEDs != 0 {
		s.controls.UpdateButtonStates(false)
	}
}

// OnControlChange dispatches a control change and reports whether the script
// handled it. Knobs are left to the host.
func (s *Session) OnControlChange(ev Event) bool {
	button := ev.Control

	switch {
	case isFader(button):
		s.tracks.Volume(button, ev.Value)
	case isTrackButton(button):
		if ev.Value == 0 {
			return true
		}
		group := groupOfButton(button)
		switch (button - TracksFirstButton) % 3 {
		case 0:
			s.tracks.ToggleSolo(group)
		case 1:
			s.tracks.ToggleMute(group)
		case 2:
			s.tracks.ToggleArm(group)
		}
	case isKnob(button):
		return false
	case ev.Value == 0:
		s.controls.PressEnd(button)
	default:
		s.controls.PressStart(button)
	}
	return true
}

// Status is a snapshot of the script state for display
type Status struct {
	Groups  [][]int
	Masters [][]int
	Muted   [NumGroups]bool
	Armed   [NumGroups]bool
	Soloed  int

	Selecting    bool
	PendingStart int
	Step         int
	Saved        bool
	SavedStart   int
	SavedEnd     int

	LEDs [128]bool
}

// Status captures the current state
func (s *Session) Status() Status {
	st := Status{
		Groups:  s.tracks.Groups(),
		Masters: s.tracks.Masters(),
		Soloed:  s.tracks.Soloed(),
		Step:    s.Selection().Step(),
		LEDs:    s.hw.LitButtons(),
	}
	for g := 0; g < NumGroups; g++ {
		st.Muted[g] = s.tracks.Muted(g)
		st.Armed[g] = s.tracks.Armed(g)
	}
	st.PendingStart, st.Selecting = s.Selection().PendingStart()
	st.SavedStart, st.SavedEnd, st.Saved = s.Selection().Previous()
	return st
}
