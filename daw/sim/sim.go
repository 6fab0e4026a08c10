// Package sim is an in-memory DAW. It backs the demo runtime and the script
// tests, and follows the behaviour of the real host where the script depends
// on it: toggling mixer primitives, exclusive solo and the -1 selection
// sentinel.
package sim

import (
	"fmt"
	"strings"
	"sync"

	"nano-kontrol/daw"
)

// NumTracks is the number of mixer tracks (master + inserts + current)
const NumTracks = 127

// Track is one mixer track
type Track struct {
	Name   string
	Muted  bool
	Solo   bool
	Armed  bool
	Volume float64
}

// State is a copy of everything the simulated DAW holds
type State struct {
	Playing   bool
	Recording bool
	Loop      daw.LoopMode
	Pos       int
	SelStart  int
	SelEnd    int
	Rewind    daw.SeekMode
	Forward   daw.SeekMode
	Windows   map[daw.Window]bool
	Jogs      map[daw.JogTarget]int
	Tracks    [NumTracks]Track
}

// Host implements daw.Host
type Host struct {
	mu       sync.Mutex
	st       State
	calls    []string
	dropSolo int
	onChange func()
}

var _ daw.Host = (*Host)(nil)

// New creates an empty simulated project
func New() *Host {
	h := &Host{}
	h.reset()
	return h
}

func (h *Host) reset() {
	h.st = State{
		Loop:     daw.LoopPattern,
		SelStart: daw.NoSelection,
		SelEnd:   daw.NoSelection,
		Windows:  make(map[daw.Window]bool),
		Jogs:     make(map[daw.JogTarget]int),
	}
	for i := range h.st.Tracks {
		h.st.Tracks[i].Volume = 0.8
	}
	h.calls = nil
}

// LoadProject replaces the project with fresh tracks named after names.
// names[0] is the master track.
func (h *Host) LoadProject(names []string) {
	h.mu.Lock()
	h.reset()
	for i, name := range names {
		if i >= NumTracks {
			break
		}
		h.st.Tracks[i].Name = name
	}
	h.mu.Unlock()
	h.changed()
}

// OnChange registers a callback fired after every mutation (outside the lock)
func (h *Host) OnChange(fn func()) {
	h.mu.Lock()
	h.onChange = fn
	h.mu.Unlock()
}

func (h *Host) changed() {
	h.mu.Lock()
	fn := h.onChange
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// record must be called with mu held
func (h *Host) record(format string, args ...any) {
	h.calls = append(h.calls, fmt.Sprintf(format, args...))
}

// Snapshot returns a deep copy of the current state
func (h *Host) Snapshot() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	st := h.st
	st.Windows = make(map[daw.Window]bool, len(h.st.Windows))
	for k, v := range h.st.Windows {
		st.Windows[k] = v
	}
	st.Jogs = make(map[daw.JogTarget]int, len(h.st.Jogs))
	for k, v := range h.st.Jogs {
		st.Jogs[k] = v
	}
	return st
}

// Calls returns the mutating calls made so far, e.g. "MuteTrack(3)"
func (h *Host) Calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.calls))
	copy(out, h.calls)
	return out
}

// CountCalls counts recorded calls starting with prefix
func (h *Host) CountCalls(prefix string) int {
	n := 0
	for _, c := range h.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// ResetCalls forgets the call log
func (h *Host) ResetCalls() {
	h.mu.Lock()
	h.calls = nil
	h.mu.Unlock()
}

// DropSoloToggles makes the next n SoloTrack calls do nothing, the way a
// slow host can swallow a toggle while it is still settling.
func (h *Host) DropSoloToggles(n int) {
	h.mu.Lock()
	h.dropSolo = n
	h.mu.Unlock()
}

// SetPlaying forces the transport state
func (h *Host) SetPlaying(playing bool) {
	h.mu.Lock()
	h.st.Playing = playing
	h.mu.Unlock()
	h.changed()
}

// SetSelection forces the time selection; pass daw.NoSelection to clear
func (h *Host) SetSelection(start, end int) {
	h.mu.Lock()
	h.st.SelStart, h.st.SelEnd = start, end
	h.mu.Unlock()
	h.changed()
}

// SetTrack overwrites a track
func (h *Host) SetTrack(i int, t Track) {
	if i < 0 || i >= NumTracks {
		return
	}
	h.mu.Lock()
	h.st.Tracks[i] = t
	h.mu.Unlock()
	h.changed()
}

// Track returns a copy of a track
func (h *Host) Track(i int) Track {
	if i < 0 || i >= NumTracks {
		return Track{}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.st.Tracks[i]
}
