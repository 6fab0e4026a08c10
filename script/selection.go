package script

import (
	"math"

	"nano-kontrol/daw"
	"nano-kontrol/debug"
)

// span is a saved time selection in ticks
type span struct {
	start, end int
}

// Selection handles the marker buttons: creating a time selection while SET
// is held, moving it with the track buttons, stepping the playhead between
// markers, and hiding/restoring the selection with the prev+next chord.
type Selection struct {
	transport daw.Transport
	arr       daw.Arrangement

	prev         *span // selection saved before the last change, nil if none
	pendingStart *int  // non-nil while SET is held
	wasPlaying   bool
	moved        bool
	step         int

	prevMarkerHeld bool
	nextMarkerHeld bool
}

func NewSelection(transport daw.Transport, arr daw.Arrangement) *Selection {
	return &Selection{
		transport: transport,
		arr:       arr,
		step:      FourBarsInTicks,
	}
}

// Active reports whether SET is held
func (s *Selection) Active() bool {
	return s.pendingStart != nil
}

// PendingStart returns the snapped start of the selection being made
func (s *Selection) PendingStart() (int, bool) {
	if s.pendingStart == nil {
		return 0, false
	}
	return *s.pendingStart, true
}

// Step returns the current step size in ticks
func (s *Selection) Step() int {
	return s.step
}

// SetAccuracy switches between one-bar (fine) and four-bar steps
func (s *Selection) SetAccuracy(fine bool) {
	if fine {
		s.step = OneBarInTicks
	} else {
		s.step = FourBarsInTicks
	}
}

// Previous returns the saved selection
func (s *Selection) Previous() (start, end int, ok bool) {
	if s.prev == nil {
		return 0, 0, false
	}
	return s.prev.start, s.prev.end, true
}

// current reads the host selection; nil when there is none
func (s *Selection) current() *span {
	start, end := s.arr.SelectionStart(), s.arr.SelectionEnd()
	if start == daw.NoSelection || end == daw.NoSelection {
		return nil
	}
	return &span{start: start, end: end}
}

func (s *Selection) apply(start, end int) {
	s.arr.LiveSelection(start, false)
	s.arr.LiveSelection(end, true)
}

func (s *Selection) clear() {
	s.apply(0, 0)
}

// Start begins a new selection at the playhead rounded to the nearest step
func (s *Selection) Start() {
	s.wasPlaying = s.transport.IsPlaying()
	if s.wasPlaying {
		s.transport.Pause()
	}

	s.prev = s.current()
	s.clear()

	pos := s.arr.SongPos()
	bar := int(math.RoundToEven(float64(pos) / float64(s.step)))
	target := max(0, bar*s.step)
	s.arr.SetSongPos(target)

	s.pendingStart = &target
	debug.Log("selection", "start pos=%d snapped=%d step=%d playing=%t", pos, target, s.step, s.wasPlaying)
}

// End closes the selection at the current time unless it was moved while
// SET was held, and resumes playback if Start paused it.
func (s *Selection) End() {
	if s.pendingStart != nil {
		if !s.moved {
			start, end := *s.pendingStart, s.arr.CurrentTime()
			if end < start {
				start, end = end, start
			}
			s.apply(start, end)
			debug.Log("selection", "end span=[%d,%d)", start, end)
		}
		if s.wasPlaying && !s.transport.IsPlaying() {
			s.transport.Start()
		}
	}
	s.pendingStart = nil
	s.moved = false
}

func (s *Selection) move(direction int) {
	if s.prev == nil {
		return
	}

	offset := (s.prev.end - s.prev.start) * direction
	start := max(0, s.prev.start+offset)
	end := max(0, s.prev.end+offset)

	s.apply(start, end)
	s.arr.SetSongPos(start)
	s.prev = &span{start: start, end: end}
	s.moved = true
	debug.Log("selection", "move dir=%d span=[%d,%d)", direction, start, end)
}

// MoveForward shifts the saved selection by its own length
func (s *Selection) MoveForward() {
	s.move(1)
}

// MoveBackward shifts the saved selection back by its own length
func (s *Selection) MoveBackward() {
	s.move(-1)
}

// PrevMarker moves the playhead to the step boundary before the one
// containing it
func (s *Selection) PrevMarker() {
	bar := floorDiv(s.arr.SongPos(), s.step)
	s.arr.SetSongPos(max(0, bar-1) * s.step)
	s.prevMarkerHeld = true
	s.checkChord()
}

// NextMarker moves the playhead to the next step boundary
func (s *Selection) NextMarker() {
	bar := floorDiv(s.arr.SongPos(), s.step)
	s.arr.SetSongPos(max(0, (bar+1)*s.step))
	s.nextMarkerHeld = true
	s.checkChord()
}

func (s *Selection) ReleasePrevMarker() { s.prevMarkerHeld = false }
func (s *Selection) ReleaseNextMarker() { s.nextMarkerHeld = false }

func (s *Selection) checkChord() {
	if s.prevMarkerHeld && s.nextMarkerHeld {
		s.ToggleSaved()
	}
}

// ToggleSaved restores the saved selection when the arrangement has none,
// otherwise saves the current one and clears it.
func (s *Selection) ToggleSaved() {
	if s.arr.SelectionEnd() == daw.NoSelection && s.prev != nil {
		s.apply(s.prev.start, s.prev.end)
		s.arr.SetSongPos(s.prev.start)
		debug.Log("selection", "restore span=[%d,%d)", s.prev.start, s.prev.end)
		return
	}

	s.prev = s.current()
	s.clear()
	if s.prev != nil {
		s.arr.SetSongPos(s.prev.start)
		debug.Log("selection", "hide span=[%d,%d)", s.prev.start, s.prev.end)
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
