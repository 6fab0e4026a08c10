package sim

import "nano-kontrol/daw"

// mutate runs fn under the lock and then notifies the change listener
func (h *Host) mutate(fn func()) {
	h.mu.Lock()
	fn()
	h.mu.Unlock()
	h.changed()
}

func (h *Host) read(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn()
}

func validTrack(i int) bool {
	return i >= 0 && i < NumTracks
}

// Transport

func (h *Host) Start() {
	h.mutate(func() {
		h.record("Start()")
		h.st.Playing = true
	})
}

func (h *Host) Pause() {
	h.mutate(func() {
		h.record("Pause()")
		h.st.Playing = false
	})
}

// Stop halts playback and returns the playhead to the selection start (or
// the song start when nothing is selected).
func (h *Host) Stop() {
	h.mutate(func() {
		h.record("Stop()")
		h.st.Playing = false
		h.st.Recording = false
		if h.st.SelStart >= 0 {
			h.st.Pos = h.st.SelStart
		} else {
			h.st.Pos = 0
		}
	})
}

func (h *Host) Record() {
	h.mutate(func() {
		h.record("Record()")
		h.st.Recording = !h.st.Recording
	})
}

func (h *Host) Rewind(mode daw.SeekMode) {
	h.mutate(func() {
		h.record("Rewind(%d)", mode)
		h.st.Rewind = mode
	})
}

func (h *Host) FastForward(mode daw.SeekMode) {
	h.mutate(func() {
		h.record("FastForward(%d)", mode)
		h.st.Forward = mode
	})
}

func (h *Host) IsPlaying() (playing bool) {
	h.read(func() { playing = h.st.Playing })
	return
}

func (h *Host) IsRecording() (recording bool) {
	h.read(func() { recording = h.st.Recording })
	return
}

func (h *Host) LoopMode() (mode daw.LoopMode) {
	h.read(func() { mode = h.st.Loop })
	return
}

func (h *Host) ToggleLoopMode() {
	h.mutate(func() {
		h.record("ToggleLoopMode()")
		if h.st.Loop == daw.LoopPattern {
			h.st.Loop = daw.LoopSong
		} else {
			h.st.Loop = daw.LoopPattern
		}
	})
}

func (h *Host) Jog(target daw.JogTarget, delta int) {
	h.mutate(func() {
		h.record("Jog(%d,%d)", target, delta)
		h.st.Jogs[target] += delta
	})
}

// Arrangement

func (h *Host) SongPos() (pos int) {
	h.read(func() { pos = h.st.Pos })
	return
}

func (h *Host) SetSongPos(ticks int) {
	h.mutate(func() {
		h.record("SetSongPos(%d)", ticks)
		h.st.Pos = ticks
	})
}

// CurrentTime is the playhead; the simulation does not advance time on its own
func (h *Host) CurrentTime() (pos int) {
	h.read(func() { pos = h.st.Pos })
	return
}

func (h *Host) SelectionStart() (start int) {
	h.read(func() { start = h.st.SelStart })
	return
}

func (h *Host) SelectionEnd() (end int) {
	h.read(func() { end = h.st.SelEnd })
	return
}

func (h *Host) LiveSelection(ticks int, end bool) {
	h.mutate(func() {
		h.record("LiveSelection(%d,%t)", ticks, end)
		if !end {
			h.st.SelStart = ticks
			return
		}
		if ticks <= h.st.SelStart {
			h.st.SelStart, h.st.SelEnd = daw.NoSelection, daw.NoSelection
			return
		}
		h.st.SelEnd = ticks
	})
}

// Mixer

func (h *Host) TrackName(track int) (name string) {
	if !validTrack(track) {
		return ""
	}
	h.read(func() { name = h.st.Tracks[track].Name })
	return
}

func (h *Host) IsTrackArmed(track int) (armed bool) {
	if !validTrack(track) {
		return false
	}
	h.read(func() { armed = h.st.Tracks[track].Armed })
	return
}

func (h *Host) ArmTrack(track int) {
	if !validTrack(track) {
		return
	}
	h.mutate(func() {
		h.record("ArmTrack(%d)", track)
		h.st.Tracks[track].Armed = !h.st.Tracks[track].Armed
	})
}

func (h *Host) IsTrackMuted(track int) (muted bool) {
	if !validTrack(track) {
		return false
	}
	h.read(func() { muted = h.st.Tracks[track].Muted })
	return
}

func (h *Host) MuteTrack(track int) {
	if !validTrack(track) {
		return
	}
	h.mutate(func() {
		h.record("MuteTrack(%d)", track)
		h.st.Tracks[track].Muted = !h.st.Tracks[track].Muted
	})
}

func (h *Host) IsTrackSolo(track int) (solo bool) {
	if !validTrack(track) {
		return false
	}
	h.read(func() { solo = h.st.Tracks[track].Solo })
	return
}

// SoloTrack is exclusive: soloing a track mutes every other track, and
// un-soloing it unmutes everything.
func (h *Host) SoloTrack(track int) {
	if !validTrack(track) {
		return
	}
	h.mutate(func() {
		h.record("SoloTrack(%d)", track)
		if h.dropSolo > 0 {
			h.dropSolo--
			return
		}
		on := !h.st.Tracks[track].Solo
		for i := range h.st.Tracks {
			if on {
				h.st.Tracks[i].Solo = i == track
				h.st.Tracks[i].Muted = i != track
			} else {
				h.st.Tracks[i].Solo = false
				h.st.Tracks[i].Muted = false
			}
		}
	})
}

func (h *Host) SetTrackVolume(track int, volume float64) {
	if !validTrack(track) {
		return
	}
	h.mutate(func() {
		h.record("SetTrackVolume(%d,%g)", track, volume)
		h.st.Tracks[track].Volume = volume
	})
}

// UI

func (h *Host) ShowWindow(w daw.Window) {
	h.mutate(func() {
		h.record("ShowWindow(%d)", w)
		h.st.Windows[w] = true
	})
}

func (h *Host) HideWindow(w daw.Window) {
	h.mutate(func() {
		h.record("HideWindow(%d)", w)
		h.st.Windows[w] = false
	})
}
