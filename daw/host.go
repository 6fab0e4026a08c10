package daw

// NoSelection is what SelectionStart/SelectionEnd report when the arrangement
// has no time selection.
const NoSelection = -1

// SeekMode is the rewind / fast-forward state
type SeekMode int

const (
	SeekStop      SeekMode = 0
	SeekStartStep SeekMode = 1
	SeekStart     SeekMode = 2
)

// LoopMode is the transport loop mode
type LoopMode int

const (
	LoopPattern LoopMode = 0
	LoopSong    LoopMode = 1
)

// JogTarget selects what a jog command moves through
type JogTarget int

const (
	JogPattern JogTarget = 100
	JogTrack   JogTarget = 102
)

// Window identifies a DAW window
type Window int

const (
	WindowMixer       Window = 0
	WindowChannelRack Window = 1
	WindowPlaylist    Window = 2
)

// Transport controls playback
type Transport interface {
	// Start begins or resumes playback. It never pauses.
	Start()
	// Pause halts playback and keeps the playhead where it is.
	Pause()
	Stop()
	Record()
	Rewind(mode SeekMode)
	FastForward(mode SeekMode)
	IsPlaying() bool
	IsRecording() bool
	LoopMode() LoopMode
	ToggleLoopMode()
	Jog(target JogTarget, delta int)
}

// Arrangement exposes song position and the time selection. All positions
// are in ticks.
type Arrangement interface {
	SongPos() int
	SetSongPos(ticks int)
	CurrentTime() int
	SelectionStart() int
	SelectionEnd() int
	// LiveSelection sets the start (end=false) or the end (end=true) of the
	// time selection. Setting both to the same value clears it.
	LiveSelection(ticks int, end bool)
}

// Mixer exposes track introspection and mutation. ArmTrack, MuteTrack and
// SoloTrack toggle.
type Mixer interface {
	TrackName(track int) string
	IsTrackArmed(track int) bool
	ArmTrack(track int)
	IsTrackMuted(track int) bool
	MuteTrack(track int)
	IsTrackSolo(track int) bool
	SoloTrack(track int)
	SetTrackVolume(track int, volume float64)
}

// UI shows and hides DAW windows
type UI interface {
	ShowWindow(w Window)
	HideWindow(w Window)
}

// Host is everything the script needs from the DAW
type Host interface {
	Transport
	Arrangement
	Mixer
	UI
}
