package script

import "time"

// nanoKONTROL2 control numbers. These have to match the scene written to the
// controller with the Kontrol Editor.
const (
	TracksFirstFader = 0
	TracksLastFader  = 7

	FirstKnob = 16
	LastKnob  = 23

	PlayButton       = 41
	StopButton       = 42
	RewindButton     = 43
	ForwardButton    = 44
	RecordButton     = 45
	ModeButton       = 46 // "cycle"
	PrevTrackButton  = 58
	NextTrackButton  = 59
	MarkerSetButton  = 60
	MarkerPrevButton = 61
	MarkerNextButton = 62

	// S/M/R buttons come in triplets per group: solo, mute, arm
	TracksFirstButton = 64
	TracksLastButton  = TracksFirstButton + NumGroups*3 - 1
)

// Group scanning
const (
	NumGroups = 8
	MaxTrack  = 126 // last mixer track index scanned (inclusive)
)

// Selection step sizes in ticks
const (
	OneBarInTicks   = 384
	FourBarsInTicks = 4 * OneBarInTicks
)

// Fader calibration
const (
	VolumeOffset = 0.003
	MaxVolume    = 0.8
)

// Default delays
const (
	DefaultFlashDelay  = 100 * time.Millisecond
	DefaultSettleDelay = 50 * time.Millisecond
)

// Default 1-based MIDI channels
const (
	DefaultTrackChannel     = 1
	DefaultTransportChannel = 14
)

// DirtyLEDs is the refresh flag bit asking for LED state to be redrawn
const DirtyLEDs = 256

// toggleModeButtons keep their LED state on release; everything else not
// otherwise handled is lit only while held.
var toggleModeButtons = map[uint8]bool{
	PlayButton:   true,
	StopButton:   true,
	RecordButton: true,
}

func isFader(control uint8) bool {
	return control <= TracksLastFader
}

func isTrackButton(control uint8) bool {
	return control >= TracksFirstButton && control <= TracksLastButton
}

func isKnob(control uint8) bool {
	return control >= FirstKnob && control <= LastKnob
}

// SoloButton, MuteButton and ArmButton return the control for a group (0-based)
func SoloButton(group int) uint8 { return uint8(TracksFirstButton + group*3) }
func MuteButton(group int) uint8 { return uint8(TracksFirstButton + group*3 + 1) }
func ArmButton(group int) uint8 { return uint8(TracksFirstButton + group*3 + 2) }

// groupOfButton maps an S/M/R button to its group (0-based); may be out of range
func groupOfButton(button uint8) int {
	if button < TracksFirstButton {
		return -1
	}
	return (int(button) - TracksFirstButton) / 3
}
