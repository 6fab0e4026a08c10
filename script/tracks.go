package script

import (
	"fmt"
	"strings"
	"time"

	"nano-kontrol/daw"
	"nano-kontrol/debug"
)

const noGroup = -1

// Tracks groups mixer tracks by name tag and drives them from the S/M/R
// buttons and the faders. A track named "Kick (1)" belongs to group 1, a
// track named "Drums [1]" is a master of group 1 (and a member too).
type Tracks struct {
	hw          *Hardware
	mixer       daw.Mixer
	sleep       func(time.Duration)
	flashDelay  time.Duration
	settleDelay time.Duration

	groups  [][]int // members per group, masters included
	masters [][]int

	muted  map[int]bool
	armed  map[int]bool
	soloed int
}

func NewTracks(hw *Hardware, mixer daw.Mixer, opts Options) *Tracks {
	t := &Tracks{
		hw:          hw,
		mixer:       mixer,
		sleep:       opts.sleeper(),
		flashDelay:  opts.FlashDelay,
		settleDelay: opts.SettleDelay,
		muted:       make(map[int]bool),
		armed:       make(map[int]bool),
		soloed:      noGroup,
	}
	t.hw.UpdateTrackButtons(false)
	return t
}

func (t *Tracks) findTracksOfGroup(group int, onlyMasters bool) []int {
	var tracks []int
	memberTag := fmt.Sprintf("(%d)", group)
	masterTag := fmt.Sprintf("[%d]", group)

	for track := 0; track <= MaxTrack; track++ {
		name := t.mixer.TrackName(track)
		if (!onlyMasters && strings.Contains(name, memberTag)) || strings.Contains(name, masterTag) {
			tracks = append(tracks, track)
		}
	}
	return tracks
}

// Scan rebuilds the groups from track names, then flashes the S/M/R LEDs
// twice. It blocks for the length of the flash.
func (t *Tracks) Scan() {
	t.groups = make([][]int, 0, NumGroups)
	t.masters = make([][]int, 0, NumGroups)

	for g := 1; g <= NumGroups; g++ {
		t.groups = append(t.groups, t.findTracksOfGroup(g, false))
		t.masters = append(t.masters, t.findTracksOfGroup(g, true))
	}
	debug.Log("scan", "groups=%v masters=%v", t.groups, t.masters)

	for i := 0; i < 2; i++ {
		t.hw.UpdateTrackButtons(true)
		t.sleep(t.flashDelay)
		t.hw.UpdateTrackButtons(false)
		t.sleep(t.flashDelay)
	}
}

func (t *Tracks) valid(group int) bool {
	return group >= 0 && group < len(t.groups)
}

// setTrack drives a toggle-only primitive to the wanted state
func setTrack(track int, want bool, is func(int) bool, toggle func(int)) {
	if is(track) != want {
		toggle(track)
	}
}

// ToggleArm flips the arm state of a group and forces its masters to match
func (t *Tracks) ToggleArm(group int) {
	if !t.valid(group) {
		return
	}

	arm := !t.armed[group]
	if arm {
		t.armed[group] = true
	} else {
		delete(t.armed, group)
	}
	t.hw.UpdateButtonLight(ArmButton(group), arm)

	for _, track := range t.masters[group] {
		setTrack(track, arm, t.mixer.IsTrackArmed, t.mixer.ArmTrack)
	}
	debug.Log("tracks", "arm group=%d armed=%t", group+1, arm)
}

// ToggleMute flips the mute state of a group. An active solo is dropped
// first. The mute LED is lit while the group is audible.
func (t *Tracks) ToggleMute(group int) {
	if !t.valid(group) {
		return
	}

	if t.soloed != noGroup {
		t.hw.UpdateButtonLight(SoloButton(t.soloed), false)
		t.soloed = noGroup
	}

	mute := !t.muted[group]
	if mute {
		t.muted[group] = true
	} else {
		delete(t.muted, group)
	}
	t.hw.UpdateButtonLight(MuteButton(group), !mute)

	for _, track := range t.groups[group] {
		setTrack(track, mute, t.mixer.IsTrackMuted, t.mixer.MuteTrack)
	}
	debug.Log("tracks", "mute group=%d muted=%t", group+1, mute)

	t.checkOnlyOneUnmuted()
}

// checkOnlyOneUnmuted marks the last audible group as soloed (LED only)
func (t *Tracks) checkOnlyOneUnmuted() {
	if len(t.muted) != len(t.groups)-1 {
		return
	}
	for g := range t.groups {
		if !t.muted[g] {
			t.soloed = g
			t.hw.UpdateButtonLight(SoloButton(g), true)
			return
		}
	}
}

func (t *Tracks) muteAllExcept(group int) {
	t.hw.UpdateButtonLight(MuteButton(group), true)
	t.muted = make(map[int]bool)
	for g := range t.groups {
		if g != group {
			t.hw.UpdateButtonLight(MuteButton(g), false)
			t.muted[g] = true
		}
	}
}

func (t *Tracks) unmuteAll() {
	for g := range t.groups {
		t.hw.UpdateButtonLight(MuteButton(g), true)
	}
	t.muted = make(map[int]bool)
}

// ToggleSolo solos a group, or un-solos it when it already is. Groups with
// no tracks are ignored.
//
// The host solo is exclusive and mutes every other track, so after soloing
// the first member the other members of the group are unmuted again. When
// un-soloing, the solo flag is read back after a settle delay and toggled a
// second time if the host has not caught up; that retry is best effort.
func (t *Tracks) ToggleSolo(group int) {
	if !t.valid(group) || len(t.groups[group]) == 0 {
		return
	}

	members := t.groups[group]
	first := members[0]

	if t.soloed == group {
		t.hw.UpdateButtonLight(SoloButton(group), false)
		t.unmuteAll()

		t.mixer.SoloTrack(first)
		t.sleep(t.settleDelay)
		if t.mixer.IsTrackSolo(first) {
			debug.Log("tracks", "solo still set on track %d, toggling again", first)
			t.mixer.SoloTrack(first)
		}

		t.soloed = noGroup
		debug.Log("tracks", "unsolo group=%d", group+1)
		return
	}

	if t.soloed != noGroup {
		t.hw.UpdateButtonLight(SoloButton(t.soloed), false)
	}

	t.hw.UpdateButtonLight(SoloButton(group), true)
	t.muteAllExcept(group)
	t.soloed = group
	setTrack(first, true, t.mixer.IsTrackSolo, t.mixer.SoloTrack)
	debug.Log("tracks", "solo group=%d track=%d", group+1, first)

	if len(members) <= 1 {
		return
	}
	t.sleep(t.settleDelay)

	for _, track := range members[1:] {
		if t.mixer.IsTrackMuted(track) {
			t.mixer.MuteTrack(track)
		}
	}
}

// FaderGain maps a 0-127 fader value to a track volume
func FaderGain(value uint8) float64 {
	return (float64(value)/127 - VolumeOffset) * MaxVolume
}

// Volume applies a fader move to the masters of its group
func (t *Tracks) Volume(fader, value uint8) {
	group := int(fader) - TracksFirstFader
	if group < 0 || group >= len(t.masters) {
		return
	}

	volume := FaderGain(value)
	for _, track := range t.masters[group] {
		t.mixer.SetTrackVolume(track, volume)
	}
	debug.LogEvery(16, "fader", "group=%d value=%d volume=%.4f", group+1, value, volume)
}

// RedrawLEDs sets the S/M/R LEDs from the group state: solo for the soloed
// group, mute while audible, arm while armed. Empty groups stay dark.
func (t *Tracks) RedrawLEDs() {
	for g := 0; g < NumGroups; g++ {
		used := g < len(t.groups) && len(t.groups[g]) > 0
		t.hw.UpdateButtonLight(SoloButton(g), used && t.soloed == g)
		t.hw.UpdateButtonLight(MuteButton(g), used && !t.muted[g])
		t.hw.UpdateButtonLight(ArmButton(g), used && t.armed[g])
	}
}

// Groups returns a copy of the member lists (index 0 is group 1)
func (t *Tracks) Groups() [][]int {
	return copyGroups(t.groups)
}

// Masters returns a copy of the master lists
func (t *Tracks) Masters() [][]int {
	return copyGroups(t.masters)
}

func copyGroups(in [][]int) [][]int {
	out := make([][]int, len(in))
	for i, g := range in {
		out[i] = append([]int(nil), g...)
	}
	return out
}

func (t *Tracks) Muted(group int) bool { return t.muted[group] }
func (t *Tracks) Armed(group int) bool { return t.armed[group] }

// Soloed returns the soloed group, or -1
func (t *Tracks) Soloed() int { return t.soloed }

// MutedCount is the number of muted groups
func (t *Tracks) MutedCount() int { return len(t.muted) }
