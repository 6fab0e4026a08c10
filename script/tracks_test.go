package script

import (
	"math"
	"reflect"
	"testing"

	"nano-kontrol/daw/sim"
)

func TestScanBuildsGroups(t *testing.T) {
	f := newFixture(t, testProject())
	tr := f.session.Tracks()

	groups := tr.Groups()
	masters := tr.Masters()
	if len(groups) != NumGroups || len(masters) != NumGroups {
		t.Fatalf("got %d groups / %d masters, want %d", len(groups), len(masters), NumGroups)
	}

	tests := []struct {
		group   int
		members []int
		masters []int
	}{
		{0, []int{1, 2, 3}, []int{2}},
		{1, []int{4, 5}, []int{4}},
		{2, []int{6, 7}, []int{6}},
		{6, []int{14, 15}, []int{14}},
		{7, nil, nil},
	}
	for _, tt := range tests {
		if !reflect.DeepEqual(groups[tt.group], tt.members) {
			t.Errorf("group %d members = %v, want %v", tt.group+1, groups[tt.group], tt.members)
		}
		if !reflect.DeepEqual(masters[tt.group], tt.masters) {
			t.Errorf("group %d masters = %v, want %v", tt.group+1, masters[tt.group], tt.masters)
		}
	}
}

func TestScanFlashesTrackButtons(t *testing.T) {
	f := newFixture(t, testProject())

	if len(f.sleeps.sleeps) != 4 {
		t.Fatalf("scan slept %d times, want 4", len(f.sleeps.sleeps))
	}
	for i, d := range f.sleeps.sleeps {
		if d != DefaultFlashDelay {
			t.Errorf("sleep %d = %v, want %v", i, d, DefaultFlashDelay)
		}
	}

	// init (off) + 2 x (on, off) for every S/M/R button
	for b := TracksFirstButton; b <= TracksLastButton; b++ {
		var values []uint8
		for _, s := range f.leds.sent {
			if s.control == uint8(b) {
				values = append(values, s.value)
			}
		}
		want := []uint8{0, 127, 0, 127, 0}
		if !reflect.DeepEqual(values, want) {
			t.Errorf("button %d values = %v, want %v", b, values, want)
		}
	}
}

func TestScanPicksUpRenamedTracks(t *testing.T) {
	f := newFixture(t, testProject())

	f.host.SetTrack(20, sim.Track{Name: "Pad (8)"})
	f.session.OnProjectLoad()

	if got := f.session.Tracks().Groups()[7]; !reflect.DeepEqual(got, []int{20}) {
		t.Errorf("group 8 = %v, want [20]", got)
	}
}

func TestArmToggleRoundTrip(t *testing.T) {
	f := newFixture(t, fullProject())
	tr := f.session.Tracks()

	for g := 0; g < NumGroups; g++ {
		before := f.host.Snapshot()

		tr.ToggleArm(g)
		if !tr.Armed(g) {
			t.Errorf("group %d not armed after first toggle", g+1)
		}
		for _, track := range tr.Masters()[g] {
			if !f.host.Track(track).Armed {
				t.Errorf("group %d master %d not armed", g+1, track)
			}
		}
		if !f.session.Hardware().Lit(ArmButton(g)) {
			t.Errorf("group %d arm LED off", g+1)
		}

		tr.ToggleArm(g)
		if tr.Armed(g) {
			t.Errorf("group %d still armed after second toggle", g+1)
		}
		after := f.host.Snapshot()
		for i := range before.Tracks {
			if before.Tracks[i].Armed != after.Tracks[i].Armed {
				t.Errorf("group %d: track %d armed = %t, want %t", g+1, i, after.Tracks[i].Armed, before.Tracks[i].Armed)
			}
		}
	}
}

func TestArmOnlyTogglesWhenDifferent(t *testing.T) {
	f := newFixture(t, testProject())

	f.host.SetTrack(2, sim.Track{Name: "Drums [1]", Armed: true})
	f.host.ResetCalls()

	f.session.Tracks().ToggleArm(0)

	if n := f.host.CountCalls("ArmTrack"); n != 0 {
		t.Errorf("ArmTrack called %d times for an already armed master, want 0", n)
	}
	if !f.host.Track(2).Armed {
		t.Error("master should stay armed")
	}
}

func TestMuteToggle(t *testing.T) {
	f := newFixture(t, testProject())
	tr := f.session.Tracks()

	tr.ToggleMute(0)
	if !tr.Muted(0) {
		t.Fatal("group 1 should be muted")
	}
	for _, track := range []int{1, 2, 3} {
		if !f.host.Track(track).Muted {
			t.Errorf("track %d not muted", track)
		}
	}
	if f.session.Hardware().Lit(MuteButton(0)) {
		t.Error("mute LED should be off while the group is muted")
	}

	tr.ToggleMute(0)
	if tr.Muted(0) {
		t.Fatal("group 1 should be unmuted")
	}
	for _, track := range []int{1, 2, 3} {
		if f.host.Track(track).Muted {
			t.Errorf("track %d still muted", track)
		}
	}
	if !f.session.Hardware().Lit(MuteButton(0)) {
		t.Error("mute LED should be lit while the group is audible")
	}
}

func TestMutingAllButOneMarksItSoloed(t *testing.T) {
	f := newFixture(t, fullProject())
	tr := f.session.Tracks()

	for g := 0; g < NumGroups-1; g++ {
		if tr.Soloed() != noGroup {
			t.Fatalf("soloed = %d before muting group %d", tr.Soloed(), g+1)
		}
		tr.ToggleMute(g)
	}

	if tr.Soloed() != NumGroups-1 {
		t.Errorf("soloed = %d, want %d", tr.Soloed(), NumGroups-1)
	}
	if !f.session.Hardware().Lit(SoloButton(NumGroups - 1)) {
		t.Error("solo LED of the remaining group should be lit")
	}
	if n := f.host.CountCalls("SoloTrack"); n != 0 {
		t.Errorf("derived solo issued %d SoloTrack calls, want 0", n)
	}

	// Muting anything drops the derived solo first
	tr.ToggleMute(0)
	if tr.Soloed() != noGroup {
		t.Errorf("soloed = %d after unmuting group 1, want none", tr.Soloed())
	}
	if f.session.Hardware().Lit(SoloButton(NumGroups - 1)) {
		t.Error("solo LED should be cleared")
	}
}

func TestSoloToggleTwiceRestores(t *testing.T) {
	f := newFixture(t, fullProject())
	tr := f.session.Tracks()

	tr.ToggleSolo(2)
	if tr.Soloed() != 2 {
		t.Fatalf("soloed = %d, want 2", tr.Soloed())
	}
	if tr.MutedCount() != NumGroups-1 {
		t.Errorf("muted groups = %d, want %d", tr.MutedCount(), NumGroups-1)
	}
	if !f.host.Track(6).Solo {
		t.Error("first member of group 3 should be solo")
	}

	tr.ToggleSolo(2)
	if tr.Soloed() != noGroup {
		t.Errorf("soloed = %d, want none", tr.Soloed())
	}
	if tr.MutedCount() != 0 {
		t.Errorf("muted groups = %d, want 0", tr.MutedCount())
	}
	st := f.host.Snapshot()
	for i, track := range st.Tracks {
		if track.Muted || track.Solo {
			t.Errorf("track %d muted=%t solo=%t, want neither", i, track.Muted, track.Solo)
		}
	}
	for g := 0; g < NumGroups; g++ {
		if !f.session.Hardware().Lit(MuteButton(g)) {
			t.Errorf("mute LED of group %d should be lit", g+1)
		}
	}
	if f.session.Hardware().Lit(SoloButton(2)) {
		t.Error("solo LED should be off")
	}
}

func TestSoloKeepsWholeGroupAudible(t *testing.T) {
	f := newFixture(t, testProject())

	f.session.Tracks().ToggleSolo(0)

	for _, track := range []int{1, 2, 3} {
		if f.host.Track(track).Muted {
			t.Errorf("group member %d muted, want audible", track)
		}
	}
	for _, track := range []int{4, 5, 6} {
		if !f.host.Track(track).Muted {
			t.Errorf("track %d of another group should be muted by the solo", track)
		}
	}
	// one settle delay between solo and member fix-up
	if got := f.sleeps.sleeps[len(f.sleeps.sleeps)-1]; got != DefaultSettleDelay {
		t.Errorf("last sleep = %v, want %v", got, DefaultSettleDelay)
	}
}

func TestSoloSwitchesGroups(t *testing.T) {
	f := newFixture(t, testProject())
	tr := f.session.Tracks()
	hw := f.session.Hardware()

	tr.ToggleSolo(0)
	tr.ToggleSolo(1)

	if tr.Soloed() != 1 {
		t.Fatalf("soloed = %d, want 1", tr.Soloed())
	}
	if hw.Lit(SoloButton(0)) {
		t.Error("previous solo LED should be off")
	}
	if !hw.Lit(SoloButton(1)) || !hw.Lit(MuteButton(1)) {
		t.Error("solo and mute LEDs of group 2 should be lit")
	}
	if hw.Lit(MuteButton(0)) {
		t.Error("group 1 mute LED should be off")
	}
	if !f.host.Track(4).Solo || f.host.Track(1).Solo {
		t.Error("solo should have moved to track 4")
	}
}

func TestUnsoloRetriesOnce(t *testing.T) {
	f := newFixture(t, testProject())
	tr := f.session.Tracks()

	tr.ToggleSolo(0)
	f.host.DropSoloToggles(1)
	f.host.ResetCalls()

	tr.ToggleSolo(0)

	if n := f.host.CountCalls("SoloTrack(1)"); n != 2 {
		t.Errorf("SoloTrack called %d times, want 2", n)
	}
	if f.host.Track(1).Solo {
		t.Error("retry should have cleared the solo")
	}
}

// The retry is best effort: a host that swallows both toggles stays soloed
// while the script has already moved on.
func TestUnsoloRetryIsBestEffort(t *testing.T) {
	f := newFixture(t, testProject())
	tr := f.session.Tracks()

	tr.ToggleSolo(0)
	f.host.DropSoloToggles(2)
	f.host.ResetCalls()

	tr.ToggleSolo(0)

	if n := f.host.CountCalls("SoloTrack"); n != 2 {
		t.Errorf("SoloTrack called %d times, want 2", n)
	}
	if tr.Soloed() != noGroup {
		t.Errorf("script soloed = %d, want none", tr.Soloed())
	}
}

func TestSoloEmptyGroupIgnored(t *testing.T) {
	f := newFixture(t, testProject())

	f.session.Tracks().ToggleSolo(7)

	if f.session.Tracks().Soloed() != noGroup {
		t.Error("empty group should not solo")
	}
	if len(f.host.Calls()) != 0 {
		t.Errorf("host calls = %v, want none", f.host.Calls())
	}
}

func TestVolumeFader(t *testing.T) {
	f := newFixture(t, testProject())

	tests := []struct {
		value uint8
		want  float64
	}{
		{127, 0.7976},
		{0, -0.0024},
	}
	for _, tt := range tests {
		f.session.Tracks().Volume(TracksFirstFader+2, tt.value)

		got := f.host.Track(6).Volume
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("value %d: volume = %v, want %v", tt.value, got, tt.want)
		}
		// the group member that is not a master keeps its volume
		if v := f.host.Track(7).Volume; v != 0.8 {
			t.Errorf("value %d: member volume = %v, want untouched 0.8", tt.value, v)
		}
	}
}

func TestOutOfRangeGroupsIgnored(t *testing.T) {
	host := sim.New()
	host.LoadProject(testProject())
	s := New(host, nil, Options{Sleep: noSleep})
	tr := s.Tracks()

	// not scanned yet: every group is out of range
	tr.ToggleArm(0)
	tr.ToggleMute(0)
	tr.ToggleSolo(0)
	tr.Volume(TracksFirstFader, 127)
	if len(host.Calls()) != 0 {
		t.Fatalf("host calls before scan = %v, want none", host.Calls())
	}

	s.OnProjectLoad()
	tr.ToggleArm(-1)
	tr.ToggleMute(NumGroups)
	tr.ToggleSolo(NumGroups + 3)
	tr.Volume(TracksLastFader+1, 127)
	if len(host.Calls()) != 0 {
		t.Errorf("host calls = %v, want none", host.Calls())
	}
}
