package script

import (
	"math"
	"testing"

	"nano-kontrol/daw"
	"nano-kontrol/daw/sim"
)

func TestInitResetsLEDs(t *testing.T) {
	f := newFixture(t, testProject())
	hw := f.session.Hardware()

	for _, b := range []uint8{RewindButton, ForwardButton, StopButton, RecordButton, PlayButton} {
		if _, ok := f.leds.last(b); !ok {
			t.Errorf("button %d never written on init", b)
		}
		if hw.Lit(b) {
			t.Errorf("button %d lit on init", b)
		}
	}
	// new projects start in pattern mode
	if !hw.Lit(ModeButton) {
		t.Error("mode LED should be lit in pattern mode")
	}
}

func TestKnobsAreNotHandled(t *testing.T) {
	f := newFixture(t, testProject())

	for k := uint8(FirstKnob); k <= LastKnob; k++ {
		if f.press(k) {
			t.Errorf("knob %d handled, want passed through", k)
		}
	}
	if calls := f.host.Calls(); len(calls) != 0 {
		t.Errorf("calls = %v, want none", calls)
	}
}

func TestFaderDispatch(t *testing.T) {
	f := newFixture(t, testProject())

	if !f.session.OnControlChange(Event{Control: TracksFirstFader + 1, Value: 127}) {
		t.Fatal("fader not handled")
	}
	if v := f.host.Track(4).Volume; math.Abs(v-FaderGain(127)) > 1e-9 {
		t.Errorf("group 2 master volume = %v, want %v", v, FaderGain(127))
	}
}

func TestTrackButtonDispatch(t *testing.T) {
	f := newFixture(t, testProject())
	tr := f.session.Tracks()

	if !f.release(ArmButton(1)) {
		t.Error("track button release should be handled")
	}
	if tr.Armed(1) {
		t.Error("release must not toggle")
	}

	f.press(ArmButton(1))
	if !tr.Armed(1) {
		t.Error("R button should arm group 2")
	}
	f.press(MuteButton(2))
	if !tr.Muted(2) {
		t.Error("M button should mute group 3")
	}
	f.press(SoloButton(0))
	if tr.Soloed() != 0 {
		t.Errorf("S button soloed %d, want 0", tr.Soloed())
	}
}

func TestLEDChannels(t *testing.T) {
	host := sim.New()
	rec := &ccRecorder{}
	s := New(host, rec, Options{TrackChannel: 3, TransportChannel: 10, Sleep: noSleep})

	s.OnControlChange(Event{Control: PlayButton, Value: 127})
	if got, _ := rec.last(PlayButton); got.channel != 9 || got.value != 127 {
		t.Errorf("play LED = %+v, want channel 9 value 127", got)
	}

	s.OnProjectLoad()
	if got, _ := rec.last(TracksFirstButton); got.channel != 2 || got.value != 0 {
		t.Errorf("track LED = %+v, want channel 2 value 0", got)
	}
}

func TestTransportButtons(t *testing.T) {
	f := newFixture(t, testProject())
	hw := f.session.Hardware()

	f.tap(PlayButton)
	if !f.host.IsPlaying() || !hw.Lit(PlayButton) {
		t.Error("play should start playback and stay lit")
	}

	f.tap(RecordButton)
	if !f.host.IsRecording() || !hw.Lit(RecordButton) {
		t.Error("record should arm recording and stay lit")
	}

	f.tap(StopButton)
	if f.host.IsPlaying() || hw.Lit(PlayButton) || hw.Lit(RecordButton) {
		t.Error("stop should stop and clear play/record LEDs")
	}
	if !hw.Lit(StopButton) {
		t.Error("stop LED should stay lit")
	}

	f.press(RewindButton)
	if f.host.Snapshot().Rewind != daw.SeekStart || !hw.Lit(RewindButton) {
		t.Error("rewind should seek while held")
	}
	f.release(RewindButton)
	if f.host.Snapshot().Rewind != daw.SeekStop || hw.Lit(RewindButton) {
		t.Error("rewind should stop on release")
	}

	f.press(ForwardButton)
	if f.host.Snapshot().Forward != daw.SeekStart || !hw.Lit(ForwardButton) {
		t.Error("forward should seek while held")
	}
	f.release(ForwardButton)
	if f.host.Snapshot().Forward != daw.SeekStop || hw.Lit(ForwardButton) {
		t.Error("forward should stop on release")
	}
}

func TestUnassignedButtonLightsWhileHeld(t *testing.T) {
	f := newFixture(t, testProject())
	hw := f.session.Hardware()

	const spare = 50
	f.press(spare)
	if !hw.Lit(spare) {
		t.Error("spare button should light while held")
	}
	f.release(spare)
	if hw.Lit(spare) {
		t.Error("spare button should go dark on release")
	}
}

func TestModeJogsPatterns(t *testing.T) {
	f := newFixture(t, testProject())

	f.press(ModeButton)
	f.tap(PrevTrackButton)
	f.tap(PrevTrackButton)
	f.tap(NextTrackButton)
	f.release(ModeButton)

	st := f.host.Snapshot()
	if st.Jogs[daw.JogPattern] != 1 {
		t.Errorf("pattern jog = %d, want 1", st.Jogs[daw.JogPattern])
	}
	if st.Jogs[daw.JogTrack] != 0 {
		t.Errorf("track jog = %d, want 0", st.Jogs[daw.JogTrack])
	}
	if st.Loop != daw.LoopPattern {
		t.Error("loop mode must not toggle after a jog")
	}
}

func TestModeTapTogglesLoopMode(t *testing.T) {
	f := newFixture(t, testProject())

	f.tap(ModeButton)
	st := f.host.Snapshot()
	if st.Loop != daw.LoopSong {
		t.Fatalf("loop = %d, want song", st.Loop)
	}
	if st.Windows[daw.WindowChannelRack] {
		t.Error("channel rack should be hidden in song mode")
	}

	f.tap(ModeButton)
	st = f.host.Snapshot()
	if st.Loop != daw.LoopPattern || !st.Windows[daw.WindowChannelRack] {
		t.Error("pattern mode should show the channel rack")
	}
}

func TestTrackNavigation(t *testing.T) {
	f := newFixture(t, testProject())

	f.tap(PrevTrackButton)
	f.tap(PrevTrackButton)
	f.tap(NextTrackButton)

	if got := f.host.Snapshot().Jogs[daw.JogTrack]; got != 1 {
		t.Errorf("track jog = %d, want 1", got)
	}
}

func TestTrackChordRescans(t *testing.T) {
	f := newFixture(t, testProject())
	f.host.SetTrack(30, sim.Track{Name: "Choir (8)"})
	scans := len(f.sleeps.sleeps)

	f.press(PrevTrackButton)
	f.press(NextTrackButton)
	f.release(PrevTrackButton)
	f.release(NextTrackButton)

	if got := f.session.Tracks().Groups()[7]; len(got) != 1 || got[0] != 30 {
		t.Errorf("group 8 = %v, want [30]", got)
	}
	if len(f.sleeps.sleeps)-scans != 4 {
		t.Errorf("rescan slept %d times, want 4", len(f.sleeps.sleeps)-scans)
	}
}

func TestSelectionThroughButtons(t *testing.T) {
	f := newFixture(t, testProject())
	f.host.SetSongPos(2000)

	f.press(MarkerSetButton)
	if !f.session.Selection().Active() {
		t.Fatal("SET should start a selection")
	}

	// forward switches to one-bar steps while selecting, without seeking
	f.press(ForwardButton)
	if f.session.Selection().Step() != OneBarInTicks {
		t.Errorf("step = %d, want %d", f.session.Selection().Step(), OneBarInTicks)
	}
	if f.host.Snapshot().Forward != daw.SeekStop {
		t.Error("forward must not seek while selecting")
	}
	f.tap(MarkerNextButton)
	f.release(ForwardButton)
	if f.session.Selection().Step() != FourBarsInTicks {
		t.Error("step should reset when forward is released")
	}

	f.release(MarkerSetButton)
	st := f.host.Snapshot()
	if st.SelStart != 1536 || st.SelEnd != 1920 {
		t.Errorf("selection = [%d,%d), want [1536,1920)", st.SelStart, st.SelEnd)
	}
}

func TestTrackButtonsMoveSelectionWhileSelecting(t *testing.T) {
	f := newFixture(t, testProject())
	f.host.SetSelection(1536, 3072)

	f.press(MarkerSetButton)
	f.tap(PrevTrackButton)
	f.release(MarkerSetButton)

	st := f.host.Snapshot()
	if st.SelStart != 3072 || st.SelEnd != 4608 {
		t.Errorf("selection = [%d,%d), want [3072,4608)", st.SelStart, st.SelEnd)
	}
	if st.Jogs[daw.JogTrack] != 0 {
		t.Error("track buttons must not navigate while selecting")
	}
}

func TestOnRefresh(t *testing.T) {
	f := newFixture(t, testProject())
	f.host.SetPlaying(true)

	f.session.OnRefresh(1)
	if f.session.Hardware().Lit(PlayButton) {
		t.Error("unrelated refresh flags must not redraw LEDs")
	}

	f.session.OnRefresh(DirtyLEDs | 4)
	if !f.session.Hardware().Lit(PlayButton) {
		t.Error("play LED should follow the transport")
	}
}

func TestStatus(t *testing.T) {
	f := newFixture(t, testProject())
	f.press(MuteButton(1))
	f.press(ArmButton(3))
	f.press(MarkerSetButton)

	st := f.session.Status()
	if !st.Muted[1] || !st.Armed[3] {
		t.Errorf("status muted=%v armed=%v", st.Muted, st.Armed)
	}
	if st.Soloed != noGroup {
		t.Errorf("soloed = %d, want none", st.Soloed)
	}
	if !st.Selecting || st.Step != FourBarsInTicks {
		t.Errorf("selecting=%t step=%d", st.Selecting, st.Step)
	}
	if st.LEDs[MuteButton(1)] {
		t.Error("status LEDs should mirror the muted group")
	}
}

func TestDeviceConnectedRedrawsGroupLEDs(t *testing.T) {
	f := newFixture(t, testProject())
	f.press(ArmButton(2))
	f.press(MuteButton(1))
	f.leds.sent = nil
	sleeps := len(f.sleeps.sleeps)

	f.session.OnDeviceConnected()

	if n := len(f.sleeps.sleeps) - sleeps; n != 4 {
		t.Errorf("connect slept %d times, want a 4-step scan flash", n)
	}
	tests := []struct {
		name    string
		control uint8
		want    uint8
	}{
		{"armed group", ArmButton(2), 127},
		{"unarmed group", ArmButton(0), 0},
		{"muted group", MuteButton(1), 0},
		{"audible group", MuteButton(0), 127},
		{"empty group", MuteButton(7), 0},
		{"no solo", SoloButton(0), 0},
	}
	for _, tt := range tests {
		got, ok := f.leds.last(tt.control)
		if !ok || got.value != tt.want {
			t.Errorf("%s: LED %d = %d (sent %t), want %d", tt.name, tt.control, got.value, ok, tt.want)
		}
	}
	if _, ok := f.leds.last(PlayButton); !ok {
		t.Error("transport LEDs should be redrawn")
	}
}

func TestDeviceConnectedRedrawsSolo(t *testing.T) {
	f := newFixture(t, testProject())
	f.press(SoloButton(4))
	f.leds.sent = nil

	f.session.OnDeviceConnected()

	if got, _ := f.leds.last(SoloButton(4)); got.value != 127 {
		t.Error("soloed group should be lit after reconnect")
	}
	if got, _ := f.leds.last(MuteButton(4)); got.value != 127 {
		t.Error("soloed group is audible, its mute LED should be lit")
	}
	if got, _ := f.leds.last(MuteButton(0)); got.value != 0 {
		t.Error("groups silenced by the solo should be dark")
	}
}
