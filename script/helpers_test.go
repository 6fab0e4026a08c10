package script

import (
	"fmt"
	"testing"
	"time"

	"nano-kontrol/daw/sim"
)

type sentCC struct {
	channel, control, value uint8
}

type ccRecorder struct {
	sent []sentCC
}

func (r *ccRecorder) SendCC(channel, control, value uint8) error {
	r.sent = append(r.sent, sentCC{channel, control, value})
	return nil
}

func (r *ccRecorder) last(control uint8) (sentCC, bool) {
	for i := len(r.sent) - 1; i >= 0; i-- {
		if r.sent[i].control == control {
			return r.sent[i], true
		}
	}
	return sentCC{}, false
}

type sleepRecorder struct {
	sleeps []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.sleeps = append(s.sleeps, d)
}

// testProject has three tracks in group 1 (one master), two in group 2,
// and a master plus a member for groups 3 to 7. Group 8 is empty.
func testProject() []string {
	names := []string{
		"Master",
		"Kick (1)",
		"Drums [1]",
		"Snare (1)",
		"Bass [2]",
		"Bass DI (2)",
	}
	for g := 3; g <= 7; g++ {
		names = append(names, fmt.Sprintf("Bus %d [%d]", g, g))
		names = append(names, fmt.Sprintf("Inst %d (%d)", g, g))
	}
	return names
}

// fullProject fills all eight groups
func fullProject() []string {
	return append(testProject(), "Bus 8 [8]")
}

type fixture struct {
	session *Session
	host    *sim.Host
	leds    *ccRecorder
	sleeps  *sleepRecorder
}

func newFixture(t *testing.T, names []string) *fixture {
	t.Helper()

	host := sim.New()
	host.LoadProject(names)

	f := &fixture{host: host, leds: &ccRecorder{}, sleeps: &sleepRecorder{}}
	opts := DefaultOptions()
	opts.Sleep = f.sleeps.sleep
	f.session = New(host, f.leds, opts)
	f.session.OnProjectLoad()
	host.ResetCalls()
	return f
}

func (f *fixture) press(control uint8) bool {
	return f.session.OnControlChange(Event{Control: control, Value: 127})
}

func (f *fixture) release(control uint8) bool {
	return f.session.OnControlChange(Event{Control: control, Value: 0})
}

func (f *fixture) tap(control uint8) {
	f.press(control)
	f.release(control)
}

func noSleep(time.Duration) {}
