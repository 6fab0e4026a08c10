package script

import "nano-kontrol/daw"

// Navigation jogs through mixer tracks. Holding both track buttons asks for a
// group rescan.
type Navigation struct {
	transport daw.Transport
	onChord   func()

	prevHeld bool
	nextHeld bool
}

func NewNavigation(transport daw.Transport, onChord func()) *Navigation {
	return &Navigation{transport: transport, onChord: onChord}
}

func (n *Navigation) checkChord() {
	if n.prevHeld && n.nextHeld && n.onChord != nil {
		n.onChord()
	}
}

func (n *Navigation) PrevTrack() {
	n.transport.Jog(daw.JogTrack, 1)
	n.prevHeld = true
	n.checkChord()
}

func (n *Navigation) NextTrack() {
	n.transport.Jog(daw.JogTrack, -1)
	n.nextHeld = true
	n.checkChord()
}

func (n *Navigation) ReleasePrevTrack() { n.prevHeld = false }
func (n *Navigation) ReleaseNextTrack() { n.nextHeld = false }
