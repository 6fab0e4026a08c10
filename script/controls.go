package script

import (
	"nano-kontrol/daw"
	"nano-kontrol/debug"
)

// Controls routes transport-section buttons to their controllers depending
// on which modifiers are held
type Controls struct {
	lights     *Lights
	selection  *Selection
	transport  *TransportControl
	navigation *Navigation
	pattern    *PatternControl
	loopMode   *LoopModeControl
}

// NewControls wires the transport section; onScanChord runs when both track
// buttons are held together
func NewControls(hw *Hardware, host daw.Host, onScanChord func()) *Controls {
	lights := NewLights(hw, host)
	c := &Controls{
		lights:     lights,
		selection:  NewSelection(host, host),
		transport:  NewTransportControl(lights, host),
		navigation: NewNavigation(host, onScanChord),
		pattern:    NewPatternControl(host),
		loopMode:   NewLoopModeControl(host, host),
	}
	c.UpdateButtonStates(true)
	return c
}

// Selection exposes the selection state machine
func (c *Controls) Selection() *Selection {
	return c.selection
}

func (c *Controls) UpdateButtonStates(init bool) {
	c.lights.UpdateTransport(init)
}

// PressStart handles a button going down
func (c *Controls) PressStart(button uint8) {
	debug.Log("press", "start button=%d", button)

	switch button {
	case PlayButton:
		c.transport.Play()
	case StopButton:
		c.transport.Stop()
	case RecordButton:
		c.transport.Record()
	case ModeButton:
		c.pattern.PressMode()
	case PrevTrackButton:
		switch {
		case c.pattern.ModeHeld():
			c.pattern.NextPattern()
		case c.selection.Active():
			c.selection.MoveForward()
		default:
			c.navigation.PrevTrack()
		}
	case NextTrackButton:
		switch {
		case c.pattern.ModeHeld():
			c.pattern.PrevPattern()
		case c.selection.Active():
			c.selection.MoveBackward()
		default:
			c.navigation.NextTrack()
		}
	case RewindButton:
		c.transport.RewindStart()
	case ForwardButton:
		if c.selection.Active() {
			c.selection.SetAccuracy(true)
		} else {
			c.transport.FastForwardStart()
		}
		c.lights.Update(button, true)
	case MarkerPrevButton:
		c.selection.PrevMarker()
	case MarkerNextButton:
		c.selection.NextMarker()
	case MarkerSetButton:
		c.selection.Start()
	default:
		c.lights.Update(button, true)
	}
}

// PressEnd handles a button coming back up
func (c *Controls) PressEnd(button uint8) {
	debug.Log("press", "end button=%d", button)

	switch button {
	case PrevTrackButton:
		c.navigation.ReleasePrevTrack()
	case NextTrackButton:
		c.navigation.ReleaseNextTrack()
	case MarkerPrevButton:
		c.selection.ReleasePrevMarker()
	case MarkerNextButton:
		c.selection.ReleaseNextMarker()
	case MarkerSetButton:
		c.selection.End()
	case RewindButton:
		c.transport.RewindEnd()
	case ForwardButton:
		c.transport.FastForwardEnd()
		c.selection.SetAccuracy(false)
	case ModeButton:
		if c.pattern.ReleaseMode() {
			c.loopMode.Toggle()
		}
	default:
		if !toggleModeButtons[button] {
			c.lights.Update(button, false)
		}
	}
}
