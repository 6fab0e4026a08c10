package script

import "nano-kontrol/daw"

// TransportControl handles play/stop/record and the seek buttons
type TransportControl struct {
	lights    *Lights
	transport daw.Transport
}

func NewTransportControl(lights *Lights, transport daw.Transport) *TransportControl {
	return &TransportControl{lights: lights, transport: transport}
}

func (tc *TransportControl) Play() {
	tc.lights.Update(PlayButton, true)
	tc.transport.Start()
}

func (tc *TransportControl) Stop() {
	tc.lights.Update(PlayButton, false)
	tc.lights.Update(RecordButton, false)
	tc.lights.Update(StopButton, true)
	tc.transport.Stop()
}

func (tc *TransportControl) Record() {
	tc.lights.Update(RecordButton, true)
	tc.transport.Record()
}

func (tc *TransportControl) RewindStart() {
	tc.transport.Rewind(daw.SeekStart)
	tc.lights.Update(RewindButton, true)
}

func (tc *TransportControl) RewindEnd() {
	tc.transport.Rewind(daw.SeekStop)
	tc.lights.Update(RewindButton, false)
}

func (tc *TransportControl) FastForwardStart() {
	tc.transport.FastForward(daw.SeekStart)
	tc.lights.Update(ForwardButton, true)
}

func (tc *TransportControl) FastForwardEnd() {
	tc.transport.FastForward(daw.SeekStop)
	tc.lights.Update(ForwardButton, false)
}
