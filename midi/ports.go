package midi

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// DefaultPortPattern matches the nanoKONTROL2 port names on every platform
const DefaultPortPattern = "nanokontrol2"

// ErrPortsTimeout is returned when the MIDI backend does not answer
var ErrPortsTimeout = errors.New("midi port query timed out")

const portsTimeout = 3 * time.Second

type ports struct {
	in  []drivers.In
	out []drivers.Out
}

// queryPorts lists the system ports. CoreMIDI can hang, so the query runs
// with a timeout.
func queryPorts() (ports, error) {
	ch := make(chan ports, 1)
	go func() {
		ch <- ports{in: gomidi.GetInPorts(), out: gomidi.GetOutPorts()}
	}()

	select {
	case p := <-ch:
		return p, nil
	case <-time.After(portsTimeout):
		return ports{}, ErrPortsTimeout
	}
}

// PortNames lists input and output port names
func PortNames() (in, out []string, err error) {
	p, err := queryPorts()
	if err != nil {
		return nil, nil, err
	}
	for _, port := range p.in {
		in = append(in, port.String())
	}
	for _, port := range p.out {
		out = append(out, port.String())
	}
	return in, out, nil
}

// MatchesPattern does a case-insensitive substring match, ignoring spaces
func MatchesPattern(name, pattern string) bool {
	if pattern == "" {
		pattern = DefaultPortPattern
	}
	norm := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), " ", "")
	}
	return strings.Contains(norm(name), norm(pattern))
}

// pairOutput picks the output belonging to an input port: the one with the
// same name, else the first one matching pattern. Returns -1 if none.
func pairOutput(inName string, outNames []string, pattern string) int {
	for i, name := range outNames {
		if strings.EqualFold(name, inName) {
			return i
		}
	}
	for i, name := range outNames {
		if MatchesPattern(name, pattern) {
			return i
		}
	}
	return -1
}

// Open connects to the first controller matching pattern
func Open(pattern string) (*NanoKontrol2, error) {
	p, err := queryPorts()
	if err != nil {
		return nil, err
	}

	outNames := make([]string, len(p.out))
	for i, op := range p.out {
		outNames[i] = op.String()
	}

	for _, in := range p.in {
		if !MatchesPattern(in.String(), pattern) {
			continue
		}
		var out drivers.Out
		if j := pairOutput(in.String(), outNames, pattern); j >= 0 {
			out = p.out[j]
		}
		return NewNanoKontrol2(in.String(), in, out)
	}
	return nil, errors.Errorf("no MIDI input matching %q", pattern)
}
