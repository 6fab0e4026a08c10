package midi

import (
	"context"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2/drivers"

	"nano-kontrol/debug"
)

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

func (t DeviceEventType) String() string {
	if t == DeviceConnected {
		return "connected"
	}
	return "disconnected"
}

// DeviceManager handles hot-plug detection of nanoKONTROL2 controllers
type DeviceManager struct {
	pattern     string
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration

	// list and open are swapped out in tests
	list func() (ports, error)
	open func(id string, in drivers.In, out drivers.Out) (Controller, error)
}

// NewDeviceManager creates a device manager watching ports matching pattern
func NewDeviceManager(pattern string) *DeviceManager {
	return &DeviceManager{
		pattern:     pattern,
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
		list:        queryPorts,
		open: func(id string, in drivers.In, out drivers.Out) (Controller, error) {
			return NewNanoKontrol2(id, in, out)
		},
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Controllers returns a snapshot of connected controllers
func (dm *DeviceManager) Controllers() map[string]Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	snapshot := make(map[string]Controller, len(dm.controllers))
	for k, v := range dm.controllers {
		snapshot[k] = v
	}
	return snapshot
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	p, err := dm.list()
	if err != nil {
		// User needs to run: sudo killall coreaudiod midiserver
		debug.Warn("devices", "skipping scan: %v", err)
		return
	}

	outNames := make([]string, len(p.out))
	for i, op := range p.out {
		outNames[i] = op.String()
	}

	seenIDs := make(map[string]bool)
	for _, in := range p.in {
		id := in.String()
		if !MatchesPattern(id, dm.pattern) {
			continue
		}
		seenIDs[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		var out drivers.Out
		if j := pairOutput(id, outNames, dm.pattern); j >= 0 {
			out = p.out[j]
		}
		c, err := dm.open(id, in, out)
		if err != nil {
			debug.Warn("devices", "open %s: %v", id, err)
			continue
		}

		dm.mu.Lock()
		dm.controllers[id] = c
		dm.mu.Unlock()
		debug.Log("devices", "connected %s", id)

		dm.events <- DeviceEvent{Type: DeviceConnected, Controller: c, ID: id}
	}

	dm.mu.Lock()
	var toRemove []string
	for id := range dm.controllers {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		dm.controllers[id].Close()
		delete(dm.controllers, id)
		debug.Log("devices", "disconnected %s", id)
	}
	dm.mu.Unlock()

	for _, id := range toRemove {
		dm.events <- DeviceEvent{Type: DeviceDisconnected, ID: id}
	}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}
