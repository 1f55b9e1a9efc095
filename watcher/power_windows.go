//go:build windows

package watcher

import (
	"fmt"
	"sync"

	"github.com/scjalliance/attentive/profile"
)

// FlagSource supplies behavioral flags for tracked processes.
type FlagSource interface {
	FlagsFor(info Info) profile.Flags
}

// PowerManager reacts to system sleep and wake. Going into sleep it
// suspends every tracked process whose profile asks for it; on wake it
// resumes exactly the processes it suspended, leaving processes
// suspended by anyone else alone.
type PowerManager struct {
	registry   *Registry
	controller *Controller
	flags      FlagSource
	logger     Logger

	mutex sync.Mutex
	slept map[PID]struct{}
}

// NewPowerManager returns a new power manager.
func NewPowerManager(registry *Registry, controller *Controller, flags FlagSource, logger Logger) *PowerManager {
	return &PowerManager{
		registry:   registry,
		controller: controller,
		flags:      flags,
		logger:     logger,
		slept:      make(map[PID]struct{}),
	}
}

// OnSystemSuspend is called when the system is about to sleep.
func (m *PowerManager) OnSystemSuspend() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, rec := range m.registry.All() {
		if rec.Suspended() {
			// Suspended by someone else; not ours to resume on wake.
			continue
		}
		if m.flags == nil || !m.flags.FlagsFor(rec.Info()).SuspendOnSleep {
			continue
		}
		if m.controller.Suspend(rec.ID()) {
			m.slept[rec.ID()] = struct{}{}
			m.logProcess(rec, "Suspended for system sleep")
		}
	}
}

// OnSystemResume is called when the system wakes.
func (m *PowerManager) OnSystemResume() {
	m.mutex.Lock()
	slept := m.slept
	m.slept = make(map[PID]struct{})
	m.mutex.Unlock()

	for id := range slept {
		rec, ok := m.registry.Get(id)
		if !ok {
			// Exited while the system slept; Resume drops its cache.
			m.controller.Resume(id)
			continue
		}
		if m.controller.Resume(id) {
			m.logProcess(rec, "Resumed after system sleep")
		}
	}
}

func (m *PowerManager) logProcess(rec *Record, format string, v ...interface{}) {
	if m.logger == nil {
		return
	}
	m.logger.Log(ProcessEvent{
		ProcessName: rec.Name(),
		Token:       rec.Token(),
		Msg:         fmt.Sprintf(format, v...),
	})
}
