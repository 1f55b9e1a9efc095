//go:build windows

package watcher

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/gentlemanautomaton/winproc"
	"github.com/scjalliance/attentive/counter"
	"github.com/scjalliance/attentive/winwindow"
)

const (
	// defaultPollInterval is how often the foreground window is polled.
	// Polling backstops the native event hooks, which can miss changes.
	defaultPollInterval = 2 * time.Second

	// defaultSweepInterval is how often tracked process metadata is
	// refreshed.
	defaultSweepInterval = 2 * time.Second

	// defaultResolveTimeout bounds the resolution of a window's owner.
	defaultResolveTimeout = 5 * time.Second

	// hookCloseTimeout bounds the teardown of each native event hook
	// during shutdown.
	hookCloseTimeout = 3 * time.Second

	// hookQueueSize is the capacity of the event queue between the
	// native hook threads and the dispatcher.
	hookQueueSize = 64
)

// Service is a process attention service. It watches the local set of
// window-owning processes, tracks which one holds the foreground, and
// keeps the registry's records current.
type Service struct {
	registry   *Registry
	controller *Controller
	resolver   ownerResolver
	logger     Logger

	pollInterval  time.Duration
	sweepInterval time.Duration

	events    chan hookEvent
	hookDrops counter.Counter

	// lastForeground is touched only by the dispatcher goroutine.
	lastForeground winwindow.Handle

	opMutex  sync.Mutex
	shutdown chan<- struct{} // Close to signal shutdown
	stopped  <-chan struct{} // Closed when shutdown completed
}

// NewService returns a new process attention service that feeds the
// given registry and uses the given controller for window restoration
// at shutdown.
func NewService(registry *Registry, controller *Controller, logger Logger) *Service {
	return &Service{
		registry:      registry,
		controller:    controller,
		resolver:      ownerResolver{timeout: defaultResolveTimeout},
		logger:        logger,
		pollInterval:  defaultPollInterval,
		sweepInterval: defaultSweepInterval,
		events:        make(chan hookEvent, hookQueueSize),
	}
}

// Start starts the service if it isn't running.
func (s *Service) Start() error {
	s.opMutex.Lock()
	defer s.opMutex.Unlock()

	if s.shutdown != nil {
		return errors.New("the watcher service is already running")
	}

	// The hooks go in before discovery so that windows appearing during
	// discovery are queued rather than missed.
	hooks, err := s.installHooks()
	if err != nil {
		return err
	}

	shutdown := make(chan struct{})
	s.shutdown = shutdown

	stopped := make(chan struct{})
	s.stopped = stopped

	go s.run(hooks, shutdown, stopped)

	return nil
}

// Stop stops the service if it's running.
func (s *Service) Stop() {
	s.opMutex.Lock()
	defer s.opMutex.Unlock()

	if s.shutdown == nil {
		return
	}

	close(s.shutdown)
	s.shutdown = nil

	<-s.stopped
	s.stopped = nil
}

// HookEventDrops returns the number of native events that were dropped
// because the event queue was full.
func (s *Service) HookEventDrops() uint64 {
	return s.hookDrops.Value()
}

func (s *Service) run(hooks []namedHook, shutdown <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)

	found := discoverWindows(s.registry, s.resolver)
	s.log("Discovered %d running processes", found)

	// Capture whatever holds the foreground right now.
	s.post(hookEvent{kind: foregroundEvent})

	var wg sync.WaitGroup
	wg.Add(3)

	// Dispatch native events and poll prompts
	go func() {
		defer wg.Done()

		for {
			select {
			case <-shutdown:
				return
			case ev := <-s.events:
				s.dispatch(ev)
			}
		}
	}()

	// Poll the foreground on an interval
	go func() {
		defer wg.Done()

		pollTimer := time.NewTicker(s.pollInterval)
		defer pollTimer.Stop()

		for {
			select {
			case <-shutdown:
				return
			case <-pollTimer.C:
				s.post(hookEvent{kind: foregroundEvent})
			}
		}
	}()

	// Refresh process metadata on an interval
	go func() {
		defer wg.Done()

		sweepTimer := time.NewTicker(s.sweepInterval)
		defer sweepTimer.Stop()

		for {
			select {
			case <-shutdown:
				return
			case <-sweepTimer.C:
				s.sweep()
			}
		}
	}()

	// Wait for all three goroutines to shutdown
	wg.Wait()

	// Tear down the native hooks, each within its own time bound
	var hg sync.WaitGroup
	for _, h := range hooks {
		hg.Add(1)
		go func(h namedHook) {
			defer hg.Done()
			if err := h.hook.Close(hookCloseTimeout); err != nil {
				s.logHook(h.name, "Teardown failed: %v", err)
			}
		}(h)
	}
	hg.Wait()

	// Put back any windows hidden by an unresumed suspension
	if s.controller != nil {
		s.controller.restoreCachedWindows()
	}
}

func (s *Service) dispatch(ev hookEvent) {
	switch ev.kind {
	case windowShownEvent:
		s.handleWindowShown(ev.window)
	case foregroundEvent:
		s.handleForeground(ev.window)
	}
}

// sweep refreshes the metadata of every tracked process and removes
// records whose exit went unobserved. The work is spread across a
// bounded set of goroutines and touches only metadata; it never alters
// the foreground or suspends anything.
func (s *Service) sweep() {
	records := s.registry.All()
	if len(records) == 0 {
		return
	}

	live := liveProcesses()

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for _, rec := range records {
		if live != nil && !live[rec.ID()] {
			// The exit was missed, most likely because the process
			// reference lacked synchronize rights.
			s.registry.handleExit(rec.ID())
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(rec *Record) {
			defer wg.Done()
			defer func() { <-sem }()
			refreshWindows(rec)
		}(rec)
	}
	wg.Wait()
}

// liveProcesses returns the set of process IDs currently running, or
// nil if the system process list cannot be read.
func liveProcesses() map[PID]bool {
	procs, err := winproc.List()
	if err != nil {
		return nil
	}
	live := make(map[PID]bool, len(procs))
	for _, proc := range procs {
		live[PID(proc.ID)] = true
	}
	return live
}

// refreshWindows brings a record's window titles and visibility up to
// date. A window that can no longer be queried keeps its last known
// title and is recorded as not visible; windows only leave the set
// when the whole record is removed.
func refreshWindows(rec *Record) {
	for _, wid := range rec.windowIDs() {
		h := winwindow.Handle(wid)
		if !winwindow.IsWindow(h) {
			rec.setWindowVisible(wid, false)
			continue
		}
		rec.attachWindow(wid, Window{
			Title:   winwindow.Title(h),
			Visible: winwindow.Visible(h),
		})
	}
}

func (s *Service) log(format string, v ...interface{}) {
	if s.logger == nil {
		return
	}
	s.logger.Log(ServiceEvent{
		Msg: fmt.Sprintf(format, v...),
	})
}

func (s *Service) debug(format string, v ...interface{}) {
	if s.logger == nil {
		return
	}
	s.logger.Log(ServiceEvent{
		Msg:   fmt.Sprintf(format, v...),
		Debug: true,
	})
}

func (s *Service) logHook(source, format string, v ...interface{}) {
	if s.logger == nil {
		return
	}
	s.logger.Log(HookEvent{
		Source: source,
		Msg:    fmt.Sprintf(format, v...),
	})
}
