//go:build windows

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/boltdb/bolt"
	"github.com/scjalliance/attentive/profile"
	"github.com/scjalliance/attentive/provider/boltprov"
	"github.com/scjalliance/attentive/provider/cacheprov"
	"github.com/scjalliance/attentive/provider/fsprov"
	"github.com/scjalliance/attentive/provider/memprov"
	"github.com/scjalliance/attentive/trayui"
	"github.com/scjalliance/attentive/watcher"
	"golang.org/x/sys/windows/svc/eventlog"
)

const (
	notifyBuffer    = 64
	statInterval    = time.Minute
	profileInterval = 5 * time.Minute
)

func watch(ctx context.Context, interactive bool, conf WatchConfig) {
	if !interactive {
		runServiceHandler(conf, nil)
		return
	}

	prepareConsole(false)

	logger := cliLogger{Debug: conf.Debug}

	stack, err := assembleWatch(conf, logger)
	if err != nil {
		fmt.Printf("Failed to prepare watcher: %v\n", err)
		os.Exit(1)
	}

	// Let the tray exit action end the run
	ctx, exit := context.WithCancel(ctx)
	defer exit()

	if conf.Tray {
		ui, err := newWatchUI(stack, exit)
		if err != nil {
			fmt.Printf("Failed to create tray icon: %v\n", err)
			os.Exit(1)
		}
		defer ui.Close()
		stack.ui = ui
	}

	if err := stack.Start(); err != nil {
		fmt.Printf("Failed to start watcher: %v\n", err)
		os.Exit(1)
	}

	<-ctx.Done()

	stack.Stop()
}

// newProfileProvider prepares the profile source selected by conf. The
// returned provider caches reads until its next invalidation.
func newProfileProvider(conf WatchConfig) (*cacheprov.Provider, error) {
	switch {
	case conf.Database != "":
		db, err := bolt.Open(conf.Database, 0666, &bolt.Options{Timeout: 10 * time.Second})
		if err != nil {
			return nil, fmt.Errorf("unable to open profile database \"%s\": %v", conf.Database, err)
		}
		return cacheprov.New(boltprov.New(db)), nil
	case conf.Profiles != "":
		return cacheprov.New(fsprov.New(conf.Profiles)), nil
	default:
		return cacheprov.New(memprov.New()), nil
	}
}

// profileFlags adapts a profile provider to the watcher's per-process
// flag lookups.
type profileFlags struct {
	provider profile.Provider
	logger   watcher.Logger
}

// FlagsFor returns the merged behavior flags of the profiles matching
// the process.
func (f profileFlags) FlagsFor(info watcher.Info) profile.Flags {
	profiles, err := f.provider.Profiles()
	if err != nil {
		if f.logger != nil {
			f.logger.Log(watcher.ServiceEvent{
				Msg:   fmt.Sprintf("Unable to read profiles: %v", err),
				Debug: true,
			})
		}
		return profile.Flags{}
	}
	return profiles.Match(info.Name, info.Path, info.Platform.String()).Flags()
}

// watchStack holds the assembled collaborators for a watch run.
type watchStack struct {
	provider *cacheprov.Provider
	registry *watcher.Registry
	control  *watcher.Controller
	service  *watcher.Service
	power    *watcher.PowerManager
	overlay  *watcher.Overlay
	stats    *StatManager
	logger   watcher.Logger

	ui *trayui.UI // optional, assigned before Start

	cancelNotes func()
	shutdown    chan struct{}
	stopped     chan struct{}
}

// assembleWatch builds the watcher collaborators for conf.
func assembleWatch(conf WatchConfig, logger watcher.Logger) (*watchStack, error) {
	provider, err := newProfileProvider(conf)
	if err != nil {
		return nil, err
	}

	flags := profileFlags{provider: provider, logger: logger}

	registry := watcher.NewRegistry(watcher.SystemHost(), logger)
	control := watcher.NewController(registry, logger)
	service := watcher.NewService(registry, control, logger)
	power := watcher.NewPowerManager(registry, control, flags, logger)
	overlay := watcher.NewOverlay(registry, control, flags, logger)

	var stats *StatManager
	if conf.StatHatKey != "" {
		stats = NewStatManager(NewStatHatRecipient(watcher.ServiceName, conf.StatHatKey), registry, service)
	}

	return &watchStack{
		provider: provider,
		registry: registry,
		control:  control,
		service:  service,
		power:    power,
		overlay:  overlay,
		stats:    stats,
		logger:   logger,
	}, nil
}

// Start starts the watcher service and the bookkeeping goroutine that
// fans out notifications and flushes statistics.
func (s *watchStack) Start() error {
	if err := s.service.Start(); err != nil {
		return err
	}

	notes, cancel := s.registry.Subscribe(notifyBuffer)
	s.cancelNotes = cancel
	s.shutdown = make(chan struct{})
	s.stopped = make(chan struct{})

	go s.run(notes)

	return nil
}

func (s *watchStack) run(notes <-chan watcher.Notification) {
	defer close(s.stopped)

	statTicker := time.NewTicker(statInterval)
	defer statTicker.Stop()

	refreshTicker := time.NewTicker(profileInterval)
	defer refreshTicker.Stop()

	for {
		select {
		case note, ok := <-notes:
			if !ok {
				return
			}
			s.stats.Handle(note)
			if s.ui != nil {
				s.ui.Handle(note)
			}
		case <-statTicker.C:
			if err := s.stats.Flush(); err != nil {
				s.debug("Stat delivery failed: %v", err)
			}
		case <-refreshTicker.C:
			s.provider.Invalidate()
		case <-s.shutdown:
			return
		}
	}
}

// Stop stops the watcher and releases its collaborators.
func (s *watchStack) Stop() {
	close(s.shutdown)
	<-s.stopped
	s.cancelNotes()
	s.overlay.Stop()
	s.service.Stop()
	s.registry.Close()
	s.provider.Close()
}

func (s *watchStack) debug(format string, v ...interface{}) {
	if s.logger == nil {
		return
	}
	s.logger.Log(watcher.ServiceEvent{
		Msg:   fmt.Sprintf(format, v...),
		Debug: true,
	})
}

// newWatchUI creates a tray icon bound to the watcher.
func newWatchUI(stack *watchStack, exit func()) (*trayui.UI, error) {
	return trayui.New(programIcon(), ProgramName, Version, stack.registry, trayui.Actions{
		SuspendForeground: func() {
			if rec, ok := stack.registry.Foreground(); ok {
				stack.control.Suspend(rec.ID())
			}
		},
		ResumeAll: func() {
			stack.control.ResumeAll()
		},
		Exit: exit,
	})
}

func runServiceHandler(conf WatchConfig, confErr error) {
	elog, err := eventlog.Open(watcher.ServiceName)
	if err != nil {
		return
	}
	defer elog.Close()

	elog.Info(watcher.ServiceEventID, fmt.Sprintf("Starting %s service version %s.", watcher.ServiceName, Version))
	defer func() {
		elog.Info(watcher.ServiceEventID, fmt.Sprintf("Stopped %s service version %s.", watcher.ServiceName, Version))
	}()

	logger := svcLogger{elog: elog, debug: conf.Debug}

	handler := Handler{
		Name:    watcher.ServiceName,
		Conf:    conf,
		ConfErr: confErr,
		Logger:  logger,
	}

	if err := handler.Run(); err != nil {
		elog.Error(watcher.ServiceEventID, fmt.Sprintf("Error running service: %v", err))
	}
}
