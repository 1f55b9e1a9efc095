//go:build windows

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/scjalliance/attentive/watcher"
	"golang.org/x/sys/windows/svc"
)

// Commands that we accept.
const (
	cmdsAccepted = svc.AcceptStop | svc.AcceptShutdown | svc.AcceptPowerEvent | svc.AcceptSessionChange
)

// Power broadcast types delivered with svc.PowerEvent requests.
const (
	pbtAPMSuspend         = 4
	pbtAPMResumeSuspend   = 7
	pbtAPMResumeAutomatic = 18
)

// Session notification types delivered with svc.SessionChange requests.
const (
	wtsSessionLock   = 7
	wtsSessionUnlock = 8
)

// lockScreenTarget names the focus target used for workstation lock
// handling.
const lockScreenTarget = "lock-screen"

// Handler is a windows service handler.
type Handler struct {
	Name    string
	Conf    WatchConfig
	ConfErr error
	Logger  watcher.Logger
}

// Run causes the service to run under the given name until it is
// instructed to stop by the operating system.
func (h Handler) Run() error {
	return svc.Run(h.Name, h)
}

// Execute performs service request processing for windows.
func (h Handler) Execute(args []string, requests <-chan svc.ChangeRequest, changes chan<- svc.Status) (ssec bool, errno uint32) {
	// In all circumstances, indicate that we're stopping when we exit
	defer func() {
		changes <- svc.Status{State: svc.StopPending}
	}()

	// Track progress
	var checkpoint uint32

	// Indicate to the system that we're starting up
	checkpoint = sendProgress(changes, checkpoint)

	h.log("OS Arguments: %#v", os.Args)

	// Check for errors in the arguments provided by the OS
	if h.ConfErr != nil {
		h.log("Invalid OS Arguments: %v", h.ConfErr)
		return false, 1
	}

	// Parse arguments provided by the service manager
	if len(args) > 0 {
		h.Name = args[0]
	}
	if len(args) > 1 {
		args = args[1:]
		h.log("Service Arguments: %#v", args)
		app := App()
		serviceCmd, serviceConf := ServiceCommand(app)
		command, err := app.Parse(args)
		if err != nil {
			h.log("Invalid Service Arguments: %v", err)
			return false, 1
		} else if command != serviceCmd.FullCommand() {
			h.log("Invalid Service Command: %s", command)
			return false, 1
		}
		if serviceConf.Profiles != "" {
			h.Conf.Profiles = serviceConf.Profiles
		}
		if serviceConf.Database != "" {
			h.Conf.Database = serviceConf.Database
		}
		if serviceConf.StatHatKey != "" {
			h.Conf.StatHatKey = serviceConf.StatHatKey
		}
		if serviceConf.Debug {
			h.Conf.Debug = true
		}
	}
	checkpoint = sendProgress(changes, checkpoint)

	// Prepare the watcher collaborators
	stack, err := assembleWatch(h.Conf, h.Logger)
	if err != nil {
		h.log("Failed to prepare watcher: %v", err)
		return false, 1
	}
	checkpoint = sendProgress(changes, checkpoint)

	// Start the watcher
	if err := stack.Start(); err != nil {
		h.log("Failed to start watcher: %v.", err)
		return false, 1
	}

	// Stop the watcher when we exit
	defer stack.Stop()

	// Switch to the running state
	changes <- svc.Status{State: svc.Running, Accepts: cmdsAccepted}

	// Main service loop
	for {
		req := <-requests
		switch req.Cmd {
		case svc.Interrogate:
			changes <- req.CurrentStatus
			// Testing deadlock from https://code.google.com/p/winsvc/issues/detail?id=4
			time.Sleep(100 * time.Millisecond)
			changes <- req.CurrentStatus
		case svc.Stop, svc.Shutdown:
			changes <- svc.Status{State: svc.StopPending}
			h.log("Service shutting down.")
			return false, 0
		case svc.PowerEvent:
			switch req.EventType {
			case pbtAPMSuspend:
				h.debug("System is suspending.")
				stack.power.OnSystemSuspend()
			case pbtAPMResumeSuspend, pbtAPMResumeAutomatic:
				h.debug("System has resumed.")
				stack.power.OnSystemResume()
			}
		case svc.SessionChange:
			switch req.EventType {
			case wtsSessionLock:
				stack.overlay.FocusGained(lockScreenTarget)
			case wtsSessionUnlock:
				stack.overlay.FocusLost(lockScreenTarget)
			}
		}
	}
}

func (h *Handler) log(format string, v ...interface{}) {
	if h.Logger == nil {
		return
	}
	h.Logger.Log(watcher.ServiceEvent{
		Msg: fmt.Sprintf(format, v...),
	})
}

func (h *Handler) debug(format string, v ...interface{}) {
	if h.Logger == nil {
		return
	}
	h.Logger.Log(watcher.ServiceEvent{
		Msg:   fmt.Sprintf(format, v...),
		Debug: true,
	})
}

func sendProgress(changes chan<- svc.Status, checkpoint uint32) uint32 {
	changes <- svc.Status{State: svc.StartPending, CheckPoint: checkpoint}
	return checkpoint + 1
}
