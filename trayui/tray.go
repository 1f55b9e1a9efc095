//go:build windows

package trayui

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/lxn/walk"
)

type trayData struct {
	Window     *walk.MainWindow
	Tray       *walk.NotifyIcon
	Completion <-chan int
	Err        error
}

// Actions are the commands a user can issue through the tray menu.
// Handlers are invoked on their own goroutines, never on the UI
// thread.
type Actions struct {
	SuspendForeground func()
	ResumeAll         func()
	Exit              func()
}

// Tray is a watcher system tray agent.
type Tray struct {
	icon    *walk.Icon
	name    string
	version string
	actions Actions

	mutex   sync.RWMutex
	stop    context.CancelFunc
	stopped <-chan struct{}
	states  chan<- State
	notices chan<- Notice
}

// NewTray returns a new system tray instance.
func NewTray(icon *walk.Icon, name, version string, actions Actions) *Tray {
	return &Tray{
		icon:    icon,
		name:    name,
		version: version,
		actions: actions,
	}
}

// Start causes the tray to begin operation.
func (t *Tray) Start() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.stop != nil {
		return errors.New("the tray instance is already running")
	}

	// Create the tray objects and start the tray on a dedicated thread
	startup := make(chan trayData)
	go t.run(startup)

	// Collect information about the tray once it's been initialized
	data := <-startup
	if data.Err != nil {
		return data.Err
	}

	// Prepare a context to stop the tray on request
	ctx, stop := context.WithCancel(context.Background())
	stopped := make(chan struct{})

	// Prepare input channels
	states := make(chan State, 128)
	notices := make(chan Notice, 128)

	// Start a manager that updates the tray in response to input
	go t.manage(ctx, data.Window, data.Tray, data.Completion, stopped, states, notices)

	t.stop = stop
	t.stopped = stopped
	t.states = states
	t.notices = notices

	return nil
}

// Stop instructs the tray to cease operation and waits for it to
// close.
func (t *Tray) Stop() error {
	t.mutex.RLock()
	stop, stopped := t.stop, t.stopped
	t.mutex.RUnlock()

	if stop == nil {
		return errors.New("the tray instance is not running")
	}

	stop()

	<-stopped

	return nil
}

// Update updates the state of the tray.
func (t *Tray) Update(state State) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	if t.states != nil {
		select {
		case t.states <- state:
		default:
		}
	}
}

// Notify causes the tray to send a notification.
func (t *Tray) Notify(notice Notice) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	if t.notices != nil {
		select {
		case t.notices <- notice:
		default:
		}
	}
}

func (t *Tray) run(startup chan<- trayData) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	mw, ni, err := createSystemTray(t.icon)
	if err != nil {
		startup <- trayData{Err: err}
		close(startup)
		return
	}
	defer ni.Dispose()
	defer mw.Dispose()

	completion := make(chan int)
	defer close(completion)

	startup <- trayData{
		Window:     mw,
		Tray:       ni,
		Completion: completion,
	}
	close(startup)

	result := mw.Run()

	t.mutex.Lock()
	t.stop = nil
	t.stopped = nil
	close(t.states)
	t.states = nil
	close(t.notices)
	t.notices = nil
	t.mutex.Unlock()

	completion <- result
}

func (t *Tray) manage(ctx context.Context, window *walk.MainWindow, ni *walk.NotifyIcon, completion <-chan int, stopped chan<- struct{}, states <-chan State, notices <-chan Notice) {
	defer close(stopped)
	for {
		select {
		case <-completion:
			return
		case state := <-states:
			summary := state.Summary()
			info := fmt.Sprintf("%s %s", t.name, t.version)
			window.Synchronize(func() {
				ni.SetToolTip(summary)

				actions := ni.ContextMenu().Actions()
				actions.Clear()
				{
					action := walk.NewAction()
					action.SetText(info)
					action.SetEnabled(false)
					actions.Add(action)
				}
				actions.Add(walk.NewSeparatorAction())
				{
					action := walk.NewAction()
					text := "Suspend foreground app"
					if state.Foreground != nil {
						text = fmt.Sprintf("Suspend %s", state.Foreground.Name)
					}
					action.SetText(text)
					action.SetEnabled(state.Foreground != nil)
					action.Triggered().Attach(func() {
						if t.actions.SuspendForeground != nil {
							go t.actions.SuspendForeground()
						}
					})
					actions.Add(action)
				}
				{
					action := walk.NewAction()
					action.SetText(fmt.Sprintf("Resume all (%d)", state.Suspended))
					action.SetEnabled(state.Suspended > 0)
					action.Triggered().Attach(func() {
						if t.actions.ResumeAll != nil {
							go t.actions.ResumeAll()
						}
					})
					actions.Add(action)
				}
				actions.Add(walk.NewSeparatorAction())
				{
					action := walk.NewAction()
					action.SetText("Exit")
					action.Triggered().Attach(func() {
						if t.actions.Exit != nil {
							go t.actions.Exit()
						}
					})
					actions.Add(action)
				}
			})
		case notice := <-notices:
			window.Synchronize(func() {
				ni.ShowCustom(
					notice.Title,
					notice.Message,
					t.icon,
				)
			})
		case <-ctx.Done():
			// Here we use the synchronize function to ensure that our call to Close
			// pushes the WM_CLOSE message onto the message queue of the correct
			// thread. If we call Close() directly it could fail silently and
			// deadlock.
			window.Synchronize(func() {
				window.Close()
			})
			<-completion
			return
		}
	}
}

func createSystemTray(icon *walk.Icon) (mw *walk.MainWindow, ni *walk.NotifyIcon, err error) {
	mw, err = walk.NewMainWindow()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create window: %v", err)
	}

	ni, err = createNotifyIcon(mw, icon)
	if err != nil {
		mw.Dispose()
		return nil, nil, fmt.Errorf("failed to create system tray: %v", err)
	}

	return mw, ni, nil
}

func createNotifyIcon(form walk.Form, icon *walk.Icon) (*walk.NotifyIcon, error) {
	ni, err := walk.NewNotifyIcon(form)
	if err != nil {
		return nil, fmt.Errorf("creation failed: %v", err)
	}

	if err := ni.SetIcon(icon); err != nil {
		ni.Dispose()
		return nil, fmt.Errorf("unable to set icon: %v", err)
	}

	if err := ni.SetVisible(true); err != nil {
		ni.Dispose()
		return nil, fmt.Errorf("unable to make the system tray visible: %v", err)
	}

	return ni, nil
}
