//go:build windows

package watcher

import (
	"github.com/gentlemanautomaton/winproc"
	"github.com/gentlemanautomaton/winproc/processaccess"
)

// refRights are the access rights requested when opening a process
// reference, in decreasing order of preference. Synchronize is needed
// to observe process exit; without it the process is still tracked but
// its exit goes unobserved until a sweep notices.
var refRights = []processaccess.Rights{
	processaccess.QueryLimitedInformation | processaccess.Synchronize,
	processaccess.QueryLimitedInformation,
}

// systemHost resolves processes through the local operating system.
type systemHost struct{}

// SystemHost returns a host backed by the local operating system.
func SystemHost() Host {
	return systemHost{}
}

// Acquire resolves the identity of the process with the given ID and
// opens a reference to it. The identity is captured from the system
// process list and verified against the opened reference, so an ID
// that has been recycled into a different process is reported as
// exited rather than misattributed.
func (systemHost) Acquire(id PID) (ProcessData, ProcessRef, bool, error) {
	match := func(p winproc.Process) bool {
		return p.ID == winproc.ID(id)
	}

	procs, err := winproc.List(
		winproc.Include(match),
		winproc.CollectCommands,
		winproc.CollectUsers,
		winproc.CollectTimes,
	)
	if err != nil {
		return ProcessData{}, nil, false, err
	}
	if len(procs) == 0 {
		// Already exited.
		return ProcessData{}, nil, false, nil
	}
	data := procs[0]

	ref, err := openProcess(data.ID)
	if err != nil {
		return ProcessData{}, nil, false, err
	}

	uid, err := ref.UniqueID()
	if err != nil {
		ref.Close()
		return ProcessData{}, nil, false, err
	}
	if data.UniqueID() != uid {
		// The process ID was recycled into a new process between the
		// listing and the open. Treat the process we saw as exited.
		ref.Close()
		return ProcessData{}, nil, false, nil
	}

	return ProcessData{
		ID:       PID(data.ID),
		ParentID: PID(data.ParentID),
		Name:     data.Name,
		Path:     data.Path,
		Token:    newToken(data),
		User:     data.User.String(),
		Creation: data.Times.Creation,
	}, ref, true, nil
}

// openProcess opens a reference to the process with the highest level
// of privilege that we can get.
func openProcess(id winproc.ID) (ref *winproc.Ref, err error) {
	for _, rights := range refRights {
		ref, err = winproc.Open(id, rights)
		if err == nil {
			return
		}
	}
	return
}
