//go:build windows

package watcher

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/gentlemanautomaton/winproc"
	"golang.org/x/sys/windows"
)

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procSuspendThread = modkernel32.NewProc("SuspendThread")
	procResumeThread  = modkernel32.NewProc("ResumeThread")
)

// threadSuspendResume is the thread access right needed to suspend or
// resume a thread.
const threadSuspendResume = 0x0002

// SuspendProcessTree suspends every thread of the process with the
// given ID and of all of its descendants. Descendants are frozen
// before the root so that the root never runs against a half-frozen
// child; a descendant that cannot be frozen is tolerated, a root that
// cannot be frozen is an error.
func SuspendProcessTree(id PID) error {
	tree := processTree(id)
	for i := len(tree) - 1; i > 0; i-- {
		suspendProcess(tree[i])
	}
	return suspendProcess(id)
}

// ResumeProcessTree resumes every thread of the process with the given
// ID and of all of its descendants. The root is thawed first.
func ResumeProcessTree(id PID) error {
	tree := processTree(id)
	if err := resumeProcess(id); err != nil {
		return err
	}
	for _, child := range tree[1:] {
		resumeProcess(child)
	}
	return nil
}

// processTree returns the given process and all of its descendants,
// discovered through parent process links. The root is always the
// first entry.
func processTree(root PID) []PID {
	procs, err := winproc.List()
	if err != nil {
		return []PID{root}
	}

	children := make(map[PID][]PID, len(procs))
	for _, proc := range procs {
		parent := PID(proc.ParentID)
		children[parent] = append(children[parent], PID(proc.ID))
	}

	tree := []PID{root}
	visited := map[PID]bool{root: true}
	for i := 0; i < len(tree); i++ {
		for _, child := range children[tree[i]] {
			if !visited[child] {
				visited[child] = true
				tree = append(tree, child)
			}
		}
	}
	return tree
}

// threadsOf returns the IDs of all threads owned by the given process.
func threadsOf(id PID) ([]uint32, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPTHREAD, 0)
	if err != nil {
		return nil, err
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ThreadEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	var threads []uint32
	if err := windows.Thread32First(snapshot, &entry); err != nil {
		if err == windows.ERROR_NO_MORE_FILES {
			return nil, nil
		}
		return nil, err
	}
	for {
		if entry.OwnerProcessID == uint32(id) {
			threads = append(threads, entry.ThreadID)
		}
		if err := windows.Thread32Next(snapshot, &entry); err != nil {
			if err == windows.ERROR_NO_MORE_FILES {
				break
			}
			return threads, err
		}
	}
	return threads, nil
}

func suspendProcess(id PID) error {
	threads, err := threadsOf(id)
	if err != nil {
		return err
	}
	if len(threads) == 0 {
		return fmt.Errorf("process %s has no threads", id)
	}

	var first error
	for _, tid := range threads {
		if err := suspendThread(tid); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func resumeProcess(id PID) error {
	threads, err := threadsOf(id)
	if err != nil {
		return err
	}
	if len(threads) == 0 {
		return fmt.Errorf("process %s has no threads", id)
	}

	var first error
	for _, tid := range threads {
		if err := resumeThread(tid); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func suspendThread(tid uint32) error {
	h, err := windows.OpenThread(threadSuspendResume, false, tid)
	if err != nil {
		return err
	}
	defer windows.CloseHandle(h)

	r0, _, e0 := syscall.Syscall(procSuspendThread.Addr(), 1, uintptr(h), 0, 0)
	if int32(r0) == -1 {
		return fmt.Errorf("could not suspend thread %d: %s", tid, e0)
	}
	return nil
}

func resumeThread(tid uint32) error {
	h, err := windows.OpenThread(threadSuspendResume, false, tid)
	if err != nil {
		return err
	}
	defer windows.CloseHandle(h)

	r0, _, e0 := syscall.Syscall(procResumeThread.Addr(), 1, uintptr(h), 0, 0)
	if int32(r0) == -1 {
		return fmt.Errorf("could not resume thread %d: %s", tid, e0)
	}
	return nil
}
