package watcher

import "errors"

// ErrWindowGone is returned by window operations when the window no
// longer exists. Callers treat it as success for hide and show; a
// window that has closed needs neither.
var ErrWindowGone = errors.New("window no longer exists")
