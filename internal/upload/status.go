package upload

import (
	"fmt"
	"sync"
)

// Status is the UI-observable state of an upload attempt.
type Status int

const (
	StatusIdle Status = iota
	StatusValidating
	StatusReady // validated file selected, commit permitted
	StatusUploading
	StatusProcessing
	StatusSuccess
	StatusError
)

var statusNames = map[Status]string{
	StatusIdle:       "idle",
	StatusValidating: "validating",
	StatusReady:      "ready",
	StatusUploading:  "uploading",
	StatusProcessing: "processing",
	StatusSuccess:    "success",
	StatusError:      "error",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// transitions enumerates the legal moves of the upload state machine:
// idle -> validating -> (error | ready); ready -> uploading -> processing
// -> (success | error). Error is recoverable by selecting another file.
var transitions = map[Status]map[Status]bool{
	StatusIdle:       {StatusValidating: true},
	StatusValidating: {StatusReady: true, StatusError: true},
	StatusReady:      {StatusUploading: true, StatusValidating: true, StatusIdle: true},
	StatusUploading:  {StatusProcessing: true, StatusError: true},
	StatusProcessing: {StatusSuccess: true, StatusError: true},
	StatusError:      {StatusIdle: true, StatusValidating: true},
	StatusSuccess:    {StatusIdle: true},
}

// Tracker holds the current upload status and enforces legal transitions.
type Tracker struct {
	mu     sync.Mutex
	status Status
}

func NewTracker() *Tracker {
	return &Tracker{status: StatusIdle}
}

// Status returns the current status.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// To moves the tracker to the next status, rejecting illegal transitions.
func (t *Tracker) To(next Status) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !transitions[t.status][next] {
		return fmt.Errorf("invalid upload status transition: %s -> %s", t.status, next)
	}
	t.status = next
	return nil
}

// CanCommit reports whether the commit sequence may be invoked. Only a
// validated, non-error idle state permits committing.
func (t *Tracker) CanCommit() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status == StatusReady
}

// Reset discards the selected file and returns to the initial state.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = StatusIdle
}
