package upload

import "testing"

func TestTracker_HappyPath(t *testing.T) {
	tr := NewTracker()
	for _, next := range []Status{StatusValidating, StatusReady, StatusUploading, StatusProcessing, StatusSuccess} {
		if err := tr.To(next); err != nil {
			t.Fatalf("To(%s): %v", next, err)
		}
	}
	if tr.Status() != StatusSuccess {
		t.Errorf("status = %s, want success", tr.Status())
	}
}

func TestTracker_CommitOnlyFromReady(t *testing.T) {
	tr := NewTracker()
	if tr.CanCommit() {
		t.Error("idle tracker must not permit commit")
	}
	mustTo(t, tr, StatusValidating)
	if tr.CanCommit() {
		t.Error("validating tracker must not permit commit")
	}
	mustTo(t, tr, StatusReady)
	if !tr.CanCommit() {
		t.Error("ready tracker must permit commit")
	}
	mustTo(t, tr, StatusUploading)
	if tr.CanCommit() {
		t.Error("uploading tracker must not permit commit")
	}
}

func TestTracker_ErrorReachableFromEachPhase(t *testing.T) {
	for _, from := range []Status{StatusValidating, StatusUploading, StatusProcessing} {
		tr := &Tracker{status: from}
		if err := tr.To(StatusError); err != nil {
			t.Errorf("%s -> error rejected: %v", from, err)
		}
	}
}

func TestTracker_IllegalTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
	}{
		{StatusIdle, StatusUploading},
		{StatusIdle, StatusSuccess},
		{StatusValidating, StatusUploading},
		{StatusUploading, StatusSuccess},
		{StatusSuccess, StatusUploading},
	}
	for _, tt := range tests {
		tr := &Tracker{status: tt.from}
		if err := tr.To(tt.to); err == nil {
			t.Errorf("%s -> %s: expected rejection", tt.from, tt.to)
		}
	}
}

func TestTracker_ErrorRecovery(t *testing.T) {
	tr := &Tracker{status: StatusError}
	if err := tr.To(StatusValidating); err != nil {
		t.Fatalf("error -> validating rejected: %v", err)
	}
}

func TestTracker_Reset(t *testing.T) {
	tr := &Tracker{status: StatusProcessing}
	tr.Reset()
	if tr.Status() != StatusIdle {
		t.Errorf("status after reset = %s, want idle", tr.Status())
	}
}

func mustTo(t *testing.T, tr *Tracker, next Status) {
	t.Helper()
	if err := tr.To(next); err != nil {
		t.Fatalf("To(%s): %v", next, err)
	}
}
