package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Arionyxx/PupClips/internal/model"
)

// fakeStore records storage operations and fails on demand.
type fakeStore struct {
	uploads    []string
	deletes    []string
	failUpload map[string]bool // by key suffix match
}

func (f *fakeStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	for suffix := range f.failUpload {
		if strings.HasSuffix(key, suffix) {
			return errors.New("storage unavailable")
		}
	}
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

// fakeCreator is a VideoCreator that can be told to fail.
type fakeCreator struct {
	err      error
	created  int
	lastPath string
	lastURL  *string
	lastCap  string
	lastDur  int
}

func (f *fakeCreator) Create(ctx context.Context, userID, storagePath string, posterURL *string, caption string, durationSeconds int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created++
	f.lastPath = storagePath
	f.lastURL = posterURL
	f.lastCap = caption
	f.lastDur = durationSeconds
	return "video-123", nil
}

func testInput() CommitInput {
	return CommitInput{
		UserID:   "user-1",
		Filename: "clip.mp4",
		Video:    strings.NewReader("video-bytes"),
		Metadata: model.VideoMetadata{Duration: 12.6, Width: 1080, Height: 1920, Size: 1024, Type: "video/mp4"},
		Poster:   []byte("jpeg-bytes"),
		Caption:  "  good dog  ",
	}
}

func newTestUploadService(store *fakeStore, creator *fakeCreator) *UploadService {
	return NewUploadService(store, creator, NewCacheService(""), zerolog.Nop())
}

func TestCommit_Success(t *testing.T) {
	store := &fakeStore{}
	creator := &fakeCreator{}
	svc := newTestUploadService(store, creator)

	res := svc.Commit(context.Background(), "user-1", testInput())

	if !res.Success {
		t.Fatalf("commit failed: %s", res.Error)
	}
	if res.VideoID != "video-123" {
		t.Errorf("videoId = %q, want video-123", res.VideoID)
	}
	if len(store.uploads) != 2 {
		t.Fatalf("uploads = %v, want video + poster", store.uploads)
	}
	if len(store.deletes) != 0 {
		t.Errorf("unexpected deletes: %v", store.deletes)
	}
	if creator.lastCap != "good dog" {
		t.Errorf("caption = %q, want trimmed", creator.lastCap)
	}
	if creator.lastDur != 13 {
		t.Errorf("duration = %d, want 13 (rounded)", creator.lastDur)
	}
	if creator.lastURL == nil || !strings.Contains(*creator.lastURL, "-poster.jpg") {
		t.Errorf("posterUrl = %v, want resolved poster URL", creator.lastURL)
	}
}

func TestCommit_VideoUploadFailureAborts(t *testing.T) {
	store := &fakeStore{failUpload: map[string]bool{".mp4": true}}
	creator := &fakeCreator{}
	svc := newTestUploadService(store, creator)

	res := svc.Commit(context.Background(), "user-1", testInput())

	if res.Success {
		t.Fatal("expected failure")
	}
	if creator.created != 0 {
		t.Error("record created despite aborted upload")
	}
	if len(store.uploads) != 0 || len(store.deletes) != 0 {
		t.Errorf("side effects after abort: uploads=%v deletes=%v", store.uploads, store.deletes)
	}
}

func TestCommit_PosterFailureIsNonFatal(t *testing.T) {
	store := &fakeStore{failUpload: map[string]bool{"-poster.jpg": true}}
	creator := &fakeCreator{}
	svc := newTestUploadService(store, creator)

	res := svc.Commit(context.Background(), "user-1", testInput())

	if !res.Success {
		t.Fatalf("commit failed: %s", res.Error)
	}
	if creator.lastURL != nil {
		t.Errorf("posterUrl = %q, want nil after poster failure", *creator.lastURL)
	}
	if len(store.uploads) != 1 {
		t.Errorf("uploads = %v, want just the video", store.uploads)
	}
}

func TestCommit_InsertFailureCompensatesExactlyOnce(t *testing.T) {
	store := &fakeStore{}
	creator := &fakeCreator{err: errors.New("insert failed")}
	svc := newTestUploadService(store, creator)

	res := svc.Commit(context.Background(), "user-1", testInput())

	if res.Success {
		t.Fatal("expected failure result")
	}
	if len(store.deletes) != 1 {
		t.Fatalf("deletes = %v, want exactly one compensating delete", store.deletes)
	}
	if !strings.HasPrefix(store.deletes[0], "user-1/") || !strings.HasSuffix(store.deletes[0], ".mp4") {
		t.Errorf("compensated wrong object: %s", store.deletes[0])
	}
}

func TestCommit_IdentityMismatchIsUnauthorized(t *testing.T) {
	store := &fakeStore{}
	creator := &fakeCreator{}
	svc := newTestUploadService(store, creator)

	res := svc.Commit(context.Background(), "someone-else", testInput())

	if res.Success {
		t.Fatal("expected failure result")
	}
	if res.Error != UnauthorizedError {
		t.Errorf("error = %q, want %q surfaced distinctly", res.Error, UnauthorizedError)
	}
	if creator.created != 0 {
		t.Error("record created despite identity mismatch")
	}
	// The object lives under the claimed owner's namespace, not the
	// caller's, so the compensating delete must refuse it.
	if len(store.deletes) != 0 {
		t.Errorf("deleted object outside caller namespace: %v", store.deletes)
	}
}

func TestCommit_InvalidCaptionRejectedBeforeAnyWrite(t *testing.T) {
	store := &fakeStore{}
	creator := &fakeCreator{}
	svc := newTestUploadService(store, creator)

	in := testInput()
	in.Caption = "   "
	res := svc.Commit(context.Background(), "user-1", in)

	if res.Success {
		t.Fatal("expected failure result")
	}
	if len(store.uploads) != 0 {
		t.Errorf("storage written despite invalid caption: %v", store.uploads)
	}
}

func TestCommit_NoPosterSkipsPosterSteps(t *testing.T) {
	store := &fakeStore{}
	creator := &fakeCreator{}
	svc := newTestUploadService(store, creator)

	in := testInput()
	in.Poster = nil
	res := svc.Commit(context.Background(), "user-1", in)

	if !res.Success {
		t.Fatalf("commit failed: %s", res.Error)
	}
	if len(store.uploads) != 1 {
		t.Errorf("uploads = %v, want just the video", store.uploads)
	}
	if creator.lastURL != nil {
		t.Error("posterUrl set without a poster")
	}
}
