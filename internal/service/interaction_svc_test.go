package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Arionyxx/PupClips/internal/model"
)

// fakeInteractionStore backs the interaction service with in-memory likes.
type fakeInteractionStore struct {
	likes     map[string]map[string]bool // videoID -> userID -> liked
	likeCount int
}

func newFakeInteractionStore() *fakeInteractionStore {
	return &fakeInteractionStore{likes: make(map[string]map[string]bool)}
}

func (f *fakeInteractionStore) ToggleLike(ctx context.Context, videoID, userID string) (bool, error) {
	if f.likes[videoID] == nil {
		f.likes[videoID] = make(map[string]bool)
	}
	f.likes[videoID][userID] = !f.likes[videoID][userID]
	return f.likes[videoID][userID], nil
}

func (f *fakeInteractionStore) HasLiked(ctx context.Context, videoID, userID string) (bool, error) {
	return f.likes[videoID][userID], nil
}

func (f *fakeInteractionStore) CountLikes(ctx context.Context, videoID string) (int, error) {
	n := 0
	for _, liked := range f.likes[videoID] {
		if liked {
			n++
		}
	}
	return n + f.likeCount, nil
}

func (f *fakeInteractionStore) CreateComment(ctx context.Context, videoID, userID, body string, parentID *string) (*model.Comment, error) {
	return &model.Comment{VideoID: videoID, UserID: userID, Body: body, ParentID: parentID}, nil
}

func (f *fakeInteractionStore) ListTopLevel(ctx context.Context, videoID string, limit, offset int) ([]model.CommentWithProfile, error) {
	return nil, nil
}

func (f *fakeInteractionStore) ListReplies(ctx context.Context, parentID string) ([]model.CommentWithProfile, error) {
	return nil, nil
}

func (f *fakeInteractionStore) DeleteComment(ctx context.Context, commentID, userID string) (string, error) {
	return "", nil
}

func newTestInteractionService(store InteractionStore) *InteractionService {
	return NewInteractionService(store, &CacheService{}, zerolog.Nop())
}

func TestHasLiked_ReflectsToggleState(t *testing.T) {
	store := newFakeInteractionStore()
	svc := newTestInteractionService(store)
	ctx := context.Background()

	liked, err := svc.HasLiked(ctx, "v1", "user-1")
	if err != nil {
		t.Fatalf("HasLiked: %v", err)
	}
	if liked {
		t.Error("HasLiked = true before any toggle, want false")
	}

	if _, err := svc.ToggleLike(ctx, "v1", "user-1"); err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}

	liked, err = svc.HasLiked(ctx, "v1", "user-1")
	if err != nil {
		t.Fatalf("HasLiked: %v", err)
	}
	if !liked {
		t.Error("HasLiked = false after toggle, want true")
	}
}

func TestHasLiked_ScopedToUser(t *testing.T) {
	store := newFakeInteractionStore()
	svc := newTestInteractionService(store)
	ctx := context.Background()

	if _, err := svc.ToggleLike(ctx, "v1", "user-1"); err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}

	liked, err := svc.HasLiked(ctx, "v1", "user-2")
	if err != nil {
		t.Fatalf("HasLiked: %v", err)
	}
	if liked {
		t.Error("HasLiked = true for a user who never liked, want false")
	}
}

func TestToggleLike_CountFromTableTruth(t *testing.T) {
	store := newFakeInteractionStore()
	store.likeCount = 41 // likes by other users
	svc := newTestInteractionService(store)

	resp, err := svc.ToggleLike(context.Background(), "v1", "user-1")
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if !resp.Liked {
		t.Error("Liked = false, want true")
	}
	if resp.LikeCount != 42 {
		t.Errorf("LikeCount = %d, want 42 (server-side count, not a local guess)", resp.LikeCount)
	}
}
