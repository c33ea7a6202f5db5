package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/Arionyxx/PupClips/internal/model"
)

type fakeVideoStore struct {
	entries      []model.FeedEntry
	viewed       []string
	incrementErr error
	deleted      []string
}

func (f *fakeVideoStore) List(ctx context.Context, q model.FeedQuery) ([]model.FeedEntry, error) {
	if len(f.entries) > q.Limit {
		return f.entries[:q.Limit], nil
	}
	return f.entries, nil
}

func (f *fakeVideoStore) FindByID(ctx context.Context, videoID string) (*model.FeedEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == videoID {
			return &f.entries[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeVideoStore) Delete(ctx context.Context, videoID, userID string) error {
	f.deleted = append(f.deleted, videoID)
	return nil
}

func (f *fakeVideoStore) IncrementViews(ctx context.Context, videoID string) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.viewed = append(f.viewed, videoID)
	return nil
}

func newTestVideoService(store *fakeVideoStore) *VideoService {
	return NewVideoService(store, &fakeStore{}, &CacheService{}, zerolog.Nop())
}

func entriesWithIDs(ids ...string) []model.FeedEntry {
	entries := make([]model.FeedEntry, len(ids))
	for i, id := range ids {
		entries[i].ID = id
	}
	return entries
}

func TestRecordView_IncrementsOnce(t *testing.T) {
	store := &fakeVideoStore{entries: entriesWithIDs("v1")}
	svc := newTestVideoService(store)

	if err := svc.RecordView(context.Background(), "v1"); err != nil {
		t.Fatalf("RecordView: %v", err)
	}
	if len(store.viewed) != 1 || store.viewed[0] != "v1" {
		t.Errorf("viewed = %v, want exactly [v1]", store.viewed)
	}
}

func TestRecordView_UnknownVideo(t *testing.T) {
	store := &fakeVideoStore{incrementErr: pgx.ErrNoRows}
	svc := newTestVideoService(store)

	err := svc.RecordView(context.Background(), "missing")
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("err = %v, want pgx.ErrNoRows", err)
	}
	if len(store.viewed) != 0 {
		t.Errorf("viewed = %v, want none", store.viewed)
	}
}

func TestListFeed_HasMoreApproximation(t *testing.T) {
	tests := []struct {
		name    string
		entries int
		limit   int
		want    bool
	}{
		{"full page", 10, 10, true},
		{"short page", 4, 10, false},
		{"empty page", 0, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, tt.entries)
			for i := range ids {
				ids[i] = string(rune('a' + i))
			}
			svc := newTestVideoService(&fakeVideoStore{entries: entriesWithIDs(ids...)})

			page, err := svc.ListFeed(context.Background(), model.FeedQuery{Limit: tt.limit, OrderBy: "created_at", Order: "desc"})
			if err != nil {
				t.Fatalf("ListFeed: %v", err)
			}
			if page.HasMore != tt.want {
				t.Errorf("HasMore = %v, want %v", page.HasMore, tt.want)
			}
		})
	}
}
