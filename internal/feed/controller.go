package feed

import (
	"sync"

	"github.com/Arionyxx/PupClips/internal/model"
)

// Controller owns the feed's visible window over a growing entry list plus the
// playback-affecting UI flags. All mutation goes through its methods; readers
// never touch internal fields directly. Invariants: entry ids are unique;
// 0 <= currentIndex < len(entries) whenever the list is non-empty, and
// currentIndex == 0 when it is empty.
type Controller struct {
	mu           sync.Mutex
	entries      []model.FeedEntry
	currentIndex int
	autoplay     bool
	muted        bool
	loading      bool
	hasMore      bool
}

// NewController returns a controller in its initial state: empty list,
// autoplay on, unmuted, not loading, hasMore true.
func NewController() *Controller {
	return &Controller{autoplay: true, hasMore: true}
}

// SetEntries replaces the list wholesale and resets the current index to 0.
// Used only for the first page.
func (c *Controller) SetEntries(entries []model.FeedEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append([]model.FeedEntry(nil), entries...)
	c.currentIndex = 0
}

// AppendEntries appends new entries, dropping any whose id is already present.
// Existing ids win; relative order of both lists is preserved. The current
// index is not altered.
func (c *Controller) AppendEntries(entries []model.FeedEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing := make(map[string]bool, len(c.entries))
	for _, e := range c.entries {
		existing[e.ID] = true
	}
	for _, e := range entries {
		if existing[e.ID] {
			continue
		}
		existing[e.ID] = true
		c.entries = append(c.entries, e)
	}
}

// Entries returns a copy of the current entry list.
func (c *Controller) Entries() []model.FeedEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.FeedEntry(nil), c.entries...)
}

// Len returns the number of loaded entries.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// CurrentIndex returns the index of the currently visible entry.
func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentIndex
}

// SetCurrentIndex accepts the index only when it is in bounds; out-of-range
// values are a no-op, not an error.
func (c *Controller) SetCurrentIndex(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i >= 0 && i < len(c.entries) {
		c.currentIndex = i
	}
}

// Advance moves to the next entry, clamped at the end of the list.
func (c *Controller) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentIndex < len(c.entries)-1 {
		c.currentIndex++
	}
}

// Retreat moves to the previous entry, clamped at the start of the list.
func (c *Controller) Retreat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentIndex > 0 {
		c.currentIndex--
	}
}

// ToggleAutoplay flips the autoplay flag; no other state is touched.
func (c *Controller) ToggleAutoplay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoplay = !c.autoplay
}

// ToggleMute flips the mute flag; no other state is touched.
func (c *Controller) ToggleMute() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muted = !c.muted
}

// AutoplayEnabled reports whether autoplay is on.
func (c *Controller) AutoplayEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoplay
}

// Muted reports whether playback is muted.
func (c *Controller) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// SetLoading is set by the pagination driver and read by the UI to gate
// spinner display.
func (c *Controller) SetLoading(loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = loading
}

// Loading reports whether a page fetch is in progress.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// SetHasMore is set by the pagination driver and read to gate further fetches.
func (c *Controller) SetHasMore(hasMore bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasMore = hasMore
}

// HasMore reports whether more pages may be available.
func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// UpdateInteractionCounts replaces only the provided counters on the entry
// with the given id, leaving every other field untouched. Unknown ids are a
// no-op.
func (c *Controller) UpdateInteractionCounts(videoID string, likeCount, commentCount *int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.entries {
		if c.entries[i].ID != videoID {
			continue
		}
		if likeCount != nil {
			c.entries[i].LikeCount = *likeCount
		}
		if commentCount != nil {
			c.entries[i].CommentCount = *commentCount
		}
		return
	}
}

// Reset restores all fields to their initial values.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	c.currentIndex = 0
	c.autoplay = true
	c.muted = false
	c.loading = false
	c.hasMore = true
}
