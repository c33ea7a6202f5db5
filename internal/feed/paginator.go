package feed

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/Arionyxx/PupClips/internal/model"
)

// DefaultPageSize is the number of entries requested per page fetch.
const DefaultPageSize = 10

// nearEndWindow is how close to the end of the loaded list the current index
// must be before the next page is fetched.
const nearEndWindow = 3

// Fetcher fetches one feed page. hasMore is the server's approximation:
// true exactly when the returned page was full.
type Fetcher interface {
	FetchPage(ctx context.Context, limit, offset int) (entries []model.FeedEntry, hasMore bool, err error)
}

// Paginator drives backfill of additional pages into a Controller. A single
// in-flight latch prevents concurrent duplicate fetches; it is the only
// mutual-exclusion mechanism here and guards nothing else.
type Paginator struct {
	ctrl     *Controller
	fetcher  Fetcher
	pageSize int
	log      zerolog.Logger

	inFlight atomic.Bool
}

// NewPaginator creates a paginator over the given controller and fetcher.
func NewPaginator(ctrl *Controller, fetcher Fetcher, log zerolog.Logger) *Paginator {
	return &Paginator{
		ctrl:     ctrl,
		fetcher:  fetcher,
		pageSize: DefaultPageSize,
		log:      log,
	}
}

// MaybeFetch fetches the next page when the viewer is within nearEndWindow
// entries of the end of the loaded list, more data may exist, and no fetch is
// already in flight. It reports whether a fetch was performed.
//
// A short or empty page clears hasMore. A fetch failure also clears hasMore
// and is logged, never retried: auto-fetching stays off for the session.
func (p *Paginator) MaybeFetch(ctx context.Context) bool {
	if !p.shouldFetch() {
		return false
	}
	if !p.inFlight.CompareAndSwap(false, true) {
		return false
	}
	defer p.inFlight.Store(false)

	p.ctrl.SetLoading(true)
	defer p.ctrl.SetLoading(false)

	offset := p.ctrl.Len()
	entries, hasMore, err := p.fetcher.FetchPage(ctx, p.pageSize, offset)
	if err != nil {
		p.log.Error().Err(err).Int("offset", offset).Msg("feed page fetch failed")
		p.ctrl.SetHasMore(false)
		return true
	}

	if len(entries) == 0 {
		p.ctrl.SetHasMore(false)
		return true
	}

	p.ctrl.AppendEntries(entries)
	p.ctrl.SetHasMore(hasMore && len(entries) == p.pageSize)
	return true
}

func (p *Paginator) shouldFetch() bool {
	if !p.ctrl.HasMore() {
		return false
	}
	return p.ctrl.CurrentIndex() >= p.ctrl.Len()-nearEndWindow
}
