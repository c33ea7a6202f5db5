package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/Arionyxx/PupClips/internal/model"
)

// HTTPFetcher fetches feed pages from GET /api/videos on a PupClips server.
type HTTPFetcher struct {
	BaseURL string
	OrderBy string // created_at | views_count | likes_count
	Order   string // asc | desc
	Client  *fasthttp.Client
	Timeout time.Duration
}

// NewHTTPFetcher returns a fetcher ordering by newest first.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: baseURL,
		OrderBy: "created_at",
		Order:   "desc",
		Client:  &fasthttp.Client{},
		Timeout: 10 * time.Second,
	}
}

// FetchPage implements Fetcher.
func (f *HTTPFetcher) FetchPage(ctx context.Context, limit, offset int) ([]model.FeedEntry, bool, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s/api/videos?limit=%d&offset=%d&orderBy=%s&order=%s",
		f.BaseURL, limit, offset, f.OrderBy, f.Order))
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline := time.Now().Add(f.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := f.Client.DoDeadline(req, resp, deadline); err != nil {
		return nil, false, fmt.Errorf("fetch feed page: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, false, fmt.Errorf("fetch feed page: status %d", resp.StatusCode())
	}

	var page model.FeedPageResponse
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, false, fmt.Errorf("decode feed page: %w", err)
	}
	return page.Videos, page.HasMore, nil
}
