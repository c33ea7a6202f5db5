package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Arionyxx/PupClips/internal/model"
	"github.com/Arionyxx/PupClips/internal/repository"
)

// CountWorker listens for PostgreSQL NOTIFY on the interaction_changes
// channel and batches like/comment counter reconciliation. If fifty likes hit
// one video inside the window, it recounts once.
// InteractionRecounter resets a video's denormalized counters from table
// truth.
type InteractionRecounter interface {
	RecountInteractions(ctx context.Context, videoID string) (model.InteractionCounts, error)
}

type CountWorker struct {
	pool       *pgxpool.Pool
	videos     InteractionRecounter
	cache      *CacheService
	batchMs    time.Duration
	recountDur prometheus.Histogram

	mu      sync.Mutex
	pending map[string]struct{} // video ids waiting for a recount
}

// NewCountWorker creates a counter reconciliation worker.
func NewCountWorker(pool *pgxpool.Pool, videos InteractionRecounter, cache *CacheService) *CountWorker {
	return &CountWorker{
		pool:    pool,
		videos:  videos,
		cache:   cache,
		batchMs: 5 * time.Second,
		pending: make(map[string]struct{}),
	}
}

// Instrument attaches the batch duration histogram.
func (w *CountWorker) Instrument(recountDur prometheus.Histogram) {
	w.recountDur = recountDur
}

// Start begins listening for interaction_changes notifications and processing
// batches. It blocks until the context is cancelled.
func (w *CountWorker) Start(ctx context.Context) {
	log.Printf("count-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("count-worker: stopping (context cancelled)")
				return
			}
			log.Printf("count-worker: listen loop error, reconnecting: %v", err)
			time.Sleep(2 * time.Second)
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on interaction_changes,
// and collects notifications into batched windows.
func (w *CountWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN "+repository.InteractionChannel)
	if err != nil {
		return err
	}
	log.Printf("count-worker: listening on %s", repository.InteractionChannel)

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		videoID := notification.Payload
		if videoID == "" {
			continue
		}

		w.mu.Lock()
		w.pending[videoID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set and recounts.
func (w *CountWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush drains the pending set and resets each video's counters from table
// truth.
func (w *CountWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	start := time.Now()
	recounted := 0
	for videoID := range batch {
		if _, err := w.videos.RecountInteractions(ctx, videoID); err != nil {
			log.Printf("count-worker: recount error for %s: %v", videoID, err)
			continue
		}

		if w.cache != nil {
			if err := w.cache.InvalidateVideo(ctx, videoID); err != nil {
				log.Printf("count-worker: cache invalidate error for %s: %v", videoID, err)
			}
		}

		recounted++
	}

	if w.recountDur != nil {
		w.recountDur.Observe(time.Since(start).Seconds())
	}

	if recounted > 0 {
		log.Printf("count-worker: batch complete: %d videos recounted (from %d notifications)",
			recounted, len(batch))
	}
}
