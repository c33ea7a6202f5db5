package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Options sizes the connection pool. Feed reads dominate this service, so
// the defaults lean toward more concurrent connections than writes need;
// deployments override them through configuration.
type Options struct {
	MaxConns        int32
	MinConns        int32
	ConnectAttempts int
	RetryWait       time.Duration
}

// DefaultOptions returns the pool sizing used when configuration is silent.
func DefaultOptions() Options {
	return Options{
		MaxConns:        20,
		MinConns:        4,
		ConnectAttempts: 5,
		RetryWait:       2 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxConns <= 0 {
		o.MaxConns = d.MaxConns
	}
	if o.MinConns <= 0 {
		o.MinConns = d.MinConns
	}
	if o.MinConns > o.MaxConns {
		o.MinConns = o.MaxConns
	}
	if o.ConnectAttempts <= 0 {
		o.ConnectAttempts = d.ConnectAttempts
	}
	if o.RetryWait <= 0 {
		o.RetryWait = d.RetryWait
	}
	return o
}

func buildConfig(databaseURL string, opts Options) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	opts = opts.withDefaults()
	config.MaxConns = opts.MaxConns
	config.MinConns = opts.MinConns
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = time.Minute
	return config, nil
}

// NewPool connects to Postgres and verifies the connection with a ping,
// retrying while the database comes up (compose and k8s start order is not
// guaranteed).
func NewPool(ctx context.Context, databaseURL string, opts Options) (*pgxpool.Pool, error) {
	config, err := buildConfig(databaseURL, opts)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	var lastErr error
	for attempt := 1; ; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, config)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				log.Printf("postgres: connected (pool %d-%d conns)", config.MinConns, config.MaxConns)
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err

		if attempt >= opts.ConnectAttempts {
			break
		}
		log.Printf("postgres: not ready (attempt %d/%d): %v", attempt, opts.ConnectAttempts, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.RetryWait):
		}
	}

	return nil, fmt.Errorf("postgres unreachable after %d attempts: %w", opts.ConnectAttempts, lastErr)
}
