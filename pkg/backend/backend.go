// Package backend implements the Lodged business logic on top of the store.
package backend

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lodgeworks/lodged/pkg/config"
	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/proto"
	"github.com/lodgeworks/lodged/pkg/store"
)

// Backend handles directory queries, payment decisions, and sessions.
type Backend struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	store  store.Store
	logger *log.Logger
	cache  *cache
}

// New returns a new Lodged backend.
func New(ctx context.Context, cfg *config.Config, db *db.DB, st store.Store) *Backend {
	logger := log.FromContext(ctx).WithPrefix("backend")
	b := &Backend{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		store:  st,
		logger: logger,
	}

	b.cache = newCache(cfg)

	return b
}

// queryContext bounds a store call with the configured query timeout.
func (b *Backend) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.cfg.QueryTimeout())
}

// wrapStorageErr maps driver and timeout failures to
// proto.ErrStorageUnavailable so callers can tell a transient backend outage
// from their own bad input. Not-found errors pass through untouched.
func wrapStorageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, db.ErrRecordNotFound) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return errors.Join(proto.ErrStorageUnavailable, err)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
