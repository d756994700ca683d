// Package database provides database store implementations.
package database

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lodgeworks/lodged/pkg/config"
	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/store"
)

type datastore struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	logger *log.Logger

	*memberStore
	*collectorStore
	*paymentStore
	*userStore
	*sessionStore
}

// New returns a new store.Store database.
func New(ctx context.Context, db *db.DB) store.Store {
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("store")

	s := &datastore{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		logger: logger,

		memberStore:    &memberStore{},
		collectorStore: &collectorStore{},
		paymentStore:   &paymentStore{},
		userStore:      &userStore{},
		sessionStore:   &sessionStore{},
	}

	return s
}
