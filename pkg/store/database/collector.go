package database

import (
	"context"

	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/db/models"
	"github.com/lodgeworks/lodged/pkg/store"
)

type collectorStore struct{}

var _ store.CollectorStore = (*collectorStore)(nil)

// ListCollectors implements store.CollectorStore.
func (*collectorStore) ListCollectors(ctx context.Context, h db.Handler) ([]models.Collector, error) {
	var cs []models.Collector
	query := h.Rebind(`SELECT * FROM collectors ORDER BY name ASC`)
	err := h.SelectContext(ctx, &cs, query)
	return cs, err //nolint:wrapcheck
}

// FindCollectorByName implements store.CollectorStore.
func (*collectorStore) FindCollectorByName(ctx context.Context, h db.Handler, name string) (models.Collector, error) {
	var c models.Collector
	query := h.Rebind(`SELECT * FROM collectors WHERE name = ?`)
	err := h.GetContext(ctx, &c, query, name)
	return c, err //nolint:wrapcheck
}

// FindCollectorByMemberNumber implements store.CollectorStore.
func (*collectorStore) FindCollectorByMemberNumber(ctx context.Context, h db.Handler, number string) (models.Collector, error) {
	var c models.Collector
	query := h.Rebind(`SELECT * FROM collectors WHERE member_number = ?`)
	err := h.GetContext(ctx, &c, query, number)
	return c, err //nolint:wrapcheck
}

// CreateCollector implements store.CollectorStore.
func (s *collectorStore) CreateCollector(ctx context.Context, h db.Handler, name string, memberNumber string) (models.Collector, error) {
	query := h.Rebind(`INSERT INTO collectors (name, member_number, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP) RETURNING id`)

	var id int64
	if err := h.GetContext(ctx, &id, query, name, memberNumber); err != nil {
		return models.Collector{}, err //nolint:wrapcheck
	}

	var c models.Collector
	if err := h.GetContext(ctx, &c, h.Rebind(`SELECT * FROM collectors WHERE id = ?`), id); err != nil {
		return models.Collector{}, err //nolint:wrapcheck
	}

	return c, nil
}
