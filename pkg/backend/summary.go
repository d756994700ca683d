package backend

import (
	"context"
	"errors"

	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/proto"
	"github.com/lodgeworks/lodged/pkg/store"
)

// Collectors lists all collectors.
func (b *Backend) Collectors(ctx context.Context) ([]proto.Collector, error) {
	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	cs, err := b.store.ListCollectors(qctx, b.db)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	collectors := make([]proto.Collector, 0, len(cs))
	for _, c := range cs {
		collectors = append(collectors, proto.Collector{
			ID:           c.ID,
			Name:         c.Name,
			MemberNumber: c.MemberNumber,
		})
	}

	return collectors, nil
}

// CollectorSummary derives the per-collector rollup: how many members the
// collector owns, how many requests await a decision, and the approved
// total. It holds no state of its own and is recomputed on each call, with
// the same advisory caching as the directory.
func (b *Backend) CollectorSummary(ctx context.Context, name string) (proto.CollectorSummary, error) {
	if s, ok := b.cache.summaries.Get(name); ok {
		return s, nil
	}

	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	c, err := b.store.FindCollectorByName(qctx, b.db, name)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return proto.CollectorSummary{}, proto.ErrCollectorNotFound
		}
		return proto.CollectorSummary{}, wrapStorageErr(err)
	}

	memberCount, err := b.store.CountMembers(qctx, b.db, store.MemberSearch{Collector: c.Name})
	if err != nil {
		return proto.CollectorSummary{}, wrapStorageErr(err)
	}

	pending, err := b.store.CountPendingByCollector(qctx, b.db, c.ID)
	if err != nil {
		return proto.CollectorSummary{}, wrapStorageErr(err)
	}

	approved, err := b.store.SumApprovedByCollector(qctx, b.db, c.ID)
	if err != nil {
		return proto.CollectorSummary{}, wrapStorageErr(err)
	}

	summary := proto.CollectorSummary{
		Collector:     c.Name,
		MemberCount:   int(memberCount),
		PendingCount:  int(pending),
		ApprovedTotal: proto.Amount(approved),
	}

	b.cache.summaries.Add(name, summary)

	return summary, nil
}
