package backend

import (
	"context"
	"errors"
	"strings"

	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/db/models"
	"github.com/lodgeworks/lodged/pkg/proto"
	"github.com/lodgeworks/lodged/pkg/store"
)

// DefaultPageSize is the directory page size used when the caller does not
// ask for one.
const DefaultPageSize = 10

// MemberSearchOptions narrows and paginates a directory query. Page is
// 1-indexed.
type MemberSearchOptions struct {
	Term    string
	Page    int
	PerPage int
}

// Members runs a role-scoped directory query for the caller in the context.
// Collector callers only ever see members owned by their own collector name,
// resolved server-side from their member number. The returned page carries
// the total count of matching members so callers can derive the page count.
func (b *Backend) Members(ctx context.Context, opts MemberSearchOptions) (proto.MemberPage, error) {
	if opts.Page < 1 || opts.PerPage < 1 {
		return proto.MemberPage{}, proto.ErrInvalidPagination
	}

	collector, ok, err := b.callerScope(ctx)
	if err != nil {
		return proto.MemberPage{}, err
	}
	if !ok {
		// An unresolvable collector sees an empty directory rather than an
		// error, so an ambiguous mapping leaks nothing.
		return proto.MemberPage{Members: []proto.Member{}}, nil
	}

	term := strings.TrimSpace(opts.Term)
	key := pageKey{term: term, collector: collector, page: opts.Page, perPage: opts.PerPage}
	if page, ok := b.cache.pages.Get(key); ok {
		return page, nil
	}

	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	search := store.MemberSearch{
		Term:      term,
		Collector: collector,
		Limit:     opts.PerPage,
		Offset:    (opts.Page - 1) * opts.PerPage,
	}

	count, err := b.store.CountMembers(qctx, b.db, search)
	if err != nil {
		return proto.MemberPage{}, wrapStorageErr(err)
	}

	ms, err := b.store.ListMembers(qctx, b.db, search)
	if err != nil {
		return proto.MemberPage{}, wrapStorageErr(err)
	}

	page := proto.MemberPage{
		Members:    membersFromModels(ms),
		TotalCount: int(count),
	}

	b.cache.pages.Add(key, page)

	return page, nil
}

// Roster returns the caller's full scoped, filtered member set without
// pagination. It backs the printable roster export.
func (b *Backend) Roster(ctx context.Context, term string) ([]proto.Member, error) {
	collector, ok, err := b.callerScope(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []proto.Member{}, nil
	}

	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	ms, err := b.store.ListMembers(qctx, b.db, store.MemberSearch{
		Term:      strings.TrimSpace(term),
		Collector: collector,
	})
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	return membersFromModels(ms), nil
}

// AddMember enrolls a member. Admin only; the directory itself never writes
// through this path.
func (b *Backend) AddMember(ctx context.Context, number, fullName, collector string) (proto.Member, error) {
	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	m, err := b.store.CreateMember(qctx, b.db, number, fullName, collector)
	if err != nil {
		return proto.Member{}, db.WrapError(err)
	}

	b.cache.invalidate()

	return memberFromModel(m), nil
}

// CollectorScope resolves the collector name for a collector-role caller
// from their member number. The result is cached since assignment changes
// rarely.
func (b *Backend) CollectorScope(ctx context.Context, memberNumber string) (string, error) {
	if name, ok := b.cache.scopes.Get(memberNumber); ok {
		return name, nil
	}

	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	c, err := b.store.FindCollectorByMemberNumber(qctx, b.db, memberNumber)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return "", proto.ErrScopeUnresolved
		}
		return "", wrapStorageErr(err)
	}

	b.cache.scopes.Add(memberNumber, c.Name)

	return c.Name, nil
}

// callerScope returns the collector restriction for the caller in ctx. The
// second return is false when the caller is a collector whose scope cannot
// be resolved; such callers get an empty view.
func (b *Backend) callerScope(ctx context.Context) (string, bool, error) {
	user := proto.UserFromContext(ctx)
	if user == nil || !user.IsCollector() {
		return "", true, nil
	}

	if user.CollectorName != "" {
		return user.CollectorName, true, nil
	}

	name, err := b.CollectorScope(ctx, user.MemberNumber)
	if err != nil {
		if errors.Is(err, proto.ErrScopeUnresolved) {
			b.logger.Warn("collector scope unresolved", "member_number", user.MemberNumber)
			return "", false, nil
		}
		return "", false, err
	}

	return name, true, nil
}

func memberFromModel(m models.Member) proto.Member {
	return proto.Member{
		ID:           m.ID,
		MemberNumber: m.MemberNumber,
		FullName:     m.FullName,
		Collector:    m.Collector.String,
		CreatedAt:    m.CreatedAt,
	}
}

func membersFromModels(ms []models.Member) []proto.Member {
	members := make([]proto.Member, 0, len(ms))
	for _, m := range ms {
		members = append(members, memberFromModel(m))
	}
	return members
}
