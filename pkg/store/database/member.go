package database

import (
	"context"
	"strings"

	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/db/models"
	"github.com/lodgeworks/lodged/pkg/store"
)

type memberStore struct{}

var _ store.MemberStore = (*memberStore)(nil)

// memberFilter builds the WHERE clause shared by ListMembers and
// CountMembers so both always agree on the matching set.
func memberFilter(search store.MemberSearch) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if term := strings.ToLower(strings.TrimSpace(search.Term)); term != "" {
		pattern := "%" + term + "%"
		conds = append(conds, `(LOWER(full_name) LIKE ?
			OR LOWER(member_number) LIKE ?
			OR LOWER(COALESCE(collector, '')) LIKE ?)`)
		args = append(args, pattern, pattern, pattern)
	}

	if search.Collector != "" {
		conds = append(conds, `collector = ?`)
		args = append(args, search.Collector)
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListMembers implements store.MemberStore. Results are ordered newest
// first, ties broken by id so pagination is deterministic.
func (*memberStore) ListMembers(ctx context.Context, h db.Handler, search store.MemberSearch) ([]models.Member, error) {
	where, args := memberFilter(search)
	query := `SELECT * FROM members` + where + ` ORDER BY created_at DESC, id ASC`
	if search.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, search.Limit, search.Offset)
	}

	var ms []models.Member
	err := h.SelectContext(ctx, &ms, h.Rebind(query), args...)
	return ms, err //nolint:wrapcheck
}

// CountMembers implements store.MemberStore. It counts the matching set
// before pagination.
func (*memberStore) CountMembers(ctx context.Context, h db.Handler, search store.MemberSearch) (int64, error) {
	where, args := memberFilter(search)
	query := `SELECT COUNT(*) FROM members` + where

	var count int64
	err := h.GetContext(ctx, &count, h.Rebind(query), args...)
	return count, err //nolint:wrapcheck
}

// GetMemberByID implements store.MemberStore.
func (*memberStore) GetMemberByID(ctx context.Context, h db.Handler, id int64) (models.Member, error) {
	var m models.Member
	query := h.Rebind(`SELECT * FROM members WHERE id = ?`)
	err := h.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// GetMemberByNumber implements store.MemberStore.
func (*memberStore) GetMemberByNumber(ctx context.Context, h db.Handler, number string) (models.Member, error) {
	var m models.Member
	query := h.Rebind(`SELECT * FROM members WHERE member_number = ?`)
	err := h.GetContext(ctx, &m, query, number)
	return m, err //nolint:wrapcheck
}

// CreateMember implements store.MemberStore.
func (s *memberStore) CreateMember(ctx context.Context, h db.Handler, number string, fullName string, collector string) (models.Member, error) {
	query := h.Rebind(`INSERT INTO members (member_number, full_name, collector, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP) RETURNING id`)

	var c interface{}
	if collector != "" {
		c = collector
	}

	var id int64
	if err := h.GetContext(ctx, &id, query, number, fullName, c); err != nil {
		return models.Member{}, err //nolint:wrapcheck
	}

	return s.GetMemberByID(ctx, h, id)
}
