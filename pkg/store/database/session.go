package database

import (
	"context"
	"time"

	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/db/models"
	"github.com/lodgeworks/lodged/pkg/store"
)

type sessionStore struct{}

var _ store.SessionStore = (*sessionStore)(nil)

// CreateSession implements store.SessionStore.
func (*sessionStore) CreateSession(ctx context.Context, h db.Handler, id string, userID int64, tokenHash string, expiresAt time.Time) error {
	query := h.Rebind(`INSERT INTO sessions (id, user_id, token_hash, expires_at)
			VALUES (?, ?, ?, ?)`)
	_, err := h.ExecContext(ctx, query, id, userID, tokenHash, expiresAt.UTC())
	return err //nolint:wrapcheck
}

// FindSessionByTokenHash implements store.SessionStore.
func (*sessionStore) FindSessionByTokenHash(ctx context.Context, h db.Handler, tokenHash string) (models.Session, error) {
	var s models.Session
	query := h.Rebind(`SELECT * FROM sessions WHERE token_hash = ?`)
	err := h.GetContext(ctx, &s, query, tokenHash)
	return s, err //nolint:wrapcheck
}

// DeleteSession implements store.SessionStore.
func (*sessionStore) DeleteSession(ctx context.Context, h db.Handler, id string) error {
	query := h.Rebind(`DELETE FROM sessions WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// DeleteExpiredSessions implements store.SessionStore.
func (*sessionStore) DeleteExpiredSessions(ctx context.Context, h db.Handler, now time.Time) (int64, error) {
	query := h.Rebind(`DELETE FROM sessions WHERE expires_at < ?`)
	res, err := h.ExecContext(ctx, query, now.UTC())
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	n, err := res.RowsAffected()
	return n, err //nolint:wrapcheck
}
