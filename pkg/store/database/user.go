package database

import (
	"context"

	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/db/models"
	"github.com/lodgeworks/lodged/pkg/store"
)

type userStore struct{}

var _ store.UserStore = (*userStore)(nil)

// GetUserByID implements store.UserStore.
func (*userStore) GetUserByID(ctx context.Context, h db.Handler, id int64) (models.User, error) {
	var u models.User
	query := h.Rebind(`SELECT * FROM users WHERE id = ?`)
	err := h.GetContext(ctx, &u, query, id)
	return u, err //nolint:wrapcheck
}

// FindUserByMemberNumber implements store.UserStore.
func (*userStore) FindUserByMemberNumber(ctx context.Context, h db.Handler, number string) (models.User, error) {
	var u models.User
	query := h.Rebind(`SELECT * FROM users WHERE member_number = ?`)
	err := h.GetContext(ctx, &u, query, number)
	return u, err //nolint:wrapcheck
}

// CreateUser implements store.UserStore.
func (s *userStore) CreateUser(ctx context.Context, h db.Handler, number string, fullName string, passwordHash string, role string) (models.User, error) {
	query := h.Rebind(`INSERT INTO users (member_number, full_name, password, role, updated_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id`)

	var id int64
	if err := h.GetContext(ctx, &id, query, number, fullName, passwordHash, role); err != nil {
		return models.User{}, err //nolint:wrapcheck
	}

	return s.GetUserByID(ctx, h, id)
}

// SetUserPassword implements store.UserStore.
func (*userStore) SetUserPassword(ctx context.Context, h db.Handler, id int64, passwordHash string) error {
	query := h.Rebind(`UPDATE users SET password = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, passwordHash, id)
	return err //nolint:wrapcheck
}
