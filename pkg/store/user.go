package store

import (
	"context"
	"time"

	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/db/models"
)

// UserStore is an interface for managing login accounts.
type UserStore interface {
	GetUserByID(ctx context.Context, h db.Handler, id int64) (models.User, error)
	FindUserByMemberNumber(ctx context.Context, h db.Handler, number string) (models.User, error)
	CreateUser(ctx context.Context, h db.Handler, number string, fullName string, passwordHash string, role string) (models.User, error)
	SetUserPassword(ctx context.Context, h db.Handler, id int64, passwordHash string) error
}

// SessionStore is an interface for managing login sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, h db.Handler, id string, userID int64, tokenHash string, expiresAt time.Time) error
	FindSessionByTokenHash(ctx context.Context, h db.Handler, tokenHash string) (models.Session, error)
	DeleteSession(ctx context.Context, h db.Handler, id string) error
	DeleteExpiredSessions(ctx context.Context, h db.Handler, now time.Time) (int64, error)
}
