package backend

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/proto"
	"golang.org/x/crypto/bcrypt"
)

const saltySalt = "salty-lodged"

// HashPassword hashes the password using bcrypt.
func HashPassword(password string) (string, error) {
	crypt, err := bcrypt.GenerateFromPassword([]byte(password+saltySalt), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(crypt), nil
}

// VerifyPassword verifies the password against the hash.
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+saltySalt))
	return err == nil
}

// GenerateToken returns a random unique session token.
func GenerateToken() string {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}

	return "ld_" + hex.EncodeToString(buf)
}

// HashToken hashes the token using sha256.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token + saltySalt))
	return hex.EncodeToString(sum[:])
}

// Authenticate verifies a member number and password and issues an opaque
// session token. Only the token's hash is stored.
func (b *Backend) Authenticate(ctx context.Context, memberNumber, password string) (string, proto.User, error) {
	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	u, err := b.store.FindUserByMemberNumber(qctx, b.db, memberNumber)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return "", proto.User{}, proto.ErrUnauthorized
		}
		return "", proto.User{}, wrapStorageErr(err)
	}

	if !u.Password.Valid || !VerifyPassword(password, u.Password.String) {
		return "", proto.User{}, proto.ErrUnauthorized
	}

	token := GenerateToken()
	expiresAt := time.Now().Add(b.cfg.SessionTTL())
	if err := b.store.CreateSession(qctx, b.db, uuid.NewString(), u.ID, HashToken(token), expiresAt); err != nil {
		return "", proto.User{}, wrapStorageErr(err)
	}

	user, err := b.resolveUser(ctx, u.ID)
	if err != nil {
		return "", proto.User{}, err
	}

	return token, user, nil
}

// UserForToken resolves the caller behind an opaque session token. For
// collector-role callers the collector name is looked up server-side from
// the account's member number; it is never taken from client input.
func (b *Backend) UserForToken(ctx context.Context, token string) (*proto.User, error) {
	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	s, err := b.store.FindSessionByTokenHash(qctx, b.db, HashToken(token))
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return nil, proto.ErrUnauthorized
		}
		return nil, wrapStorageErr(err)
	}

	if time.Now().After(s.ExpiresAt) {
		_ = b.store.DeleteSession(qctx, b.db, s.ID)
		return nil, proto.ErrUnauthorized
	}

	user, err := b.resolveUser(ctx, s.UserID)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Logout revokes the session behind a token. Unknown tokens are a no-op.
func (b *Backend) Logout(ctx context.Context, token string) error {
	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	s, err := b.store.FindSessionByTokenHash(qctx, b.db, HashToken(token))
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return nil
		}
		return wrapStorageErr(err)
	}

	return wrapStorageErr(b.store.DeleteSession(qctx, b.db, s.ID))
}

// SweepSessions deletes expired sessions. It runs from the cron scheduler.
func (b *Backend) SweepSessions(ctx context.Context) (int64, error) {
	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	n, err := b.store.DeleteExpiredSessions(qctx, b.db, time.Now())
	return n, wrapStorageErr(err)
}

// CreateAccount creates a login account. When the role is collector a
// collector record with the given name is created alongside it.
func (b *Backend) CreateAccount(ctx context.Context, memberNumber, fullName, password string, role proto.Role, collectorName string) (proto.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return proto.User{}, err
	}

	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	var id int64
	if err := b.db.TransactionContext(qctx, func(tx *db.Tx) error {
		u, err := b.store.CreateUser(qctx, tx, memberNumber, fullName, hash, string(role))
		if err != nil {
			return db.WrapError(err)
		}
		id = u.ID

		if role == proto.RoleCollector {
			if _, err := b.store.CreateCollector(qctx, tx, collectorName, memberNumber); err != nil {
				return db.WrapError(err)
			}
		}

		return nil
	}); err != nil {
		return proto.User{}, err
	}

	return b.resolveUser(ctx, id)
}

// SetPassword replaces an account's password.
func (b *Backend) SetPassword(ctx context.Context, memberNumber, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	u, err := b.store.FindUserByMemberNumber(qctx, b.db, memberNumber)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return proto.ErrUserNotFound
		}
		return wrapStorageErr(err)
	}

	return wrapStorageErr(b.store.SetUserPassword(qctx, b.db, u.ID, hash))
}

// UserBySubject resolves a signed-link subject of the form
// "memberNumber#id" and checks that both halves still match the account.
func (b *Backend) UserBySubject(ctx context.Context, subject string) (*proto.User, error) {
	number, idStr, ok := strings.Cut(subject, "#")
	if !ok {
		return nil, proto.ErrUnauthorized
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, proto.ErrUnauthorized
	}

	user, err := b.UserByMemberNumber(ctx, number)
	if err != nil {
		if errors.Is(err, proto.ErrUserNotFound) {
			return nil, proto.ErrUnauthorized
		}
		return nil, err
	}

	if user.ID != id {
		return nil, proto.ErrUnauthorized
	}

	return &user, nil
}

// UserByMemberNumber looks up an account by member number.
func (b *Backend) UserByMemberNumber(ctx context.Context, number string) (proto.User, error) {
	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	u, err := b.store.FindUserByMemberNumber(qctx, b.db, number)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return proto.User{}, proto.ErrUserNotFound
		}
		return proto.User{}, wrapStorageErr(err)
	}

	return b.resolveUser(ctx, u.ID)
}

func (b *Backend) resolveUser(ctx context.Context, id int64) (proto.User, error) {
	qctx, cancel := b.queryContext(ctx)
	defer cancel()

	u, err := b.store.GetUserByID(qctx, b.db, id)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return proto.User{}, proto.ErrUserNotFound
		}
		return proto.User{}, wrapStorageErr(err)
	}

	user := proto.User{
		ID:           u.ID,
		MemberNumber: u.MemberNumber,
		FullName:     u.FullName,
		Role:         proto.Role(u.Role),
	}

	if user.IsCollector() {
		name, err := b.CollectorScope(ctx, u.MemberNumber)
		if err != nil && !errors.Is(err, proto.ErrScopeUnresolved) {
			return proto.User{}, err
		}
		user.CollectorName = name
	}

	return user, nil
}
