package backend

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lodgeworks/lodged/pkg/proto"
	"github.com/matryer/is"
)

func TestHashPassword(t *testing.T) {
	is := is.New(t)

	hash, err := HashPassword("hunter2")
	is.NoErr(err)
	is.True(hash != "hunter2")
	is.True(VerifyPassword("hunter2", hash))
	is.True(!VerifyPassword("wrong", hash))
}

func TestGenerateToken(t *testing.T) {
	is := is.New(t)

	tok := GenerateToken()
	is.True(strings.HasPrefix(tok, "ld_"))
	is.True(tok != GenerateToken())
	is.True(HashToken(tok) != tok)
}

func TestAuthenticate(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	_, err := b.CreateAccount(ctx, "M1", "Jane Doe", "hunter2", proto.RoleMember, "")
	is.NoErr(err)

	token, user, err := b.Authenticate(ctx, "M1", "hunter2")
	is.NoErr(err)
	is.True(token != "")
	is.Equal(user.MemberNumber, "M1")
	is.Equal(user.Role, proto.RoleMember)

	// The token round-trips back to the same identity.
	got, err := b.UserForToken(ctx, token)
	is.NoErr(err)
	is.Equal(got.MemberNumber, "M1")

	_, _, err = b.Authenticate(ctx, "M1", "wrong")
	is.True(errors.Is(err, proto.ErrUnauthorized))

	_, _, err = b.Authenticate(ctx, "M9", "hunter2")
	is.True(errors.Is(err, proto.ErrUnauthorized))
}

func TestCollectorIdentityCarriesScope(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	// Creating a collector account also creates the collector record, and
	// the identity resolves the collector name server-side from it.
	_, err := b.CreateAccount(ctx, "C3", "Carol Croft", "hunter2", proto.RoleCollector, "East")
	is.NoErr(err)

	token, user, err := b.Authenticate(ctx, "C3", "hunter2")
	is.NoErr(err)
	is.Equal(user.Role, proto.RoleCollector)
	is.Equal(user.CollectorName, "East")

	got, err := b.UserForToken(ctx, token)
	is.NoErr(err)
	is.Equal(got.CollectorName, "East")
}

func TestLogout(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	_, err := b.CreateAccount(ctx, "M1", "Jane Doe", "hunter2", proto.RoleMember, "")
	is.NoErr(err)

	token, _, err := b.Authenticate(ctx, "M1", "hunter2")
	is.NoErr(err)

	is.NoErr(b.Logout(ctx, token))
	_, err = b.UserForToken(ctx, token)
	is.True(errors.Is(err, proto.ErrUnauthorized))

	// Logging out an unknown token is a no-op.
	is.NoErr(b.Logout(ctx, "ld_nope"))
}

func TestSetPassword(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	_, err := b.CreateAccount(ctx, "M1", "Jane Doe", "hunter2", proto.RoleMember, "")
	is.NoErr(err)

	is.NoErr(b.SetPassword(ctx, "M1", "newpass"))

	_, _, err = b.Authenticate(ctx, "M1", "hunter2")
	is.True(errors.Is(err, proto.ErrUnauthorized))
	_, _, err = b.Authenticate(ctx, "M1", "newpass")
	is.NoErr(err)

	is.True(errors.Is(b.SetPassword(ctx, "M9", "x"), proto.ErrUserNotFound))
}

func TestUserForTokenUnknown(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	_, err := b.UserForToken(ctx, "ld_nope")
	is.True(errors.Is(err, proto.ErrUnauthorized))
}

func TestSweepSessions(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	_, err := b.CreateAccount(ctx, "M1", "Jane Doe", "hunter2", proto.RoleMember, "")
	is.NoErr(err)
	_, _, err = b.Authenticate(ctx, "M1", "hunter2")
	is.NoErr(err)

	// Nothing has expired yet.
	n, err := b.SweepSessions(ctx)
	is.NoErr(err)
	is.Equal(n, int64(0))
}

func TestUserBySubject(t *testing.T) {
	is := is.New(t)
	ctx, b := setupBackend(t)

	user, err := b.CreateAccount(ctx, "M1", "Jane Doe", "hunter2", proto.RoleMember, "")
	is.NoErr(err)

	got, err := b.UserBySubject(ctx, subjectFor(user))
	is.NoErr(err)
	is.Equal(got.MemberNumber, "M1")

	_, err = b.UserBySubject(ctx, "M1")
	is.True(errors.Is(err, proto.ErrUnauthorized))

	_, err = b.UserBySubject(ctx, "M1#999")
	is.True(errors.Is(err, proto.ErrUnauthorized))
}

func subjectFor(u proto.User) string {
	return fmt.Sprintf("%s#%d", u.MemberNumber, u.ID)
}
