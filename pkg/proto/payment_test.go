package proto

import (
	"testing"

	"github.com/matryer/is"
)

func TestParsePaymentType(t *testing.T) {
	is := is.New(t)

	for _, s := range []string{"membership", "Yearly", " other "} {
		_, err := ParsePaymentType(s)
		is.NoErr(err)
	}

	_, err := ParsePaymentType("weekly")
	is.True(err != nil)
}

func TestPaymentStatusIsFinal(t *testing.T) {
	is := is.New(t)
	is.True(!StatusPending.IsFinal())
	is.True(StatusApproved.IsFinal())
	is.True(StatusRejected.IsFinal())
}

func TestParseRole(t *testing.T) {
	is := is.New(t)

	r, err := ParseRole("Admin")
	is.NoErr(err)
	is.Equal(r, RoleAdmin)

	_, err = ParseRole("owner")
	is.True(err != nil)
}
