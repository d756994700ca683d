package jobs

import (
	"testing"

	"github.com/matryer/is"
)

func TestRegistry(t *testing.T) {
	is := is.New(t)

	jobs := List()
	_, ok := jobs["session-sweep"]
	is.True(ok)

	// List hands out a snapshot, not the live registry.
	delete(jobs, "session-sweep")
	_, ok = List()["session-sweep"]
	is.True(ok)
}
