package jobs

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lodgeworks/lodged/pkg/backend"
	"github.com/lodgeworks/lodged/pkg/config"
)

func init() {
	Register("session-sweep", sessionSweep{})
}

// sessionSweep deletes expired login sessions on a schedule.
type sessionSweep struct{}

func (sessionSweep) Spec(ctx context.Context) string {
	return config.FromContext(ctx).Jobs.SessionSweep
}

func (sessionSweep) Func(ctx context.Context) func() {
	logger := log.FromContext(ctx).WithPrefix("jobs.sessions")
	b := backend.FromContext(ctx)
	return func() {
		n, err := b.SweepSessions(ctx)
		if err != nil {
			logger.Error("error sweeping sessions", "err", err)
			return
		}

		if n > 0 {
			logger.Info("swept expired sessions", "count", n)
		}
	}
}
