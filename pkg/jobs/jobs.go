// Package jobs holds the background maintenance jobs the server runs on its
// cron scheduler, such as the expired session sweep.
package jobs

import (
	"context"
	"sync"
)

// Job is a registered maintenance job plus the scheduler entry it was
// assigned at startup.
type Job struct {
	ID     int
	Runner Runner
}

// Runner derives a job's cron spec and work function from the server
// context.
type Runner interface {
	Spec(context.Context) string
	Func(context.Context) func()
}

var (
	mtx      sync.Mutex
	registry = make(map[string]*Job)
)

// Register adds a maintenance job under a unique name. Jobs register
// themselves in init, so importing the package is enough to schedule them.
func Register(name string, runner Runner) {
	mtx.Lock()
	defer mtx.Unlock()
	registry[name] = &Job{Runner: runner}
}

// List returns a snapshot of the registered jobs by name. The *Job values
// are shared, so entry IDs assigned by the scheduler stick.
func List() map[string]*Job {
	mtx.Lock()
	defer mtx.Unlock()
	jobs := make(map[string]*Job, len(registry))
	for name, j := range registry {
		jobs[name] = j
	}
	return jobs
}
