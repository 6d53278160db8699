package cron

import (
	"context"
	"fmt"
)

// Job is a unit of scheduled background work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Registry holds the jobs a worker executes each tick.
type Registry struct {
	jobs []Job
}

// NewRegistry returns an empty job registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a job, rejecting duplicates by name.
func (r *Registry) Register(job Job) error {
	if job == nil {
		return fmt.Errorf("job is nil")
	}
	if job.Name() == "" {
		return fmt.Errorf("job name is empty")
	}
	for _, existing := range r.jobs {
		if existing.Name() == job.Name() {
			return fmt.Errorf("job %q already registered", job.Name())
		}
	}
	r.jobs = append(r.jobs, job)
	return nil
}

// Jobs returns the registered jobs in registration order.
func (r *Registry) Jobs() []Job {
	return r.jobs
}
