package jobs

import (
	"fmt"
)

// job is implemented by every scheduled job.
type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs []job
}

// NewJobManager creates a job manager. The settlement batch job is optional and may be nil.
func NewJobManager(dispatch *NotificationDispatchJob, batch *SettlementBatchJob) *JobManager {
	jm := &JobManager{}
	if dispatch != nil {
		jm.jobs = append(jm.jobs, dispatch)
	}
	if batch != nil {
		jm.jobs = append(jm.jobs, batch)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			// Stop already started jobs if this one fails
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start job %d: %w", i, err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}
