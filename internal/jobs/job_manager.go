package jobs

import (
	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// Job is a scheduled background task.
type Job interface {
	Name() string
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs   []Job
	logger *zap.Logger
}

func NewJobManager(logger *zap.Logger, jobs ...Job) *JobManager {
	return &JobManager{
		jobs:   jobs,
		logger: logger.Named("jobs"),
	}
}

// StartAll starts jobs in order. If one fails, the ones already started
// are stopped again.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return errors.Wrapf(err, "start %s job", job.Name())
		}
	}

	jm.logger.Info("Jobs started", zap.Int("count", len(jm.jobs)))
	return nil
}

// StopAll stops jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}
