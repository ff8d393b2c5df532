package jobs

import (
	"time"

	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/repository"
	"agrirent-backend/internal/storage"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	equipment   repository.EquipmentRepository
	store       storage.ObjectStore
	orphanGrace time.Duration
	now         func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(equipment repository.EquipmentRepository, store storage.ObjectStore, orphanGrace time.Duration) *JobRunner {
	return &JobRunner{
		equipment:   equipment,
		store:       store,
		orphanGrace: orphanGrace,
		now:         time.Now,
	}
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	start := jr.now()
	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName, "duration", jr.now().Sub(start))
}

// RunAll runs every maintenance job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.SweepOrphanUploads()
}
