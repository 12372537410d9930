// Package job holds the scheduled maintenance tasks run by the web server's
// cron scheduler.
package job

import (
	"gerisafe/database"
	"gerisafe/logger"
)

// CheckpointDBJob folds the SQLite WAL back into the main database file so
// the log does not grow without bound.
type CheckpointDBJob struct{}

func NewCheckpointDBJob() *CheckpointDBJob {
	return new(CheckpointDBJob)
}

// Run is the cron Job interface method.
func (j *CheckpointDBJob) Run() {
	if err := database.Checkpoint(); err != nil {
		logger.Warning("wal checkpoint job err:", err)
	}
}
