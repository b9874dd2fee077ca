package jobs

import (
	"github.com/vytor/arcade/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	statsPool *worker.Pool
	refresher worker.StatsRefresher
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(statsPool *worker.Pool, refresher worker.StatsRefresher) JobQueue {
	return &WorkerQueue{statsPool: statsPool, refresher: refresher}
}

func (q *WorkerQueue) EnqueueStatsRefresh(profileID int64) error {
	return q.statsPool.Submit(&worker.RefreshStatsJob{
		Refresher: q.refresher,
		ProfileID: profileID,
	})
}
