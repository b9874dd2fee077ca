package worker

import "context"

// StatsRefresher rebuilds the cached statistics of a profile. It is satisfied
// by the stats service; declared here so this package does not import services.
type StatsRefresher interface {
	RefreshStats(ctx context.Context, profileID int64) error
}

// RefreshStatsJob recomputes a profile's cached statistics after a session ends.
type RefreshStatsJob struct {
	Refresher StatsRefresher
	ProfileID int64
}

func (j *RefreshStatsJob) Name() string { return "refresh_profile_stats" }

func (j *RefreshStatsJob) Run(ctx context.Context) error {
	return j.Refresher.RefreshStats(ctx, j.ProfileID)
}
