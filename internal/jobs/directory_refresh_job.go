package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const directoryRefreshJobName = "directory_refresh"

// DirectoryRefresher reloads the driver snapshot and reports its size.
type DirectoryRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// SnapshotObserver is told the size of every loaded snapshot.
type SnapshotObserver interface {
	RunObserver
	DirectorySnapshot(available int)
}

// DirectoryRefreshJob keeps the cached driver directory warm so candidate searches rarely
// pay for a load.
type DirectoryRefreshJob struct {
	directory DirectoryRefresher
	every     time.Duration
	observer  SnapshotObserver
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewDirectoryRefreshJob(
	directory DirectoryRefresher,
	every time.Duration,
	observer SnapshotObserver,
	logger *slog.Logger,
) (*DirectoryRefreshJob, error) {
	if every <= 0 {
		return nil, fmt.Errorf("directory refresh interval must be positive, got %s", every)
	}
	return &DirectoryRefreshJob{
		directory: directory,
		every:     every,
		observer:  observer,
		cron:      cron.New(),
		logger:    logger.With("component", "directory_refresh_job"),
	}, nil
}

// Start loads the first snapshot and schedules the refreshes. A failed first load is
// logged, not fatal: the cache loads on demand as well.
func (j *DirectoryRefreshJob) Start() error {
	_ = j.Run(context.Background())

	if _, err := j.cron.AddFunc(everySpec(j.every), func() { _ = j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Directory refresh job started", "every", j.every)
	return nil
}

func (j *DirectoryRefreshJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.every)
	defer cancel()

	available, err := j.directory.Refresh(ctx)
	if j.observer != nil {
		j.observer.JobRun(directoryRefreshJobName, err)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Directory refresh failed", "error", err)
		return err
	}
	if j.observer != nil {
		j.observer.DirectorySnapshot(available)
	}
	j.logger.DebugContext(ctx, "Directory refreshed", "available", available)
	return nil
}

func (j *DirectoryRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Directory refresh job stopped")
}
