package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const requestExpiryJobName = "request_expiry"

// ExpiryHandler is the part of commands.ExpireStaleRequestsCommandHandler the job needs.
type ExpiryHandler interface {
	Handle(ctx context.Context, cmd commands.ExpireStaleRequestsCommand) (commands.ExpiryResult, error)
}

// RunObserver is told about every job run.
type RunObserver interface {
	JobRun(job string, err error)
}

// RequestExpiryJob cancels pending requests nobody accepted within the TTL.
type RequestExpiryJob struct {
	handler  ExpiryHandler
	cmd      commands.ExpireStaleRequestsCommand
	every    time.Duration
	timeout  time.Duration
	observer RunObserver
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRequestExpiryJob runs the expiry handler every interval, handling up to batchSize
// requests per run.
func NewRequestExpiryJob(
	handler ExpiryHandler,
	ttl, every time.Duration,
	batchSize int,
	observer RunObserver,
	logger *slog.Logger,
) (*RequestExpiryJob, error) {
	cmd, err := commands.NewExpireStaleRequestsCommand(ttl, batchSize)
	if err != nil {
		return nil, err
	}
	if every <= 0 {
		return nil, fmt.Errorf("request expiry interval must be positive, got %s", every)
	}
	return &RequestExpiryJob{
		handler:  handler,
		cmd:      cmd,
		every:    every,
		timeout:  every,
		observer: observer,
		cron:     cron.New(),
		logger:   logger.With("component", "request_expiry_job"),
	}, nil
}

// Start schedules the job.
func (j *RequestExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(everySpec(j.every), func() { _ = j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Request expiry job started", "every", j.every, "ttl", j.cmd.TTL())
	return nil
}

// Run performs one expiry pass. Each pass is bounded by the job interval.
func (j *RequestExpiryJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	result, err := j.handler.Handle(ctx, j.cmd)
	if j.observer != nil {
		j.observer.JobRun(requestExpiryJobName, err)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Request expiry job failed",
			"error", err, "expired", result.Expired, "skipped", result.Skipped)
		return err
	}
	if result.Expired > 0 || result.Skipped > 0 {
		j.logger.InfoContext(ctx, "Expired stale requests", "expired", result.Expired, "skipped", result.Skipped)
	}
	return nil
}

// Stop stops the job and waits for a running pass to finish.
func (j *RequestExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Request expiry job stopped")
}

func everySpec(d time.Duration) string {
	return "@every " + d.String()
}
