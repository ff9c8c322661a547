// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and scheduled with "@every" intervals
// taken from configuration.
//
// # Available Jobs
//
// 1. RequestExpiryJob - cancels pending requests older than the request TTL
// 2. DirectoryRefreshJob - reloads the cached driver directory snapshot
//
// # Usage
//
//	expiry, _ := jobs.NewRequestExpiryJob(expireHandler, ttl, time.Minute, 100, metrics, logger)
//	refresh, _ := jobs.NewDirectoryRefreshJob(cachedDirectory, 15*time.Second, metrics, logger)
//
//	jobManager := jobs.NewJobManager(refresh, expiry)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and counted; the next run is attempted on schedule.
// Every run is bounded by its interval so runs never pile up.
// Failed job starts stop any already running jobs.
package jobs
