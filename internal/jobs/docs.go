// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use the six-field format with seconds.
//
// # Available Jobs
//
// 1. NotificationDispatchJob - Drains the notification outbox (every 30 seconds by default)
// 2. SettlementBatchJob - Batches billable unbatched orders into a settlement (weekly, opt-in)
//
// # Usage
//
//	dispatch := jobs.NewNotificationDispatchJob(dispatchHandler, "", 50, metrics, logger)
//	batch := jobs.NewSettlementBatchJob(batchHandler, "", lock, metrics, logger)
//	jobManager := jobs.NewJobManager(dispatch, batch)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Exclusivity
//
// The dispatch job claims outbox rows with SKIP LOCKED, so several instances can run it.
// The batch job may take a Redis lock; without one, the batcher's row locks still
// prevent an order from being batched twice.
//
// # Error Handling
//
// - Dispatch treats undelivered notifications as expected and only logs them
// - Storage errors are logged and counted as job failures
// - Failed job starts will stop any already running jobs
package jobs
