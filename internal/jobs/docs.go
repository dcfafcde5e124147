// Package jobs provides scheduled background tasks for the vendor portal.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// ImportBatchJob polls for Pending import batches every IMPORT_POLL_INTERVAL
// and processes at most IMPORT_MAX_BATCHES_PER_TICK of them, oldest first.
// Each record is committed together with the batch cursor, so a tick that is
// stopped halfway resumes at the next unprocessed record on the following
// run.
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(processImportBatchesHandler, 30*time.Second, 10, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Per-record failures are stored on the batch by the handler. Errors that
// reach the job are infrastructure faults: they are logged and the batch is
// retried on the next tick. Cancellation from StopAll is not logged.
package jobs
