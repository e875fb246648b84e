// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment service.
//
// # Available Jobs
//
// 1. AutoFulfillmentJob - Runs every 30 seconds to push imported orders through the fulfillment pipeline
// 2. StaleClaimReleaseJob - Runs every minute to requeue print jobs whose agent claim lease expired
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(backlogQuery, fulfillHandler, releaseHandler, true, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The fulfillment sweep is deliberately infrequent: rate shopping and label
// purchase call the carrier API, so a tight loop would hammer it for no
// benefit. The stale claim sweep runs on minute boundaries because the claim
// lease is measured in minutes.
//
// # Error Handling
//
// - The fulfillment sweep logs per-order failures and continues; failed orders
//   leave the backlog until an operator retries them
// - The stale claim sweep logs errors and retries on the next tick
// - Failed job starts will stop any already running jobs
package jobs
