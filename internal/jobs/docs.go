// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// OutboxRelayJob delivers committed order events. Every tick it runs the
// relay command, which locks a batch of pending outbox rows, publishes
// them to the event bus and marks them published. Failed rows stay
// pending and are retried on a later tick.
//
// # Usage
//
//	relay, err := jobs.NewOutboxRelayJob(handler, "*/2 * * * * *", 100, collector, logger)
//	if err != nil {
//		return err
//	}
//
//	manager := jobs.NewJobManager(logger, relay)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
package jobs
