package jobs

import (
	"context"

	"impactolocal-backend/internal/logger"
)

// CompleteExpiredEvents transitions events whose scheduled date has passed
// into completed. The same sweep runs opportunistically before reads; this
// cron entry guarantees it also happens with no traffic at all.
func (jr *JobRunner) CompleteExpiredEvents() {
	jr.runWithRecovery("CompleteExpiredEvents", func() {
		ctx := context.Background()

		result, err := jr.services.Sweeper.Sweep(ctx, false)
		if err != nil {
			logger.Error("Failed to complete expired events", "error", err)
			return
		}

		logger.Info("Completed expired events",
			"completed", result.CompletedCount,
			"skipped", len(result.SkippedEventIDs))
		for _, id := range result.CompletedEventIDs {
			logger.Debug("Event completed", "event_id", id)
		}
	})
}
