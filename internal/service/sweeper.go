package service

import (
	"context"
	"sync"
	"time"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/logger"
	"impactolocal-backend/internal/repository"
)

// Sweeper transitions events whose scheduled date has passed into completed.
// It is invoked opportunistically before read paths, throttled to one run per
// interval process-wide, and coalesces concurrent callers onto a single
// in-flight sweep. All rate-limit state lives here, no ambient globals.
type Sweeper struct {
	eventRepo repository.EventRepository
	interval  time.Duration
	now       func() time.Time

	mu        sync.Mutex
	lastRunAt time.Time
	inflight  *sweepCall
}

type sweepCall struct {
	done   chan struct{}
	result *domain.SweepResult
	err    error
}

func NewSweeper(eventRepo repository.EventRepository, interval time.Duration, now func() time.Time) *Sweeper {
	if now == nil {
		now = time.Now
	}
	return &Sweeper{
		eventRepo: eventRepo,
		interval:  interval,
		now:       now,
	}
}

// EnsureSwept runs a sweep unless one ran within the interval. Callers
// arriving while a sweep is in flight wait for that sweep instead of
// starting another. Sweep failures are logged and swallowed — a read
// operation must never fail because its implicit sweep did.
func (s *Sweeper) EnsureSwept(ctx context.Context) {
	s.mu.Lock()
	if call := s.inflight; call != nil {
		s.mu.Unlock()
		<-call.done
		return
	}
	if s.now().Sub(s.lastRunAt) < s.interval {
		s.mu.Unlock()
		return
	}
	call := &sweepCall{done: make(chan struct{})}
	s.inflight = call
	s.mu.Unlock()

	call.result, call.err = s.Sweep(ctx, false)

	s.mu.Lock()
	s.lastRunAt = s.now()
	s.inflight = nil
	s.mu.Unlock()
	close(call.done)

	if call.err != nil {
		logger.Warn("Event completion sweep failed", "error", call.err)
	} else if call.result.CompletedCount > 0 {
		logger.Info("Event completion sweep finished", "completed", call.result.CompletedCount)
	}
}

// Sweep completes every open/closed event dated at or before now. With
// dryRun the candidates are reported as skipped and nothing is written.
// Re-running against an already-completed event is a no-op.
func (s *Sweeper) Sweep(ctx context.Context, dryRun bool) (*domain.SweepResult, error) {
	now := s.now()
	candidates, err := s.eventRepo.ListExpirable(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &domain.SweepResult{
		CompletedEventIDs: []int32{},
		SkippedEventIDs:   []int32{},
		ProcessedAt:       now,
	}
	expirable := []domain.EventStatus{domain.EventStatusOpen, domain.EventStatusClosed}
	for _, event := range candidates {
		if dryRun {
			result.SkippedEventIDs = append(result.SkippedEventIDs, event.ID)
			continue
		}
		completed, err := s.eventRepo.UpdateStatus(ctx, event.ID, expirable, domain.EventStatusCompleted)
		if err != nil {
			logger.Error("Failed to complete expired event", "event_id", event.ID, "error", err)
			result.SkippedEventIDs = append(result.SkippedEventIDs, event.ID)
			continue
		}
		if completed {
			result.CompletedEventIDs = append(result.CompletedEventIDs, event.ID)
		} else {
			// Another sweep got there first.
			result.SkippedEventIDs = append(result.SkippedEventIDs, event.ID)
		}
	}
	result.CompletedCount = int32(len(result.CompletedEventIDs))
	return result, nil
}
