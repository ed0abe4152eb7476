package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/domains/blog/model"
)

// PublishScheduled flips every due post in one bulk update. The predicate
// (published = false AND scheduled_for <= now) excludes rows once flipped,
// so repeated or concurrent calls are safe.
func (s *blogService) PublishScheduled(ctx context.Context, now time.Time) (*model.SweepResult, error) {
	if now.IsZero() {
		now = s.now()
	}
	now = now.UTC()

	count, err := s.repo.PublishDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("publish scheduled blogs: %w", err)
	}

	if count > 0 {
		log.Info().Int64("published", count).Time("now", now).Msg("Scheduled blogs published")
	} else {
		log.Debug().Time("now", now).Msg("No scheduled blogs due")
	}

	return model.NewSweepResult(count), nil
}

func (s *blogService) CountScheduledDue(ctx context.Context, now time.Time) (int64, error) {
	if now.IsZero() {
		now = s.now()
	}

	count, err := s.repo.CountDue(ctx, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("count scheduled blogs: %w", err)
	}
	return count, nil
}
