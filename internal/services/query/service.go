package query

import (
	"context"
	"fmt"
	"time"

	"github.com/eventline-bot/eventline/internal/common/clock"
	"github.com/eventline-bot/eventline/internal/models"
	eventRepo "github.com/eventline-bot/eventline/internal/repositories/event"
	sessionRepo "github.com/eventline-bot/eventline/internal/repositories/session"
)

type serviceImpl struct {
	sessions sessionRepo.Repository
	events   eventRepo.Repository
	clock    clock.Clock
}

// New creates a new query service
func New(cfg *Config) (*serviceImpl, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.EventRepo == nil {
		return nil, ErrNilEventRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	return &serviceImpl{
		sessions: cfg.SessionRepo,
		events:   cfg.EventRepo,
		clock:    cfg.Clock,
	}, nil
}

func (s *serviceImpl) run(ctx context.Context, start, end time.Time) (Result, error) {
	out, err := s.events.QueryRange(ctx, &eventRepo.QueryRangeInput{Start: start, End: end})
	if err != nil {
		return Result{}, fmt.Errorf("failed to query events: %w", err)
	}

	return Result{
		Start:   start,
		End:     end,
		Events:  out.Events,
		Message: buildMessage(start, end, out.Events),
	}, nil
}

func (s *serviceImpl) QueryRange(ctx context.Context, input *QueryRangeInput) (*QueryRangeOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}
	if input.End.Before(input.Start) {
		return nil, fmt.Errorf("%w: end before start", ErrInvalidInput)
	}

	result, err := s.run(ctx, input.Start.UTC(), input.End.UTC())
	if err != nil {
		return nil, err
	}
	return &QueryRangeOutput{Result: result}, nil
}

func (s *serviceImpl) QueryDay(ctx context.Context, input *QueryDayInput) (*QueryDayOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	start := startOfDay(input.Day)
	result, err := s.run(ctx, start, endOfDay(start))
	if err != nil {
		return nil, err
	}
	return &QueryDayOutput{Result: result}, nil
}

func (s *serviceImpl) QueryRelative(ctx context.Context, input *QueryRelativeInput) (*QueryRelativeOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	now := s.clock.Now().UTC()
	today := startOfDay(now)

	var start, end time.Time
	switch input.Range {
	case RangeToday:
		start, end = today, endOfDay(today)
	case RangeNext7Days:
		start, end = today, endOfDay(today.AddDate(0, 0, 7))
	case RangeMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = endOfDay(start.AddDate(0, 1, -1))
	case RangeYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		end = endOfDay(time.Date(now.Year(), 12, 31, 0, 0, 0, 0, time.UTC))
	default:
		return nil, fmt.Errorf("%w: unknown range %q", ErrInvalidInput, input.Range)
	}

	result, err := s.run(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &QueryRelativeOutput{Result: result}, nil
}

func (s *serviceImpl) BeginRangeSelection(ctx context.Context, input *BeginRangeSelectionInput) (*BeginRangeSelectionOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	start := startOfDay(input.Start)
	_, err := s.sessions.Mutate(ctx, &sessionRepo.MutateInput{
		UserID: input.UserID,
		Fn: func(sess *models.Session) {
			sess.PendingQueryStart = &start
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record start date: %w", err)
	}

	return &BeginRangeSelectionOutput{Start: start}, nil
}

func (s *serviceImpl) CompleteRangeSelection(ctx context.Context, input *CompleteRangeSelectionInput) (*CompleteRangeSelectionOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	end := endOfDay(input.End)

	// Claim the pending start under the session lock. A rejected end date
	// keeps the start so the user only re-picks the end.
	var (
		start    *time.Time
		rejected bool
	)
	_, err := s.sessions.Mutate(ctx, &sessionRepo.MutateInput{
		UserID: input.UserID,
		Fn: func(sess *models.Session) {
			if sess.PendingQueryStart == nil {
				return
			}
			if end.Before(*sess.PendingQueryStart) {
				rejected = true
				return
			}
			start = sess.PendingQueryStart
			sess.PendingQueryStart = nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete range selection: %w", err)
	}
	if rejected {
		return &CompleteRangeSelectionOutput{Reject: "結束日期不能早於開始日期，請重新選擇"}, nil
	}
	if start == nil {
		return &CompleteRangeSelectionOutput{Reject: "請先選擇開始日期"}, nil
	}

	result, err := s.run(ctx, *start, end)
	if err != nil {
		// Put the start back so the user can retry, unless a new selection
		// has begun in the meantime.
		_, restoreErr := s.sessions.Mutate(ctx, &sessionRepo.MutateInput{
			UserID: input.UserID,
			Fn: func(sess *models.Session) {
				if sess.PendingQueryStart == nil {
					sess.PendingQueryStart = start
				}
			},
		})
		if restoreErr != nil {
			return nil, fmt.Errorf("%w (restore failed: %v)", err, restoreErr)
		}
		return nil, err
	}
	return &CompleteRangeSelectionOutput{Result: &result}, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}
