package flow

import (
	"context"
	"fmt"
	"strings"

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

// New creates a new flow service
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

func (s *serviceImpl) StartFlow(ctx context.Context, input *StartFlowInput) (*StartFlowOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidInput
	}
	if input.Kind != models.FlowGuided && input.Kind != models.FlowForm {
		return nil, fmt.Errorf("%w: unknown flow kind %q", ErrInvalidInput, input.Kind)
	}

	var prompt Prompt
	_, err := s.sessions.Mutate(ctx, &sessionRepo.MutateInput{
		UserID: input.UserID,
		Fn: func(sess *models.Session) {
			sess.Flow = &models.FlowState{
				Kind: input.Kind,
				Step: models.StepSelectingDateTime,
			}
			prompt = promptFor(sess.Flow)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start flow: %w", err)
	}

	return &StartFlowOutput{Prompt: prompt}, nil
}

func (s *serviceImpl) Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	now := s.clock.Now()

	var (
		prompt Prompt
		noFlow bool
	)
	_, err := s.sessions.Mutate(ctx, &sessionRepo.MutateInput{
		UserID: input.UserID,
		Fn: func(sess *models.Session) {
			if sess.Flow == nil {
				noFlow = true
				return
			}
			prompt = applyIntent(sess.Flow, input.Intent, now)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to advance flow: %w", err)
	}
	if noFlow {
		return nil, ErrNoActiveFlow
	}

	return &AdvanceOutput{Prompt: prompt}, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, input *ConfirmInput) (*ConfirmOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	now := s.clock.Now()

	// Take the draft and clear the flow in one atomic step so a duplicated
	// confirm tap cannot commit the same draft twice.
	var (
		taken       *models.FlowState
		noFlow      bool
		missingName bool
	)
	_, err := s.sessions.Mutate(ctx, &sessionRepo.MutateInput{
		UserID: input.UserID,
		Fn: func(sess *models.Session) {
			if sess.Flow == nil || (input.Kind != models.FlowNone && sess.Flow.Kind != input.Kind) {
				noFlow = true
				return
			}
			fillDefaults(&sess.Flow.Draft, now)
			if sess.Flow.Draft.Name == "" {
				missingName = true
				return
			}
			snapshot := *sess.Flow
			snapshot.Draft = snapshotDraft(sess.Flow.Draft)
			taken = &snapshot
			sess.Flow = nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to confirm flow: %w", err)
	}
	if noFlow {
		return nil, ErrNoActiveFlow
	}
	if missingName {
		return nil, ErrMissingName
	}

	notes := ""
	if taken.Draft.Notes != nil {
		notes = *taken.Draft.Notes
	}

	created, err := s.events.CreateEvent(ctx, &eventRepo.CreateEventInput{
		Name:       taken.Draft.Name,
		Time:       *taken.Draft.When,
		Category:   taken.Draft.Category,
		Importance: taken.Draft.Importance,
		Notes:      notes,
	})
	if err != nil {
		// Put the draft back so the user can retry, unless a new flow has
		// started in the meantime.
		_, restoreErr := s.sessions.Mutate(ctx, &sessionRepo.MutateInput{
			UserID: input.UserID,
			Fn: func(sess *models.Session) {
				if sess.Flow == nil {
					sess.Flow = taken
				}
			},
		})
		if restoreErr != nil {
			return nil, fmt.Errorf("failed to create event: %w (restore failed: %v)", err, restoreErr)
		}
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return &ConfirmOutput{Event: created.Event}, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	cleared, err := s.sessions.ClearFlow(ctx, &sessionRepo.ClearFlowInput{
		UserID: input.UserID,
		Kind:   input.Kind,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel flow: %w", err)
	}

	return &CancelOutput{Cancelled: cleared.Cleared}, nil
}

func (s *serviceImpl) CreateEvent(ctx context.Context, input *CreateEventInput) (*CreateEventOutput, error) {
	if input == nil || strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidInput
	}

	importance := models.ImportanceMedium
	if label := strings.TrimSpace(input.Importance); label != "" {
		importance = models.Importance(label)
		if !importance.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidImportance, label)
		}
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = models.CategoryEvent
	} else if !models.ValidCategory(category) {
		category = models.CategoryOther
	}

	created, err := s.events.CreateEvent(ctx, &eventRepo.CreateEventInput{
		Name:       strings.TrimSpace(input.Name),
		Time:       input.When,
		Category:   category,
		Importance: importance,
		Notes:      normalizeNotes(input.Notes),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return &CreateEventOutput{Event: created.Event}, nil
}
