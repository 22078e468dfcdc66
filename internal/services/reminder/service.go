package reminder

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/eventline-bot/eventline/internal/common/clock"
	"github.com/eventline-bot/eventline/internal/models"
	eventRepo "github.com/eventline-bot/eventline/internal/repositories/event"
)

type serviceImpl struct {
	events     eventRepo.Repository
	notifier   Notifier
	clock      clock.Clock
	recipients []string
}

// New creates a new reminder service
func New(cfg *Config) (*serviceImpl, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.EventRepo == nil {
		return nil, ErrNilEventRepo
	}
	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	return &serviceImpl{
		events:     cfg.EventRepo,
		notifier:   cfg.Notifier,
		clock:      cfg.Clock,
		recipients: cfg.Recipients,
	}, nil
}

// SetNotifier swaps the delivery channel. Intended for wiring at startup,
// before the scheduler runs; it is not safe to call concurrently with Run.
func (s *serviceImpl) SetNotifier(n Notifier) {
	if n != nil {
		s.notifier = n
	}
}

func (s *serviceImpl) Run(ctx context.Context) (*RunOutput, error) {
	now := s.clock.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowEnd := today.AddDate(0, 0, lookaheadDays).Add(24*time.Hour - time.Second)

	queried, err := s.events.QueryRange(ctx, &eventRepo.QueryRangeInput{
		Start: today,
		End:   windowEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming events: %w", err)
	}

	var due []*models.Event
	for _, ev := range queried.Events {
		if ShouldRemind(ev.Importance, daysUntil(today, ev.Time)) {
			due = append(due, ev)
		}
	}

	out := &RunOutput{Reminded: len(due)}
	if len(due) == 0 {
		return out, nil
	}

	message := buildDigest(due)
	for _, userID := range s.recipients {
		if err := s.notifier.Push(ctx, userID, message); err != nil {
			log.Printf("failed to push reminder to %s: %v", userID, err)
			continue
		}
		out.Notified++
	}

	// High-importance events repeat daily, so only same-day events get
	// flagged as reminded.
	for _, ev := range due {
		if daysUntil(today, ev.Time) != 0 {
			continue
		}
		err := s.events.UpdateReminderStatus(ctx, &eventRepo.UpdateReminderStatusInput{
			EventID: ev.ID,
			Status:  models.ReminderStatusSent,
		})
		if err != nil {
			log.Printf("failed to mark event %s as reminded: %v", ev.ID, err)
			continue
		}
		out.Marked++
	}

	return out, nil
}

func (s *serviceImpl) ManualRemind(ctx context.Context, input *ManualRemindInput) (*ManualRemindOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.Run(ctx); err != nil {
		log.Printf("manual reminder sweep failed: %v", err)
		return &ManualRemindOutput{Message: "提醒發送過程中出錯，請稍後再試"}, nil
	}

	return &ManualRemindOutput{Message: "已手動觸發活動提醒，根據重要性發送了不同時間的提醒"}, nil
}

func daysUntil(today time.Time, eventTime time.Time) int {
	t := eventTime.UTC()
	eventDay := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(eventDay.Sub(today).Hours() / 24)
}

// buildDigest renders the reminder text, events grouped by day in ascending
// date order.
func buildDigest(events []*models.Event) string {
	byDate := make(map[string][]*models.Event)
	for _, ev := range events {
		day := ev.Time.UTC().Format("2006/01/02")
		byDate[day] = append(byDate[day], ev)
	}

	days := make([]string, 0, len(byDate))
	for day := range byDate {
		days = append(days, day)
	}
	sort.Strings(days)

	var b strings.Builder
	b.WriteString("📅 活動提醒：\n\n")

	for _, day := range days {
		fmt.Fprintf(&b, "📆 %s:\n", day)
		for _, ev := range byDate[day] {
			fmt.Fprintf(&b, "- %s (%s)\n", ev.Name, ev.Time.UTC().Format("15:04"))
			fmt.Fprintf(&b, "  [%s] %s\n", ev.Category, importanceBadge(ev.Importance))
			if ev.Notes != "" {
				fmt.Fprintf(&b, "  備註：%s\n", ev.Notes)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func importanceBadge(importance models.Importance) string {
	switch importance {
	case models.ImportanceHigh:
		return "🔴 高重要性"
	case models.ImportanceMedium:
		return "🟡 中重要性"
	default:
		return "🟢 低重要性"
	}
}
