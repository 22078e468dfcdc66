package query

import "context"

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks github.com/eventline-bot/eventline/internal/services/query Service

// Service answers event lookups over time ranges and drives the two-step
// date-range picker dialogue.
type Service interface {
	// QueryRange returns the events between two instants, inclusive
	QueryRange(ctx context.Context, input *QueryRangeInput) (*QueryRangeOutput, error)

	// QueryDay returns the events on a single calendar day
	QueryDay(ctx context.Context, input *QueryDayInput) (*QueryDayOutput, error)

	// QueryRelative resolves a named range against the current time and queries it
	QueryRelative(ctx context.Context, input *QueryRelativeInput) (*QueryRelativeOutput, error)

	// BeginRangeSelection remembers the chosen start date for the user
	BeginRangeSelection(ctx context.Context, input *BeginRangeSelectionInput) (*BeginRangeSelectionOutput, error)

	// CompleteRangeSelection pairs the end date with the remembered start and
	// runs the query; an end before the start is refused and the start kept
	CompleteRangeSelection(ctx context.Context, input *CompleteRangeSelectionInput) (*CompleteRangeSelectionOutput, error)
}
