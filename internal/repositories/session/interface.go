package session

import "context"

// Repository is the per-user conversation state store. Get lazily creates an
// empty session on first access. Mutate applies fn under the user's lock so
// read-modify-write cycles are atomic against concurrent deliveries for the
// same user; no cross-user locking happens.
type Repository interface {
	// Get returns a copy of the user's session, creating it if absent
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Mutate atomically applies fn to the user's session and returns a copy
	Mutate(ctx context.Context, input *MutateInput) (*MutateOutput, error)

	// ClearFlow removes one flow's sub-state, leaving the rest of the session
	// intact, and reports whether anything was cleared
	ClearFlow(ctx context.Context, input *ClearFlowInput) (*ClearFlowOutput, error)
}
