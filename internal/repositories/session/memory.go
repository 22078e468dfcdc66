package session

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/eventline-bot/eventline/internal/common/clock"
	"github.com/eventline-bot/eventline/internal/models"
)

const shardCount = 32

// Config holds configuration for the in-memory session repository
type Config struct {
	// TTL is how long an idle session survives; refreshed on every access
	TTL time.Duration

	// JanitorInterval is how often expired sessions are swept; defaults to TTL/2
	JanitorInterval time.Duration

	// Clock for expiry decisions
	Clock clock.Clock
}

type entry struct {
	session   *models.Session
	expiresAt time.Time
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// memoryRepository implements Repository with a sharded in-process map.
// Sessions are conversation scratch state, not durable data; keeping them in
// process memory gives the per-user atomicity the flows need without a store
// round-trip, and the TTL janitor bounds memory growth.
type memoryRepository struct {
	shards [shardCount]*shard
	ttl    time.Duration
	clock  clock.Clock

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewMemory creates a new in-memory session repository and starts its janitor.
func NewMemory(cfg *Config) (*memoryRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	if cfg.TTL <= 0 {
		return nil, errors.New("TTL must be positive")
	}

	interval := cfg.JanitorInterval
	if interval <= 0 {
		interval = cfg.TTL / 2
	}

	r := &memoryRepository{
		ttl:   cfg.TTL,
		clock: cfg.Clock,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	for i := range r.shards {
		r.shards[i] = &shard{entries: make(map[string]*entry)}
	}

	go r.janitor(interval)

	return r, nil
}

// Close stops the janitor goroutine.
func (r *memoryRepository) Close() {
	r.stopOnce.Do(func() {
		close(r.stop)
		<-r.done
	})
}

// Get returns a copy of the user's session, creating an empty one on first
// access. It never fails for a valid user ID.
func (r *memoryRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	sh := r.shardFor(input.UserID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess := r.fetchOrCreateLocked(sh, input.UserID)
	return &GetOutput{Session: copySession(sess)}, nil
}

// Mutate applies fn to the session under its shard lock and returns a copy of
// the result. The session's expiry is refreshed.
func (r *memoryRepository) Mutate(ctx context.Context, input *MutateInput) (*MutateOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	if input.Fn == nil {
		return nil, errors.New("mutation fn cannot be nil")
	}

	sh := r.shardFor(input.UserID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess := r.fetchOrCreateLocked(sh, input.UserID)
	input.Fn(sess)
	sess.UpdatedAt = r.clock.Now().UTC()

	return &MutateOutput{Session: copySession(sess)}, nil
}

// ClearFlow removes the given flow's sub-state if it is the active one.
func (r *memoryRepository) ClearFlow(ctx context.Context, input *ClearFlowInput) (*ClearFlowOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	sh := r.shardFor(input.UserID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[input.UserID]
	if !ok {
		return &ClearFlowOutput{}, nil
	}

	sess := e.session
	if sess.Flow == nil || (input.Kind != models.FlowNone && sess.Flow.Kind != input.Kind) {
		return &ClearFlowOutput{}, nil
	}

	sess.Flow = nil
	sess.UpdatedAt = r.clock.Now().UTC()
	return &ClearFlowOutput{Cleared: true}, nil
}

func (r *memoryRepository) shardFor(userID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return r.shards[h.Sum32()%shardCount]
}

// fetchOrCreateLocked returns the live session for the user, resurrecting an
// expired one as fresh. Caller must hold the shard lock.
func (r *memoryRepository) fetchOrCreateLocked(sh *shard, userID string) *models.Session {
	now := r.clock.Now().UTC()

	e, ok := sh.entries[userID]
	if !ok || now.After(e.expiresAt) {
		e = &entry{
			session: &models.Session{
				UserID:    userID,
				UpdatedAt: now,
			},
		}
		sh.entries[userID] = e
	}

	e.expiresAt = now.Add(r.ttl)
	return e.session
}

func (r *memoryRepository) janitor(interval time.Duration) {
	defer close(r.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

func (r *memoryRepository) sweep() {
	now := r.clock.Now().UTC()
	for _, sh := range r.shards {
		sh.mu.Lock()
		for userID, e := range sh.entries {
			if now.After(e.expiresAt) {
				delete(sh.entries, userID)
			}
		}
		sh.mu.Unlock()
	}
}

// copySession returns a deep copy so callers never share pointers with the
// live entry.
func copySession(sess *models.Session) *models.Session {
	out := &models.Session{
		UserID:    sess.UserID,
		UpdatedAt: sess.UpdatedAt,
	}

	if sess.Flow != nil {
		flow := *sess.Flow
		flow.Draft = copyDraft(sess.Flow.Draft)
		out.Flow = &flow
	}

	if sess.PendingQueryStart != nil {
		start := *sess.PendingQueryStart
		out.PendingQueryStart = &start
	}

	return out
}

func copyDraft(d models.Draft) models.Draft {
	out := d
	if d.When != nil {
		when := *d.When
		out.When = &when
	}
	if d.Notes != nil {
		notes := *d.Notes
		out.Notes = &notes
	}
	return out
}
