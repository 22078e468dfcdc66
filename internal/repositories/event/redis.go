package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/eventline-bot/eventline/internal/models"
)

const (
	// Key prefixes for Redis
	eventKeyPrefix = "event:"
	timeIndexKey   = "events_by_time"
)

// ErrEventNotFound is returned when an event is not found
var ErrEventNotFound = errors.New("event not found")

// Config holds configuration for the Redis event repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed event repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// CreateEvent persists a new event with a generated UUID. The event is stored
// as a JSON blob keyed by ID, with its timestamp indexed in a sorted set so
// range queries come back in ascending time order.
func (r *redisRepository) CreateEvent(ctx context.Context, input *CreateEventInput) (*CreateEventOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Name == "" {
		return nil, errors.New("event name cannot be empty")
	}

	if input.Time.IsZero() {
		return nil, errors.New("event time cannot be zero")
	}

	evt := &models.Event{
		ID:             uuid.New().String(),
		Name:           input.Name,
		Time:           input.Time.UTC().Truncate(time.Minute),
		Category:       input.Category,
		Importance:     input.Importance,
		Notes:          input.Notes,
		ReminderStatus: models.ReminderStatusPending,
		CreatedAt:      time.Now().UTC(),
	}

	if evt.Category == "" {
		evt.Category = models.CategoryEvent
	}

	if evt.Importance == "" {
		evt.Importance = models.ImportanceMedium
	}

	if err := r.saveEvent(ctx, evt); err != nil {
		return nil, err
	}

	return &CreateEventOutput{Event: evt}, nil
}

// QueryRange returns events whose time falls in [start, end], ascending.
func (r *redisRepository) QueryRange(ctx context.Context, input *QueryRangeInput) (*QueryRangeOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.End.Before(input.Start) {
		return nil, errors.New("end cannot be before start")
	}

	// The sorted set is scored by unix time, so the range comes back ascending.
	eventIDs, err := r.client.ZRangeByScore(ctx, timeIndexKey, &redis.ZRangeBy{
		Min: strconv.FormatInt(input.Start.UTC().Unix(), 10),
		Max: strconv.FormatInt(input.End.UTC().Unix(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query time index: %w", err)
	}

	if len(eventIDs) == 0 {
		return &QueryRangeOutput{Events: []*models.Event{}}, nil
	}

	// Fetch all events in one pipeline, preserving index order.
	pipe := r.client.Pipeline()
	commands := make([]*redis.StringCmd, 0, len(eventIDs))
	for _, eventID := range eventIDs {
		commands = append(commands, pipe.Get(ctx, eventKeyPrefix+eventID))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	events := make([]*models.Event, 0, len(eventIDs))
	for i, cmd := range commands {
		eventJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Event was deleted between reading the index and fetching it
				continue
			}
			return nil, fmt.Errorf("failed to get event %s: %w", eventIDs[i], err)
		}

		var evt models.Event
		if err := json.Unmarshal([]byte(eventJSON), &evt); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event %s: %w", eventIDs[i], err)
		}

		events = append(events, &evt)
	}

	return &QueryRangeOutput{Events: events}, nil
}

// UpdateReminderStatus changes the reminder status of a stored event.
func (r *redisRepository) UpdateReminderStatus(ctx context.Context, input *UpdateReminderStatusInput) error {
	if input == nil || input.EventID == "" {
		return errors.New("input and event ID cannot be empty")
	}

	eventJSON, err := r.client.Get(ctx, eventKeyPrefix+input.EventID).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	var evt models.Event
	if err := json.Unmarshal([]byte(eventJSON), &evt); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	evt.ReminderStatus = input.Status

	if err := r.saveEvent(ctx, &evt); err != nil {
		return err
	}

	return nil
}

// saveEvent writes the event blob and its time-index entry in one transaction.
func (r *redisRepository) saveEvent(ctx context.Context, evt *models.Event) error {
	eventJSON, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, eventKeyPrefix+evt.ID, eventJSON, 0)
	pipe.ZAdd(ctx, timeIndexKey, redis.Z{
		Score:  float64(evt.Time.Unix()),
		Member: evt.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	return nil
}
