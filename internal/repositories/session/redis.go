package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lootroll/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for the per-guild active session slot
	activeSessionKeyPrefix = "active_session:"
)

// ErrSessionNotFound is returned when a guild has no active session
var ErrSessionNotFound = errors.New("active session not found")

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
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

// GetActiveSession retrieves the active session for a guild from Redis
func (r *redisRepository) GetActiveSession(ctx context.Context, input *GetActiveSessionInput) (*models.RollSession, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	sessionKey := fmt.Sprintf("%s%s", activeSessionKeyPrefix, input.GuildID)
	sessionJSON, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}

	var session models.RollSession
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// SaveActiveSession persists the active session for a guild to Redis
func (r *redisRepository) SaveActiveSession(ctx context.Context, input *SaveActiveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if input.Session.GuildID == "" {
		return errors.New("session guild ID cannot be empty")
	}

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	sessionKey := fmt.Sprintf("%s%s", activeSessionKeyPrefix, input.Session.GuildID)
	if err := r.client.Set(ctx, sessionKey, sessionJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save active session: %w", err)
	}

	return nil
}

// ClearActiveSession removes the active session for a guild from Redis
func (r *redisRepository) ClearActiveSession(ctx context.Context, input *ClearActiveSessionInput) error {
	if input == nil || input.GuildID == "" {
		return errors.New("input and guild ID cannot be empty")
	}

	sessionKey := fmt.Sprintf("%s%s", activeSessionKeyPrefix, input.GuildID)
	if err := r.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("failed to clear active session: %w", err)
	}

	return nil
}
