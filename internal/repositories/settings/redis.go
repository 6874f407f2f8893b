package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for the per-guild settings hash
	settingsKeyPrefix = "settings:"
)

// ErrSettingNotFound is returned when a setting has no stored value
var ErrSettingNotFound = errors.New("setting not found")

// Config holds configuration for the Redis settings repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed settings repository
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

// GetSetting retrieves one stored setting value from Redis
func (r *redisRepository) GetSetting(ctx context.Context, input *GetSettingInput) (string, error) {
	if input == nil || input.GuildID == "" || input.Key == "" {
		return "", errors.New("input, guild ID and key cannot be empty")
	}

	settingsKey := fmt.Sprintf("%s%s", settingsKeyPrefix, input.GuildID)
	value, err := r.client.HGet(ctx, settingsKey, input.Key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrSettingNotFound
		}
		return "", fmt.Errorf("failed to get setting: %w", err)
	}

	return value, nil
}

// SetSetting stores one setting value in Redis
func (r *redisRepository) SetSetting(ctx context.Context, input *SetSettingInput) error {
	if input == nil || input.GuildID == "" || input.Key == "" {
		return errors.New("input, guild ID and key cannot be empty")
	}

	settingsKey := fmt.Sprintf("%s%s", settingsKeyPrefix, input.GuildID)
	if err := r.client.HSet(ctx, settingsKey, input.Key, input.Value).Err(); err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}

	return nil
}

// GetAllSettings retrieves every explicitly stored setting for a guild from Redis
func (r *redisRepository) GetAllSettings(ctx context.Context, input *GetAllSettingsInput) (map[string]string, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	settingsKey := fmt.Sprintf("%s%s", settingsKeyPrefix, input.GuildID)
	values, err := r.client.HGetAll(ctx, settingsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return values, nil
}
