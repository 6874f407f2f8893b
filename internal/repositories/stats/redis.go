package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lootroll/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	statsKeyPrefix   = "stats:"         // stats:<guild>:<participant>
	membersKeyPrefix = "stats_members:" // set of tracked participants per guild
)

// ErrStatsNotFound is returned when a participant has no recorded stats
var ErrStatsNotFound = errors.New("participant stats not found")

// Config holds configuration for the Redis stats repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed stats repository
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

func statsKey(guildID, participant string) string {
	return fmt.Sprintf("%s%s:%s", statsKeyPrefix, guildID, participant)
}

// GetStats retrieves one participant's counters from Redis
func (r *redisRepository) GetStats(ctx context.Context, input *GetStatsInput) (*models.ParticipantStats, error) {
	if input == nil || input.GuildID == "" || input.Participant == "" {
		return nil, errors.New("input, guild ID and participant cannot be empty")
	}

	statsJSON, err := r.client.Get(ctx, statsKey(input.GuildID, input.Participant)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrStatsNotFound
		}
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	var stats models.ParticipantStats
	if err := json.Unmarshal([]byte(statsJSON), &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	return &stats, nil
}

// SaveStats persists one participant's counters to Redis
func (r *redisRepository) SaveStats(ctx context.Context, input *SaveStatsInput) error {
	if input == nil || input.Stats == nil {
		return errors.New("input and stats cannot be nil")
	}

	stats := input.Stats
	if stats.GuildID == "" || stats.Participant == "" {
		return errors.New("stats guild ID and participant cannot be empty")
	}

	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, statsKey(stats.GuildID, stats.Participant), statsJSON, 0)

	// Track the participant so ListStats can find them
	membersKey := fmt.Sprintf("%s%s", membersKeyPrefix, stats.GuildID)
	pipe.SAdd(ctx, membersKey, stats.Participant)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}

	return nil
}

// ListStats retrieves every tracked participant's counters for a guild from Redis
func (r *redisRepository) ListStats(ctx context.Context, input *ListStatsInput) (*ListStatsOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	membersKey := fmt.Sprintf("%s%s", membersKeyPrefix, input.GuildID)
	participants, err := r.client.SMembers(ctx, membersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get tracked participants: %w", err)
	}

	if len(participants) == 0 {
		return &ListStatsOutput{
			Stats: []*models.ParticipantStats{},
		}, nil
	}

	pipe := r.client.Pipeline()
	statsCommands := make(map[string]*redis.StringCmd, len(participants))
	for _, participant := range participants {
		statsCommands[participant] = pipe.Get(ctx, statsKey(input.GuildID, participant))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	allStats := make([]*models.ParticipantStats, 0, len(participants))
	for participant, cmd := range statsCommands {
		statsJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get stats for %s: %w", participant, err)
		}

		var stats models.ParticipantStats
		if err := json.Unmarshal([]byte(statsJSON), &stats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stats for %s: %w", participant, err)
		}

		allStats = append(allStats, &stats)
	}

	return &ListStatsOutput{
		Stats: allStats,
	}, nil
}
