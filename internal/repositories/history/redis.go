package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"lootroll/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	recordKeyPrefix  = "roll_record:"
	historyKeyPrefix = "roll_history:" // sorted set per guild, scored by end time
)

// ErrRecordNotFound is returned when a roll record is not found
var ErrRecordNotFound = errors.New("roll record not found")

// Config holds configuration for the Redis history repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed history repository
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

// AppendRecord persists a finalized roll record to Redis
func (r *redisRepository) AppendRecord(ctx context.Context, input *AppendRecordInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	record := input.Record
	if record.ID == "" {
		return errors.New("record ID cannot be empty")
	}
	if record.GuildID == "" {
		return errors.New("record guild ID cannot be empty")
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := r.client.Pipeline()

	recordKey := fmt.Sprintf("%s%s", recordKeyPrefix, record.ID)
	pipe.Set(ctx, recordKey, recordJSON, 0)

	// Index the record by end time for ordered history reads
	historyKey := fmt.Sprintf("%s%s", historyKeyPrefix, record.GuildID)
	pipe.ZAdd(ctx, historyKey, redis.Z{
		Score:  float64(record.EndTime.UnixNano()),
		Member: record.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}

	return nil
}

// ListRecords retrieves all records for a guild from Redis, most recent first
func (r *redisRepository) ListRecords(ctx context.Context, input *ListRecordsInput) (*ListRecordsOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	historyKey := fmt.Sprintf("%s%s", historyKeyPrefix, input.GuildID)
	recordIDs, err := r.client.ZRevRange(ctx, historyKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get record IDs: %w", err)
	}

	if len(recordIDs) == 0 {
		return &ListRecordsOutput{
			Records: []*models.RollRecord{},
		}, nil
	}

	// Fetch all records in one round trip
	pipe := r.client.Pipeline()
	recordCommands := make([]*redis.StringCmd, len(recordIDs))
	for i, recordID := range recordIDs {
		recordKey := fmt.Sprintf("%s%s", recordKeyPrefix, recordID)
		recordCommands[i] = pipe.Get(ctx, recordKey)
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}

	records := make([]*models.RollRecord, 0, len(recordIDs))
	for i, cmd := range recordCommands {
		recordJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Index entry without a record, skip it
				continue
			}
			return nil, fmt.Errorf("failed to get record %s: %w", recordIDs[i], err)
		}

		var record models.RollRecord
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record %s: %w", recordIDs[i], err)
		}

		records = append(records, &record)
	}

	return &ListRecordsOutput{
		Records: records,
	}, nil
}

// HasRecord reports whether a record with the same end time and item exists in Redis
func (r *redisRepository) HasRecord(ctx context.Context, input *HasRecordInput) (bool, error) {
	if input == nil || input.GuildID == "" {
		return false, errors.New("input and guild ID cannot be empty")
	}

	// Look up candidates sharing the exact end time score
	score := strconv.FormatInt(input.EndTime.UnixNano(), 10)
	historyKey := fmt.Sprintf("%s%s", historyKeyPrefix, input.GuildID)
	recordIDs, err := r.client.ZRangeByScore(ctx, historyKey, &redis.ZRangeBy{
		Min: score,
		Max: score,
	}).Result()
	if err != nil {
		return false, fmt.Errorf("failed to query history index: %w", err)
	}

	for _, recordID := range recordIDs {
		recordKey := fmt.Sprintf("%s%s", recordKeyPrefix, recordID)
		recordJSON, err := r.client.Get(ctx, recordKey).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return false, fmt.Errorf("failed to get record %s: %w", recordID, err)
		}

		var record models.RollRecord
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			return false, fmt.Errorf("failed to unmarshal record %s: %w", recordID, err)
		}

		if record.Item == input.Item {
			return true, nil
		}
	}

	return false, nil
}
