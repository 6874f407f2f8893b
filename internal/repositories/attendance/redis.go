package attendance

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
	activeEventKeyPrefix = "active_event:"
	eventKeyPrefix       = "attendance_record:"
	eventIndexKeyPrefix  = "attendance_history:" // sorted set per guild, scored by end time
	participantKeyPrefix = "attendance:"         // attendance:<guild>:<participant>
	membersKeyPrefix     = "attendance_members:" // set of tracked participants per guild
)

var (
	// ErrEventNotFound is returned when a guild has no active attendance event
	ErrEventNotFound = errors.New("active attendance event not found")

	// ErrParticipantNotFound is returned when a participant has no attendance totals
	ErrParticipantNotFound = errors.New("participant attendance not found")
)

// Config holds configuration for the Redis attendance repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed attendance repository
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

func participantKey(guildID, participant string) string {
	return fmt.Sprintf("%s%s:%s", participantKeyPrefix, guildID, participant)
}

// GetActiveEvent retrieves the active attendance event for a guild from Redis
func (r *redisRepository) GetActiveEvent(ctx context.Context, input *GetActiveEventInput) (*models.AttendanceEvent, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	eventKey := fmt.Sprintf("%s%s", activeEventKeyPrefix, input.GuildID)
	eventJSON, err := r.client.Get(ctx, eventKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get active event: %w", err)
	}

	var event models.AttendanceEvent
	if err := json.Unmarshal([]byte(eventJSON), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &event, nil
}

// SaveActiveEvent persists the active attendance event for a guild to Redis
func (r *redisRepository) SaveActiveEvent(ctx context.Context, input *SaveActiveEventInput) error {
	if input == nil || input.Event == nil {
		return errors.New("input and event cannot be nil")
	}

	if input.Event.GuildID == "" {
		return errors.New("event guild ID cannot be empty")
	}

	eventJSON, err := json.Marshal(input.Event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	eventKey := fmt.Sprintf("%s%s", activeEventKeyPrefix, input.Event.GuildID)
	if err := r.client.Set(ctx, eventKey, eventJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save active event: %w", err)
	}

	return nil
}

// ClearActiveEvent removes the active attendance event for a guild from Redis
func (r *redisRepository) ClearActiveEvent(ctx context.Context, input *ClearActiveEventInput) error {
	if input == nil || input.GuildID == "" {
		return errors.New("input and guild ID cannot be empty")
	}

	eventKey := fmt.Sprintf("%s%s", activeEventKeyPrefix, input.GuildID)
	if err := r.client.Del(ctx, eventKey).Err(); err != nil {
		return fmt.Errorf("failed to clear active event: %w", err)
	}

	return nil
}

// AppendEvent persists an ended event record to Redis
func (r *redisRepository) AppendEvent(ctx context.Context, input *AppendEventInput) error {
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

	recordKey := fmt.Sprintf("%s%s", eventKeyPrefix, record.ID)
	pipe.Set(ctx, recordKey, recordJSON, 0)

	indexKey := fmt.Sprintf("%s%s", eventIndexKeyPrefix, record.GuildID)
	pipe.ZAdd(ctx, indexKey, redis.Z{
		Score:  float64(record.EndTime.UnixNano()),
		Member: record.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append event record: %w", err)
	}

	return nil
}

// ListEvents retrieves all ended events for a guild from Redis, most recent first
func (r *redisRepository) ListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	indexKey := fmt.Sprintf("%s%s", eventIndexKeyPrefix, input.GuildID)
	recordIDs, err := r.client.ZRevRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get event record IDs: %w", err)
	}

	if len(recordIDs) == 0 {
		return &ListEventsOutput{
			Records: []*models.AttendanceRecord{},
		}, nil
	}

	pipe := r.client.Pipeline()
	recordCommands := make([]*redis.StringCmd, len(recordIDs))
	for i, recordID := range recordIDs {
		recordKey := fmt.Sprintf("%s%s", eventKeyPrefix, recordID)
		recordCommands[i] = pipe.Get(ctx, recordKey)
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get event records: %w", err)
	}

	records := make([]*models.AttendanceRecord, 0, len(recordIDs))
	for i, cmd := range recordCommands {
		recordJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get event record %s: %w", recordIDs[i], err)
		}

		var record models.AttendanceRecord
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event record %s: %w", recordIDs[i], err)
		}

		records = append(records, &record)
	}

	return &ListEventsOutput{
		Records: records,
	}, nil
}

// CountEvents returns the number of ended events recorded for a guild
func (r *redisRepository) CountEvents(ctx context.Context, input *CountEventsInput) (int64, error) {
	if input == nil || input.GuildID == "" {
		return 0, errors.New("input and guild ID cannot be empty")
	}

	indexKey := fmt.Sprintf("%s%s", eventIndexKeyPrefix, input.GuildID)
	count, err := r.client.ZCard(ctx, indexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count event records: %w", err)
	}

	return count, nil
}

// HasEvent reports whether an event record with the same end time and name exists in Redis
func (r *redisRepository) HasEvent(ctx context.Context, input *HasEventInput) (bool, error) {
	if input == nil || input.GuildID == "" {
		return false, errors.New("input and guild ID cannot be empty")
	}

	score := strconv.FormatInt(input.EndTime.UnixNano(), 10)
	indexKey := fmt.Sprintf("%s%s", eventIndexKeyPrefix, input.GuildID)
	recordIDs, err := r.client.ZRangeByScore(ctx, indexKey, &redis.ZRangeBy{
		Min: score,
		Max: score,
	}).Result()
	if err != nil {
		return false, fmt.Errorf("failed to query event index: %w", err)
	}

	for _, recordID := range recordIDs {
		recordKey := fmt.Sprintf("%s%s", eventKeyPrefix, recordID)
		recordJSON, err := r.client.Get(ctx, recordKey).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return false, fmt.Errorf("failed to get event record %s: %w", recordID, err)
		}

		var record models.AttendanceRecord
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			return false, fmt.Errorf("failed to unmarshal event record %s: %w", recordID, err)
		}

		if record.Name == input.Name {
			return true, nil
		}
	}

	return false, nil
}

// GetParticipant retrieves one participant's lifetime totals from Redis
func (r *redisRepository) GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.ParticipantAttendance, error) {
	if input == nil || input.GuildID == "" || input.Participant == "" {
		return nil, errors.New("input, guild ID and participant cannot be empty")
	}

	participantJSON, err := r.client.Get(ctx, participantKey(input.GuildID, input.Participant)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant attendance: %w", err)
	}

	var participant models.ParticipantAttendance
	if err := json.Unmarshal([]byte(participantJSON), &participant); err != nil {
		return nil, fmt.Errorf("failed to unmarshal participant attendance: %w", err)
	}

	return &participant, nil
}

// SaveParticipant persists one participant's lifetime totals to Redis
func (r *redisRepository) SaveParticipant(ctx context.Context, input *SaveParticipantInput) error {
	if input == nil || input.Participant == nil {
		return errors.New("input and participant cannot be nil")
	}

	participant := input.Participant
	if participant.GuildID == "" || participant.Participant == "" {
		return errors.New("participant guild ID and identifier cannot be empty")
	}

	participantJSON, err := json.Marshal(participant)
	if err != nil {
		return fmt.Errorf("failed to marshal participant attendance: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, participantKey(participant.GuildID, participant.Participant), participantJSON, 0)

	membersKey := fmt.Sprintf("%s%s", membersKeyPrefix, participant.GuildID)
	pipe.SAdd(ctx, membersKey, participant.Participant)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save participant attendance: %w", err)
	}

	return nil
}

// ListParticipants retrieves every tracked participant's totals for a guild from Redis
func (r *redisRepository) ListParticipants(ctx context.Context, input *ListParticipantsInput) (*ListParticipantsOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	membersKey := fmt.Sprintf("%s%s", membersKeyPrefix, input.GuildID)
	members, err := r.client.SMembers(ctx, membersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get tracked participants: %w", err)
	}

	if len(members) == 0 {
		return &ListParticipantsOutput{
			Participants: []*models.ParticipantAttendance{},
		}, nil
	}

	pipe := r.client.Pipeline()
	participantCommands := make(map[string]*redis.StringCmd, len(members))
	for _, member := range members {
		participantCommands[member] = pipe.Get(ctx, participantKey(input.GuildID, member))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get participant attendance: %w", err)
	}

	participants := make([]*models.ParticipantAttendance, 0, len(members))
	for member, cmd := range participantCommands {
		participantJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get participant %s: %w", member, err)
		}

		var participant models.ParticipantAttendance
		if err := json.Unmarshal([]byte(participantJSON), &participant); err != nil {
			return nil, fmt.Errorf("failed to unmarshal participant %s: %w", member, err)
		}

		participants = append(participants, &participant)
	}

	return &ListParticipantsOutput{
		Participants: participants,
	}, nil
}
