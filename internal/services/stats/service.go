package stats

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"lootroll/internal/models"
	statsRepo "lootroll/internal/repositories/stats"
)

// Define errors
var (
	ErrNilConfig    = errors.New("config cannot be nil")
	ErrNilStatsRepo = errors.New("stats repository cannot be nil")
)

// service implements the Service interface
type service struct {
	statsRepo statsRepo.Repository
}

// New creates a new stats service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.StatsRepo == nil {
		return nil, ErrNilStatsRepo
	}

	return &service{
		statsRepo: cfg.StatsRepo,
	}, nil
}

// RecordOutcome applies one decided-session outcome to a participant's counters
func (s *service) RecordOutcome(ctx context.Context, input *RecordOutcomeInput) (*RecordOutcomeOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GuildID == "" || input.Participant == "" {
		return nil, errors.New("guild ID and participant are required")
	}

	stats, err := s.statsRepo.GetStats(ctx, &statsRepo.GetStatsInput{
		GuildID:     input.GuildID,
		Participant: input.Participant,
	})
	if err != nil {
		if !errors.Is(err, statsRepo.ErrStatsNotFound) {
			return nil, fmt.Errorf("failed to get stats: %w", err)
		}
		// First outcome for this participant
		stats = models.NewParticipantStats(input.GuildID, input.Participant)
	}

	if input.Won {
		stats.Wins++
	} else {
		stats.Losses++
	}

	stats.TotalSubmissions++
	stats.ValueSum += input.Value
	if input.Value > stats.HighestValue {
		stats.HighestValue = input.Value
	}
	if input.Value < stats.LowestValue {
		stats.LowestValue = input.Value
	}

	if err := s.statsRepo.SaveStats(ctx, &statsRepo.SaveStatsInput{
		Stats: stats,
	}); err != nil {
		return nil, fmt.Errorf("failed to save stats: %w", err)
	}

	return &RecordOutcomeOutput{
		Stats: stats,
	}, nil
}

// GetStats returns one participant's counters, or none if never recorded.
// Absence of data is a normal state, not a fault.
func (s *service) GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	stats, err := s.statsRepo.GetStats(ctx, &statsRepo.GetStatsInput{
		GuildID:     input.GuildID,
		Participant: input.Participant,
	})
	if err != nil {
		if errors.Is(err, statsRepo.ErrStatsNotFound) {
			return &GetStatsOutput{}, nil
		}
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return &GetStatsOutput{
		Stats: stats,
	}, nil
}

// GetAllStats returns every tracked participant's counters, sorted by wins
// descending. Ties in wins are broken by participant identifier ascending so
// the ordering is stable across calls.
func (s *service) GetAllStats(ctx context.Context, input *GetAllStatsInput) (*GetAllStatsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	result, err := s.statsRepo.ListStats(ctx, &statsRepo.ListStatsInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list stats: %w", err)
	}

	stats := result.Stats
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Wins != stats[j].Wins {
			return stats[i].Wins > stats[j].Wins
		}
		return stats[i].Participant < stats[j].Participant
	})

	return &GetAllStatsOutput{
		Stats: stats,
	}, nil
}
