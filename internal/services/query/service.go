package query

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"lootroll/internal/models"
	historyRepo "lootroll/internal/repositories/history"
	attendanceService "lootroll/internal/services/attendance"
	settingsService "lootroll/internal/services/settings"
	statsService "lootroll/internal/services/stats"
)

// Define errors
var (
	ErrNilConfig            = errors.New("config cannot be nil")
	ErrNilHistoryRepo       = errors.New("history repository cannot be nil")
	ErrNilStatsService      = errors.New("stats service cannot be nil")
	ErrNilAttendanceService = errors.New("attendance service cannot be nil")
	ErrNilSettingsService   = errors.New("settings service cannot be nil")
)

// service implements the Service interface
type service struct {
	historyRepo       historyRepo.Repository
	statsService      statsService.Service
	attendanceService attendanceService.Service
	settingsService   settingsService.Service
}

// New creates a new query service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.HistoryRepo == nil {
		return nil, ErrNilHistoryRepo
	}

	if cfg.StatsService == nil {
		return nil, ErrNilStatsService
	}

	if cfg.AttendanceService == nil {
		return nil, ErrNilAttendanceService
	}

	if cfg.SettingsService == nil {
		return nil, ErrNilSettingsService
	}

	return &service{
		historyRepo:       cfg.HistoryRepo,
		statsService:      cfg.StatsService,
		attendanceService: cfg.AttendanceService,
		settingsService:   cfg.SettingsService,
	}, nil
}

// GetHistory returns finalized roll records narrowed by the filters
func (s *service) GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GuildID == "" {
		return nil, errors.New("guild ID is required")
	}

	listOutput, err := s.historyRepo.ListRecords(ctx, &historyRepo.ListRecordsInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	if input.Filters == nil {
		return &GetHistoryOutput{Records: listOutput.Records}, nil
	}

	matched := make([]*models.RollRecord, 0, len(listOutput.Records))
	for _, record := range listOutput.Records {
		if matchesFilters(record, input.Filters) {
			matched = append(matched, record)
		}
	}

	return &GetHistoryOutput{Records: matched}, nil
}

// matchesFilters reports whether a record passes every set filter.
// Date bounds are inclusive on both ends.
func matchesFilters(record *models.RollRecord, filters *HistoryFilters) bool {
	if filters.Winner != "" && record.Winner != filters.Winner {
		return false
	}

	if filters.Item != "" &&
		!strings.Contains(strings.ToLower(record.Item), strings.ToLower(filters.Item)) {
		return false
	}

	if filters.StartDate != nil && record.EndTime.Before(*filters.StartDate) {
		return false
	}

	if filters.EndDate != nil && record.EndTime.After(*filters.EndDate) {
		return false
	}

	return true
}

// GetLeaderboard joins stats with attendance rates into a priority ranking
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GuildID == "" {
		return nil, errors.New("guild ID is required")
	}

	weight, minEvents, err := s.priorityConfig(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	statsOutput, err := s.statsService.GetAllStats(ctx, &statsService.GetAllStatsInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	entries := make([]*LeaderboardEntry, 0, len(statsOutput.Stats))
	for _, st := range statsOutput.Stats {
		rateOutput, err := s.attendanceService.GetAttendanceRate(ctx, &attendanceService.GetAttendanceRateInput{
			GuildID:     input.GuildID,
			Participant: st.Participant,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get attendance rate: %w", err)
		}

		attendanceShare := 0.0
		if rateOutput.EventsAttended >= minEvents {
			attendanceShare = rateOutput.Rate
		}

		entries = append(entries, &LeaderboardEntry{
			Participant:    st.Participant,
			Wins:           st.Wins,
			Losses:         st.Losses,
			WinRate:        st.WinRate(),
			AttendanceRate: rateOutput.Rate,
			Priority:       (1-weight)*st.WinRate() + weight*attendanceShare,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Participant < entries[j].Participant
	})

	return &GetLeaderboardOutput{Entries: entries}, nil
}

// priorityConfig reads the attendance weight and minimum-event threshold.
// The settings service validates values on write, so parses here only
// fail on a corrupted store.
func (s *service) priorityConfig(ctx context.Context, guildID string) (float64, int, error) {
	weightOutput, err := s.settingsService.Get(ctx, &settingsService.GetInput{
		GuildID: guildID,
		Key:     settingsService.KeyAttendancePriorityWeight,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get attendance weight: %w", err)
	}

	weight, err := strconv.ParseFloat(weightOutput.Value, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid attendance weight %q: %w", weightOutput.Value, err)
	}

	minOutput, err := s.settingsService.Get(ctx, &settingsService.GetInput{
		GuildID: guildID,
		Key:     settingsService.KeyMinEventsForPriority,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get minimum event count: %w", err)
	}

	minEvents, err := strconv.Atoi(minOutput.Value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minimum event count %q: %w", minOutput.Value, err)
	}

	return weight, minEvents, nil
}
