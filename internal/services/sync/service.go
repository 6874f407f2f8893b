package sync

import (
	"context"
	"errors"
	"fmt"

	"lootroll/internal/models"
	attendanceRepo "lootroll/internal/repositories/attendance"
	historyRepo "lootroll/internal/repositories/history"
	statsService "lootroll/internal/services/stats"
)

// Define errors
var (
	ErrNilConfig         = errors.New("config cannot be nil")
	ErrNilHistoryRepo    = errors.New("history repository cannot be nil")
	ErrNilAttendanceRepo = errors.New("attendance repository cannot be nil")
	ErrNilStatsService   = errors.New("stats service cannot be nil")
)

// service implements the Service interface
type service struct {
	historyRepo    historyRepo.Repository
	attendanceRepo attendanceRepo.Repository
	statsService   statsService.Service
}

// New creates a new sync service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.HistoryRepo == nil {
		return nil, ErrNilHistoryRepo
	}

	if cfg.AttendanceRepo == nil {
		return nil, ErrNilAttendanceRepo
	}

	if cfg.StatsService == nil {
		return nil, ErrNilStatsService
	}

	return &service{
		historyRepo:    cfg.HistoryRepo,
		attendanceRepo: cfg.AttendanceRepo,
		statsService:   cfg.StatsService,
	}, nil
}

// MergeRollRecord appends a peer's roll record and applies its outcomes
func (s *service) MergeRollRecord(ctx context.Context, input *MergeRollRecordInput) (*MergeRollRecordOutput, error) {
	if input == nil || input.Record == nil {
		return nil, errors.New("record cannot be nil")
	}

	record := input.Record

	// End time plus item is the only natural key history has
	exists, err := s.historyRepo.HasRecord(ctx, &historyRepo.HasRecordInput{
		GuildID: record.GuildID,
		Item:    record.Item,
		EndTime: record.EndTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing record: %w", err)
	}
	if exists {
		return &MergeRollRecordOutput{Merged: false}, nil
	}

	if err := s.historyRepo.AppendRecord(ctx, &historyRepo.AppendRecordInput{
		Record: record,
	}); err != nil {
		return nil, fmt.Errorf("failed to append record: %w", err)
	}

	// Apply the same one-outcome-per-participant crediting the finalizing
	// peer applied locally, so stats stay aligned across peers
	seen := make(map[string]bool)
	for _, sub := range record.Submissions {
		if seen[sub.Participant] {
			continue
		}
		seen[sub.Participant] = true

		if _, err := s.statsService.RecordOutcome(ctx, &statsService.RecordOutcomeInput{
			GuildID:     record.GuildID,
			Participant: sub.Participant,
			Won:         sub.Participant == record.Winner,
			Value:       latestValue(record, sub.Participant),
		}); err != nil {
			return nil, fmt.Errorf("failed to record outcome for %s: %w", sub.Participant, err)
		}
	}

	return &MergeRollRecordOutput{Merged: true}, nil
}

// latestValue returns a participant's submission value from the highest
// round they rolled in
func latestValue(record *models.RollRecord, participant string) int {
	value := 0
	round := -1
	for _, sub := range record.Submissions {
		if sub.Participant == participant && sub.Round > round {
			round = sub.Round
			value = sub.Value
		}
	}
	return value
}

// MergeAttendanceRecord appends a peer's attendance record and credits
// every attendee
func (s *service) MergeAttendanceRecord(ctx context.Context, input *MergeAttendanceRecordInput) (*MergeAttendanceRecordOutput, error) {
	if input == nil || input.Record == nil {
		return nil, errors.New("record cannot be nil")
	}

	record := input.Record

	exists, err := s.attendanceRepo.HasEvent(ctx, &attendanceRepo.HasEventInput{
		GuildID: record.GuildID,
		Name:    record.Name,
		EndTime: record.EndTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing event: %w", err)
	}
	if exists {
		return &MergeAttendanceRecordOutput{Merged: false}, nil
	}

	if err := s.attendanceRepo.AppendEvent(ctx, &attendanceRepo.AppendEventInput{
		Record: record,
	}); err != nil {
		return nil, fmt.Errorf("failed to append event: %w", err)
	}

	for _, attendee := range record.Attendees {
		if err := s.creditAttendee(ctx, record.GuildID, attendee, record.Date); err != nil {
			return nil, err
		}
	}

	return &MergeAttendanceRecordOutput{Merged: true}, nil
}

// creditAttendee increments one attendee's lifetime totals
func (s *service) creditAttendee(ctx context.Context, guildID, participant, date string) error {
	totals, err := s.attendanceRepo.GetParticipant(ctx, &attendanceRepo.GetParticipantInput{
		GuildID:     guildID,
		Participant: participant,
	})
	if err != nil {
		if !errors.Is(err, attendanceRepo.ErrParticipantNotFound) {
			return fmt.Errorf("failed to get participant totals: %w", err)
		}
		totals = &models.ParticipantAttendance{
			GuildID:     guildID,
			Participant: participant,
		}
	}

	totals.TotalEvents++
	totals.Dates = append(totals.Dates, date)

	if err := s.attendanceRepo.SaveParticipant(ctx, &attendanceRepo.SaveParticipantInput{
		Participant: totals,
	}); err != nil {
		return fmt.Errorf("failed to save participant totals: %w", err)
	}

	return nil
}
