package attendance

import (
	"context"
	"errors"
	"fmt"

	"lootroll/internal/common/clock"
	"lootroll/internal/common/uuid"
	"lootroll/internal/models"
	attendanceRepo "lootroll/internal/repositories/attendance"
)

// service implements the Service interface
type service struct {
	attendanceRepo attendanceRepo.Repository
	clock          clock.Clock
	uuidGenerator  uuid.UUID
	recordSink     RecordSink
}

// New creates a new attendance service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.AttendanceRepo == nil {
		return nil, ErrNilAttendanceRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		attendanceRepo: cfg.AttendanceRepo,
		clock:          cfg.Clock,
		uuidGenerator:  cfg.UUIDGenerator,
		recordSink:     cfg.RecordSink,
	}, nil
}

// getEvent loads the active event, mapping the repository's not-found error
// to the service-level one.
func (s *service) getEvent(ctx context.Context, guildID string) (*models.AttendanceEvent, error) {
	event, err := s.attendanceRepo.GetActiveEvent(ctx, &attendanceRepo.GetActiveEventInput{
		GuildID: guildID,
	})
	if err != nil {
		if errors.Is(err, attendanceRepo.ErrEventNotFound) {
			return nil, ErrNoActiveEvent
		}
		return nil, fmt.Errorf("failed to get active event: %w", err)
	}
	return event, nil
}

// StartEvent opens a new attendance event
func (s *service) StartEvent(ctx context.Context, input *StartEventInput) (*StartEventOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.GuildID == "" || input.Name == "" || input.StartedBy == "" {
		return nil, errors.New("guild ID, name and starter are required")
	}

	_, err := s.attendanceRepo.GetActiveEvent(ctx, &attendanceRepo.GetActiveEventInput{
		GuildID: input.GuildID,
	})
	if err == nil {
		return nil, ErrEventAlreadyActive
	}
	if !errors.Is(err, attendanceRepo.ErrEventNotFound) {
		return nil, fmt.Errorf("failed to check active event: %w", err)
	}

	now := s.clock.Now()
	event := &models.AttendanceEvent{
		GuildID:   input.GuildID,
		Name:      input.Name,
		StartedBy: input.StartedBy,
		StartTime: now,
		Date:      now.Format(models.AttendanceDateFormat),
	}

	if err := s.attendanceRepo.SaveActiveEvent(ctx, &attendanceRepo.SaveActiveEventInput{
		Event: event,
	}); err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}

	return &StartEventOutput{
		Event: event.Clone(),
	}, nil
}

// AddAttendee adds a participant to the active event's roster.
// Insertion order is preserved; duplicates are rejected.
func (s *service) AddAttendee(ctx context.Context, input *AddAttendeeInput) (*AddAttendeeOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.Participant == "" {
		return nil, errors.New("participant is required")
	}

	event, err := s.getEvent(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	if event.HasAttendee(input.Participant) {
		return nil, ErrDuplicateAttendee
	}

	event.Attendees = append(event.Attendees, input.Participant)

	if err := s.attendanceRepo.SaveActiveEvent(ctx, &attendanceRepo.SaveActiveEventInput{
		Event: event,
	}); err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}

	return &AddAttendeeOutput{
		Event: event.Clone(),
	}, nil
}

// RemoveAttendee removes a participant from the active event's roster
func (s *service) RemoveAttendee(ctx context.Context, input *RemoveAttendeeInput) (*RemoveAttendeeOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.Participant == "" {
		return nil, errors.New("participant is required")
	}

	event, err := s.getEvent(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	found := false
	attendees := make([]string, 0, len(event.Attendees))
	for _, a := range event.Attendees {
		if a == input.Participant {
			found = true
			continue
		}
		attendees = append(attendees, a)
	}
	if !found {
		return nil, ErrAttendeeNotFound
	}
	event.Attendees = attendees

	if err := s.attendanceRepo.SaveActiveEvent(ctx, &attendanceRepo.SaveActiveEventInput{
		Event: event,
	}); err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}

	return &RemoveAttendeeOutput{
		Event: event.Clone(),
	}, nil
}

// EndEvent closes the active event. The roster becomes an immutable history
// record and every attendee's lifetime totals are credited.
func (s *service) EndEvent(ctx context.Context, input *EndEventInput) (*EndEventOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	event, err := s.getEvent(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	record := &models.AttendanceRecord{
		ID:        s.uuidGenerator.NewUUID(),
		GuildID:   event.GuildID,
		Name:      event.Name,
		StartedBy: event.StartedBy,
		StartTime: event.StartTime,
		EndTime:   s.clock.Now(),
		Date:      event.Date,
		Attendees: append([]string(nil), event.Attendees...),
	}

	if err := s.attendanceRepo.AppendEvent(ctx, &attendanceRepo.AppendEventInput{
		Record: record,
	}); err != nil {
		return nil, fmt.Errorf("failed to append event record: %w", err)
	}

	for _, attendee := range record.Attendees {
		if err := s.creditAttendee(ctx, record.GuildID, attendee, record.Date); err != nil {
			return nil, err
		}
	}

	if err := s.attendanceRepo.ClearActiveEvent(ctx, &attendanceRepo.ClearActiveEventInput{
		GuildID: input.GuildID,
	}); err != nil {
		return nil, fmt.Errorf("failed to clear event: %w", err)
	}

	// Broadcast is best effort; the record is already durable
	if s.recordSink != nil {
		_ = s.recordSink.PublishAttendanceRecord(ctx, record)
	}

	return &EndEventOutput{
		Record: record,
	}, nil
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

// Cancel discards the active event with no history write
func (s *service) Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	event, err := s.getEvent(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	if err := s.attendanceRepo.ClearActiveEvent(ctx, &attendanceRepo.ClearActiveEventInput{
		GuildID: input.GuildID,
	}); err != nil {
		return nil, fmt.Errorf("failed to clear event: %w", err)
	}

	return &CancelOutput{
		Event: event.Clone(),
	}, nil
}

// GetActiveEvent returns a read-only snapshot of the active event, or none
func (s *service) GetActiveEvent(ctx context.Context, input *GetActiveEventInput) (*GetActiveEventOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	event, err := s.getEvent(ctx, input.GuildID)
	if err != nil {
		if errors.Is(err, ErrNoActiveEvent) {
			return &GetActiveEventOutput{}, nil
		}
		return nil, err
	}

	return &GetActiveEventOutput{
		Event: event.Clone(),
	}, nil
}

// GetAttendanceRate returns a participant's attended share of all recorded
// events. No history or no attendance yields a zero rate, not an error.
func (s *service) GetAttendanceRate(ctx context.Context, input *GetAttendanceRateInput) (*GetAttendanceRateOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.Participant == "" {
		return nil, errors.New("participant is required")
	}

	total, err := s.attendanceRepo.CountEvents(ctx, &attendanceRepo.CountEventsInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	if total == 0 {
		return &GetAttendanceRateOutput{}, nil
	}

	attended := 0
	totals, err := s.attendanceRepo.GetParticipant(ctx, &attendanceRepo.GetParticipantInput{
		GuildID:     input.GuildID,
		Participant: input.Participant,
	})
	if err != nil {
		if !errors.Is(err, attendanceRepo.ErrParticipantNotFound) {
			return nil, fmt.Errorf("failed to get participant totals: %w", err)
		}
	} else {
		attended = totals.TotalEvents
	}

	return &GetAttendanceRateOutput{
		Rate:           float64(attended) / float64(total) * 100,
		EventsAttended: attended,
		EventsRecorded: int(total),
	}, nil
}

// GetHistory returns all ended events, most recently ended first
func (s *service) GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	result, err := s.attendanceRepo.ListEvents(ctx, &attendanceRepo.ListEventsInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return &GetHistoryOutput{
		Records: result.Records,
	}, nil
}
