package session

import (
	"context"
	"errors"
	"fmt"

	"lootroll/internal/common/clock"
	"lootroll/internal/common/uuid"
	"lootroll/internal/models"
	historyRepo "lootroll/internal/repositories/history"
	sessionRepo "lootroll/internal/repositories/session"
	statsService "lootroll/internal/services/stats"
)

// service implements the Service interface
type service struct {
	sessionRepo   sessionRepo.Repository
	historyRepo   historyRepo.Repository
	statsService  statsService.Service
	clock         clock.Clock
	uuidGenerator uuid.UUID
	recordSink    RecordSink
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.HistoryRepo == nil {
		return nil, ErrNilHistoryRepo
	}
	if cfg.StatsService == nil {
		return nil, ErrNilStatsService
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		sessionRepo:   cfg.SessionRepo,
		historyRepo:   cfg.HistoryRepo,
		statsService:  cfg.StatsService,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		recordSink:    cfg.RecordSink,
	}, nil
}

// getSession loads the active session, mapping the repository's not-found
// error to the service-level one.
func (s *service) getSession(ctx context.Context, guildID string) (*models.RollSession, error) {
	active, err := s.sessionRepo.GetActiveSession(ctx, &sessionRepo.GetActiveSessionInput{
		GuildID: guildID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	return active, nil
}

// Start opens a new roll session for an item
func (s *service) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.GuildID == "" || input.Item == "" || input.StartedBy == "" {
		return nil, errors.New("guild ID, item and starter are required")
	}

	// Reject a second session while one is active
	_, err := s.sessionRepo.GetActiveSession(ctx, &sessionRepo.GetActiveSessionInput{
		GuildID: input.GuildID,
	})
	if err == nil {
		return nil, ErrSessionAlreadyActive
	}
	if !errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to check active session: %w", err)
	}

	active := &models.RollSession{
		GuildID:   input.GuildID,
		Item:      input.Item,
		StartedBy: input.StartedBy,
		StartTime: s.clock.Now(),
		State:     models.SessionStateOpen,
	}

	if err := s.sessionRepo.SaveActiveSession(ctx, &sessionRepo.SaveActiveSessionInput{
		Session: active,
	}); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &StartOutput{
		Session: active.Clone(),
	}, nil
}

// RecordSubmission records one participant's roll for the current round
func (s *service) RecordSubmission(ctx context.Context, input *RecordSubmissionInput) (*RecordSubmissionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.GuildID == "" || input.Participant == "" {
		return nil, errors.New("guild ID and participant are required")
	}

	active, err := s.getSession(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	// Only standard full-range rolls count
	if input.Min != models.RollFloor || input.Max != models.RollCeiling {
		return nil, ErrInvalidRange
	}
	if input.Value < models.RollFloor || input.Value > models.RollCeiling {
		return nil, ErrInvalidRange
	}

	if !active.IsEligible(input.Participant) {
		return nil, ErrNotEligible
	}

	round := active.RerollRound
	if active.HasSubmission(input.Participant, round) {
		return nil, ErrDuplicateSubmission
	}

	submission := &models.Submission{
		Participant: input.Participant,
		Value:       input.Value,
		Round:       round,
		Timestamp:   s.clock.Now(),
	}
	active.Submissions = append(active.Submissions, submission)

	if err := s.sessionRepo.SaveActiveSession(ctx, &sessionRepo.SaveActiveSessionInput{
		Session: active,
	}); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &RecordSubmissionOutput{
		Submission: submission,
		Round:      round,
	}, nil
}

// highestAtRound returns the submissions sharing the maximum value at a round
func highestAtRound(active *models.RollSession, round int) ([]*models.Submission, int) {
	maxValue := 0
	for _, sub := range active.SubmissionsAtRound(round) {
		if sub.Value > maxValue {
			maxValue = sub.Value
		}
	}
	if maxValue == 0 {
		return nil, 0
	}

	var highest []*models.Submission
	for _, sub := range active.SubmissionsAtRound(round) {
		if sub.Value == maxValue {
			highest = append(highest, sub)
		}
	}
	return highest, maxValue
}

// GetHighestSubmitters returns all submissions sharing the maximum value at a round
func (s *service) GetHighestSubmitters(ctx context.Context, input *GetHighestSubmittersInput) (*GetHighestSubmittersOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	active, err := s.getSession(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	round := active.RerollRound
	if input.Round != nil {
		round = *input.Round
	}

	highest, maxValue := highestAtRound(active, round)

	return &GetHighestSubmittersOutput{
		Submissions: highest,
		Value:       maxValue,
		Round:       round,
	}, nil
}

// StartReroll opens a tie-break round restricted to the tied participants.
// Eligibility is replaced, not merged, so each reroll narrows the field to
// exactly the participants still tied.
func (s *service) StartReroll(ctx context.Context, input *StartRerollInput) (*StartRerollOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if len(input.Participants) == 0 {
		return nil, errors.New("tied participants are required")
	}

	active, err := s.getSession(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	active.RerollRound++
	active.State = models.SessionStateRerolling
	active.Eligible = append([]string(nil), input.Participants...)

	if err := s.sessionRepo.SaveActiveSession(ctx, &sessionRepo.SaveActiveSessionInput{
		Session: active,
	}); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &StartRerollOutput{
		Round: active.RerollRound,
	}, nil
}

// finalValue returns a participant's submission value in the latest round
// they rolled in.
func finalValue(active *models.RollSession, participant string) int {
	value := 0
	round := -1
	for _, sub := range active.Submissions {
		if sub.Participant == participant && sub.Round > round {
			round = sub.Round
			value = sub.Value
		}
	}
	return value
}

// Finalize resolves the session. A single maximum produces a winner and a
// history record; a tie leaves the session active for a reroll; an empty
// round discards the session with no record.
func (s *service) Finalize(ctx context.Context, input *FinalizeInput) (*FinalizeOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	active, err := s.getSession(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	highest, maxValue := highestAtRound(active, active.RerollRound)

	if len(highest) == 0 {
		// A session nobody rolled in is a valid empty outcome
		if err := s.sessionRepo.ClearActiveSession(ctx, &sessionRepo.ClearActiveSessionInput{
			GuildID: input.GuildID,
		}); err != nil {
			return nil, fmt.Errorf("failed to clear session: %w", err)
		}
		return &FinalizeOutput{
			Outcome: FinalizeOutcomeNoSubmissions,
		}, nil
	}

	if len(highest) > 1 {
		// Ties are never broken arbitrarily; the caller must reroll
		return &FinalizeOutput{
			Outcome: FinalizeOutcomeTie,
			Tied:    highest,
		}, nil
	}

	winner := highest[0]
	record := &models.RollRecord{
		ID:           s.uuidGenerator.NewUUID(),
		GuildID:      active.GuildID,
		Item:         active.Item,
		Winner:       winner.Participant,
		WinningValue: maxValue,
		StartedBy:    active.StartedBy,
		StartTime:    active.StartTime,
		EndTime:      s.clock.Now(),
		Submissions:  active.Submissions,
		RerollRounds: active.RerollRound,
	}

	if err := s.historyRepo.AppendRecord(ctx, &historyRepo.AppendRecordInput{
		Record: record,
	}); err != nil {
		return nil, fmt.Errorf("failed to append record: %w", err)
	}

	// One outcome per submission-bearing participant, across all rounds.
	// Participants are visited in first-submission order.
	seen := make(map[string]bool)
	for _, sub := range active.Submissions {
		if seen[sub.Participant] {
			continue
		}
		seen[sub.Participant] = true

		if _, err := s.statsService.RecordOutcome(ctx, &statsService.RecordOutcomeInput{
			GuildID:     active.GuildID,
			Participant: sub.Participant,
			Won:         sub.Participant == winner.Participant,
			Value:       finalValue(active, sub.Participant),
		}); err != nil {
			return nil, fmt.Errorf("failed to record outcome for %s: %w", sub.Participant, err)
		}
	}

	if err := s.sessionRepo.ClearActiveSession(ctx, &sessionRepo.ClearActiveSessionInput{
		GuildID: input.GuildID,
	}); err != nil {
		return nil, fmt.Errorf("failed to clear session: %w", err)
	}

	// Broadcast is best effort; the record is already durable
	if s.recordSink != nil {
		_ = s.recordSink.PublishRollRecord(ctx, record)
	}

	return &FinalizeOutput{
		Outcome: FinalizeOutcomeWinner,
		Winner:  winner,
		Record:  record,
	}, nil
}

// Cancel discards the active session with no statistics update and no record
func (s *service) Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	active, err := s.getSession(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.ClearActiveSession(ctx, &sessionRepo.ClearActiveSessionInput{
		GuildID: input.GuildID,
	}); err != nil {
		return nil, fmt.Errorf("failed to clear session: %w", err)
	}

	return &CancelOutput{
		Session: active.Clone(),
	}, nil
}

// GetActiveSession returns a read-only snapshot of the active session, or
// none. The absence of a session is not an error here.
func (s *service) GetActiveSession(ctx context.Context, input *GetActiveSessionInput) (*GetActiveSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	active, err := s.getSession(ctx, input.GuildID)
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			return &GetActiveSessionOutput{}, nil
		}
		return nil, err
	}

	return &GetActiveSessionOutput{
		Session: active.Clone(),
	}, nil
}
