package session

import (
	"context"

	"lootroll/internal/common/clock"
	"lootroll/internal/common/uuid"
	"lootroll/internal/models"
	historyRepo "lootroll/internal/repositories/history"
	sessionRepo "lootroll/internal/repositories/session"
	statsService "lootroll/internal/services/stats"
)

// RecordSink receives finalized roll records for cross-peer broadcast.
// Implementations must tolerate duplicate deliveries; the service only
// guarantees at-most-once per finalize.
type RecordSink interface {
	PublishRollRecord(ctx context.Context, record *models.RollRecord) error
}

// FinalizeOutcome classifies the result of a Finalize call. A tie and an
// empty session are valid outcomes, not errors.
type FinalizeOutcome string

const (
	// FinalizeOutcomeWinner indicates a single winner was determined
	FinalizeOutcomeWinner FinalizeOutcome = "winner"

	// FinalizeOutcomeTie indicates two or more participants share the
	// maximum; the session stays active and needs a reroll
	FinalizeOutcomeTie FinalizeOutcome = "tie"

	// FinalizeOutcomeNoSubmissions indicates the current round had no
	// submissions; the session is discarded without a record
	FinalizeOutcomeNoSubmissions FinalizeOutcome = "no_submissions"
)

// Config holds configuration for the session service
type Config struct {
	// Repository dependencies
	SessionRepo sessionRepo.Repository
	HistoryRepo historyRepo.Repository

	// Service dependencies
	StatsService  statsService.Service
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// RecordSink receives finalized records for broadcast. Optional.
	RecordSink RecordSink
}

// StartInput contains parameters for opening a roll session
type StartInput struct {
	// GuildID is the guild to open the session in
	GuildID string

	// Item is the display name of the contested item
	Item string

	// StartedBy is the identifier of the initiating participant
	StartedBy string
}

// StartOutput contains the result of opening a roll session
type StartOutput struct {
	// Session is a snapshot of the newly opened session
	Session *models.RollSession
}

// RecordSubmissionInput contains one parsed roll notification
type RecordSubmissionInput struct {
	// GuildID is the guild the roll was seen in
	GuildID string

	// Participant is the identifier of the roller
	Participant string

	// Value is the rolled value
	Value int

	// Min and Max are the roll bounds as reported by the event source.
	// Only full-range 1-100 rolls count.
	Min int
	Max int
}

// RecordSubmissionOutput contains the accepted submission
type RecordSubmissionOutput struct {
	// Submission is the recorded submission
	Submission *models.Submission

	// Round is the round the submission was recorded at
	Round int
}

// GetHighestSubmittersInput identifies the round to inspect
type GetHighestSubmittersInput struct {
	// GuildID is the guild whose session to inspect
	GuildID string

	// Round selects the round to inspect; nil means the current round
	Round *int
}

// GetHighestSubmittersOutput contains the maximum-value submissions at a round
type GetHighestSubmittersOutput struct {
	// Submissions holds every submission sharing the maximum value, in
	// arrival order. Empty if the round has no submissions.
	Submissions []*models.Submission

	// Value is the maximum value, 0 if the round has no submissions
	Value int

	// Round is the round that was inspected
	Round int
}

// StartRerollInput contains parameters for opening a tie-break round
type StartRerollInput struct {
	// GuildID is the guild whose session to reroll
	GuildID string

	// Participants are the tied participants; eligibility for the new
	// round is replaced with exactly this set
	Participants []string
}

// StartRerollOutput contains the result of opening a tie-break round
type StartRerollOutput struct {
	// Round is the new round number
	Round int
}

// FinalizeInput identifies the session to resolve
type FinalizeInput struct {
	GuildID string
}

// FinalizeOutput contains the result of resolving a session
type FinalizeOutput struct {
	// Outcome classifies the result
	Outcome FinalizeOutcome

	// Winner is the winning submission when Outcome is winner
	Winner *models.Submission

	// Record is the appended history record when Outcome is winner
	Record *models.RollRecord

	// Tied holds the tied submissions when Outcome is tie
	Tied []*models.Submission
}

// CancelInput identifies the session to discard
type CancelInput struct {
	GuildID string
}

// CancelOutput contains the discarded session
type CancelOutput struct {
	// Session is a snapshot of the session that was discarded
	Session *models.RollSession
}

// GetActiveSessionInput identifies the guild to inspect
type GetActiveSessionInput struct {
	GuildID string
}

// GetActiveSessionOutput contains the active session snapshot
type GetActiveSessionOutput struct {
	// Session is nil when no session is active
	Session *models.RollSession
}
