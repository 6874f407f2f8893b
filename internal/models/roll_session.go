package models

import (
	"time"
)

const (
	// RollFloor is the lowest value a counted roll may have
	RollFloor = 1

	// RollCeiling is the highest value a counted roll may have
	RollCeiling = 100
)

// SessionState represents the lifecycle state of a roll session
type SessionState string

const (
	// SessionStateOpen indicates the initial round, open to all eligible participants
	SessionStateOpen SessionState = "open"

	// SessionStateRerolling indicates a tie-break round restricted to the tied participants
	SessionStateRerolling SessionState = "rerolling"
)

// Submission is one participant's roll for a given round of a session
type Submission struct {
	// Participant is the identifier of the submitting participant
	Participant string

	// Value is the rolled value
	Value int

	// Round is the reroll round the value was submitted in (0 is the initial round)
	Round int

	// Timestamp is when the submission was recorded
	Timestamp time.Time
}

// RollSession is the single active contest for an item in a guild.
// Closed sessions are never retained; a session either becomes a
// RollRecord on finalization or is discarded on cancel.
type RollSession struct {
	// GuildID is the guild this session belongs to
	GuildID string

	// Item is the display name of the contested item
	Item string

	// StartedBy is the identifier of the participant who opened the session
	StartedBy string

	// StartTime is when the session was opened
	StartTime time.Time

	// State is the current lifecycle state
	State SessionState

	// RerollRound counts completed reroll invocations; 0 until the first tie-break
	RerollRound int

	// Eligible restricts who may submit. Empty means everyone may submit.
	Eligible []string

	// Submissions holds every accepted submission across all rounds, in
	// arrival order. Append-only for the session's lifetime.
	Submissions []*Submission
}

// IsEligible reports whether a participant may submit in the current round.
// An empty eligibility set places no restriction.
func (s *RollSession) IsEligible(participant string) bool {
	if len(s.Eligible) == 0 {
		return true
	}
	for _, p := range s.Eligible {
		if p == participant {
			return true
		}
	}
	return false
}

// HasSubmission reports whether a participant already submitted at the given round
func (s *RollSession) HasSubmission(participant string, round int) bool {
	for _, sub := range s.Submissions {
		if sub.Round == round && sub.Participant == participant {
			return true
		}
	}
	return false
}

// SubmissionsAtRound returns the submissions recorded at the given round, in arrival order
func (s *RollSession) SubmissionsAtRound(round int) []*Submission {
	var subs []*Submission
	for _, sub := range s.Submissions {
		if sub.Round == round {
			subs = append(subs, sub)
		}
	}
	return subs
}

// Clone returns a deep copy of the session, safe to hand to callers
func (s *RollSession) Clone() *RollSession {
	if s == nil {
		return nil
	}
	out := *s
	out.Eligible = append([]string(nil), s.Eligible...)
	out.Submissions = make([]*Submission, 0, len(s.Submissions))
	for _, sub := range s.Submissions {
		c := *sub
		out.Submissions = append(out.Submissions, &c)
	}
	return &out
}
