package models

import (
	"time"
)

// RollRecord is the immutable result of a finalized roll session.
// Once appended to history it is never mutated.
type RollRecord struct {
	// ID is the unique identifier for the record
	ID string

	// GuildID is the guild the session was held in
	GuildID string

	// Item is the display name of the contested item
	Item string

	// Winner is the identifier of the winning participant
	Winner string

	// WinningValue is the winner's roll in the deciding round
	WinningValue int

	// StartedBy is the identifier of the participant who opened the session
	StartedBy string

	// StartTime is when the session was opened
	StartTime time.Time

	// EndTime is when the session was finalized
	EndTime time.Time

	// Submissions holds every submission from every round of the session
	Submissions []*Submission

	// RerollRounds is how many tie-break rounds the session took
	RerollRounds int
}
