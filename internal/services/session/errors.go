package session

import "errors"

// Define errors. All are recoverable, caller-visible outcomes; the handler
// layer is responsible for turning them into user-facing text.
var (
	ErrSessionAlreadyActive = errors.New("a roll session is already active")
	ErrNoActiveSession      = errors.New("no active roll session")
	ErrInvalidRange         = errors.New("roll outside the canonical 1-100 range")
	ErrNotEligible          = errors.New("participant is not eligible for the current round")
	ErrDuplicateSubmission  = errors.New("participant already rolled this round")

	ErrNilConfig        = errors.New("config cannot be nil")
	ErrNilSessionRepo   = errors.New("session repository cannot be nil")
	ErrNilHistoryRepo   = errors.New("history repository cannot be nil")
	ErrNilStatsService  = errors.New("stats service cannot be nil")
	ErrNilClock         = errors.New("clock cannot be nil")
	ErrNilUUIDGenerator = errors.New("UUID generator cannot be nil")
)
