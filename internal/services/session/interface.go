package session

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go lootroll/internal/services/session Service

import "context"

// Service defines the interface for the roll session state machine
type Service interface {
	// Start opens a new roll session for an item
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// RecordSubmission records one participant's roll for the current round
	RecordSubmission(ctx context.Context, input *RecordSubmissionInput) (*RecordSubmissionOutput, error)

	// GetHighestSubmitters returns all submissions sharing the maximum value at a round
	GetHighestSubmitters(ctx context.Context, input *GetHighestSubmittersInput) (*GetHighestSubmittersOutput, error)

	// StartReroll opens a tie-break round restricted to the tied participants
	StartReroll(ctx context.Context, input *StartRerollInput) (*StartRerollOutput, error)

	// Finalize resolves the session: a winner, an unresolved tie, or no submissions
	Finalize(ctx context.Context, input *FinalizeInput) (*FinalizeOutput, error)

	// Cancel discards the active session without recording anything
	Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error)

	// GetActiveSession returns a read-only snapshot of the active session, or none
	GetActiveSession(ctx context.Context, input *GetActiveSessionInput) (*GetActiveSessionOutput, error)
}
