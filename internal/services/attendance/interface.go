package attendance

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go lootroll/internal/services/attendance Service

import "context"

// Service defines the interface for the attendance ledger
type Service interface {
	// StartEvent opens a new attendance event
	StartEvent(ctx context.Context, input *StartEventInput) (*StartEventOutput, error)

	// AddAttendee adds a participant to the active event's roster
	AddAttendee(ctx context.Context, input *AddAttendeeInput) (*AddAttendeeOutput, error)

	// RemoveAttendee removes a participant from the active event's roster
	RemoveAttendee(ctx context.Context, input *RemoveAttendeeInput) (*RemoveAttendeeOutput, error)

	// EndEvent closes the active event, appends it to history and credits
	// every attendee's lifetime totals
	EndEvent(ctx context.Context, input *EndEventInput) (*EndEventOutput, error)

	// Cancel discards the active event without recording anything
	Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error)

	// GetActiveEvent returns a read-only snapshot of the active event, or none
	GetActiveEvent(ctx context.Context, input *GetActiveEventInput) (*GetActiveEventOutput, error)

	// GetAttendanceRate returns a participant's attended share of all
	// recorded events as a percentage
	GetAttendanceRate(ctx context.Context, input *GetAttendanceRateInput) (*GetAttendanceRateOutput, error)

	// GetHistory returns all ended events, most recently ended first
	GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error)
}
