package attendance

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go lootroll/internal/repositories/attendance Repository

import (
	"context"

	"lootroll/internal/models"
)

// Repository defines the interface for attendance persistence: the per-guild
// active event slot, the ended-event history, and per-participant totals.
type Repository interface {
	// GetActiveEvent retrieves the active attendance event for a guild
	GetActiveEvent(ctx context.Context, input *GetActiveEventInput) (*models.AttendanceEvent, error)

	// SaveActiveEvent persists the active attendance event for a guild
	SaveActiveEvent(ctx context.Context, input *SaveActiveEventInput) error

	// ClearActiveEvent removes the active attendance event for a guild
	ClearActiveEvent(ctx context.Context, input *ClearActiveEventInput) error

	// AppendEvent persists an ended event record
	AppendEvent(ctx context.Context, input *AppendEventInput) error

	// ListEvents retrieves all ended events for a guild, most recently ended first
	ListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error)

	// CountEvents returns the number of ended events recorded for a guild
	CountEvents(ctx context.Context, input *CountEventsInput) (int64, error)

	// HasEvent reports whether an event record with the same end time and
	// name already exists, for callers merging externally received records
	HasEvent(ctx context.Context, input *HasEventInput) (bool, error)

	// GetParticipant retrieves one participant's lifetime attendance totals
	GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.ParticipantAttendance, error)

	// SaveParticipant persists one participant's lifetime attendance totals
	SaveParticipant(ctx context.Context, input *SaveParticipantInput) error

	// ListParticipants retrieves every tracked participant's totals for a guild
	ListParticipants(ctx context.Context, input *ListParticipantsInput) (*ListParticipantsOutput, error)
}
