package attendance

import (
	"context"

	"lootroll/internal/common/clock"
	"lootroll/internal/common/uuid"
	"lootroll/internal/models"
	attendanceRepo "lootroll/internal/repositories/attendance"
)

// RecordSink receives ended attendance records for cross-peer broadcast
type RecordSink interface {
	PublishAttendanceRecord(ctx context.Context, record *models.AttendanceRecord) error
}

// Config holds configuration for the attendance service
type Config struct {
	// Repository dependencies
	AttendanceRepo attendanceRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// RecordSink receives ended records for broadcast. Optional.
	RecordSink RecordSink
}

// StartEventInput contains parameters for opening an attendance event
type StartEventInput struct {
	GuildID   string
	Name      string
	StartedBy string
}

// StartEventOutput contains the result of opening an attendance event
type StartEventOutput struct {
	Event *models.AttendanceEvent
}

// AddAttendeeInput identifies the participant to add to the roster
type AddAttendeeInput struct {
	GuildID     string
	Participant string
}

// AddAttendeeOutput contains the roster after the addition
type AddAttendeeOutput struct {
	Event *models.AttendanceEvent
}

// RemoveAttendeeInput identifies the participant to remove from the roster
type RemoveAttendeeInput struct {
	GuildID     string
	Participant string
}

// RemoveAttendeeOutput contains the roster after the removal
type RemoveAttendeeOutput struct {
	Event *models.AttendanceEvent
}

// EndEventInput identifies the event to close
type EndEventInput struct {
	GuildID string
}

// EndEventOutput contains the finalized record
type EndEventOutput struct {
	Record *models.AttendanceRecord
}

// CancelInput identifies the event to discard
type CancelInput struct {
	GuildID string
}

// CancelOutput contains the discarded event
type CancelOutput struct {
	Event *models.AttendanceEvent
}

// GetActiveEventInput identifies the guild to inspect
type GetActiveEventInput struct {
	GuildID string
}

// GetActiveEventOutput contains the active event snapshot
type GetActiveEventOutput struct {
	// Event is nil when no event is active
	Event *models.AttendanceEvent
}

// GetAttendanceRateInput identifies the participant to compute a rate for
type GetAttendanceRateInput struct {
	GuildID     string
	Participant string
}

// GetAttendanceRateOutput contains the computed rate
type GetAttendanceRateOutput struct {
	// Rate is the percentage of recorded events attended. 0 when no events
	// are recorded or the participant never attended; that is a valid rate,
	// not an error.
	Rate float64

	// EventsAttended is the participant's lifetime attended count
	EventsAttended int

	// EventsRecorded is the total number of ended events
	EventsRecorded int
}

// GetHistoryInput identifies the guild to list
type GetHistoryInput struct {
	GuildID string
}

// GetHistoryOutput contains the ended-event history, most recent first
type GetHistoryOutput struct {
	Records []*models.AttendanceRecord
}
