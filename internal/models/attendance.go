package models

import (
	"time"
)

// AttendanceDateFormat is the layout used for event dates in records and
// per-participant date lists.
const AttendanceDateFormat = "2006-01-02"

// AttendanceEvent is the single active roster being taken for a guild
type AttendanceEvent struct {
	// GuildID is the guild this event belongs to
	GuildID string

	// Name is the display name of the event
	Name string

	// StartedBy is the identifier of the participant who opened the event
	StartedBy string

	// StartTime is when the event was opened
	StartTime time.Time

	// Date is the calendar date of the event, AttendanceDateFormat
	Date string

	// Attendees lists attendee identifiers in the order they were added.
	// Duplicates are rejected at add time.
	Attendees []string
}

// HasAttendee reports whether the participant is already on the roster
func (e *AttendanceEvent) HasAttendee(participant string) bool {
	for _, a := range e.Attendees {
		if a == participant {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the event, safe to hand to callers
func (e *AttendanceEvent) Clone() *AttendanceEvent {
	if e == nil {
		return nil
	}
	out := *e
	out.Attendees = append([]string(nil), e.Attendees...)
	return &out
}

// AttendanceRecord is the immutable result of an ended attendance event
type AttendanceRecord struct {
	// ID is the unique identifier for the record
	ID string

	// GuildID is the guild the event was held in
	GuildID string

	// Name is the display name of the event
	Name string

	// StartedBy is the identifier of the participant who opened the event
	StartedBy string

	// StartTime is when the event was opened
	StartTime time.Time

	// EndTime is when the event was ended
	EndTime time.Time

	// Date is the calendar date of the event
	Date string

	// Attendees lists attendee identifiers in roster order
	Attendees []string
}

// ParticipantAttendance holds a participant's lifetime attendance totals for a guild
type ParticipantAttendance struct {
	// GuildID is the guild the totals belong to
	GuildID string

	// Participant is the identifier of the participant
	Participant string

	// TotalEvents is the number of ended events the participant attended
	TotalEvents int

	// Dates lists the dates of attended events, in the order they ended
	Dates []string
}
