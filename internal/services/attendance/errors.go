package attendance

import "errors"

// Define errors
var (
	ErrEventAlreadyActive = errors.New("an attendance event is already active")
	ErrNoActiveEvent      = errors.New("no active attendance event")
	ErrDuplicateAttendee  = errors.New("attendee already listed")
	ErrAttendeeNotFound   = errors.New("attendee not listed")

	ErrNilConfig         = errors.New("config cannot be nil")
	ErrNilAttendanceRepo = errors.New("attendance repository cannot be nil")
	ErrNilClock          = errors.New("clock cannot be nil")
	ErrNilUUIDGenerator  = errors.New("UUID generator cannot be nil")
)
