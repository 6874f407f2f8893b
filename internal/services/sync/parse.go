package sync

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lootroll/internal/models"
)

// Define errors
var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrInvalidRecord   = errors.New("invalid record")
)

// ParseRollRecord decodes peer-supplied roll record JSON. Unknown fields
// and missing required fields are rejected before anything touches a
// ledger; peer input is never trusted as already valid.
func ParseRollRecord(data []byte) (*models.RollRecord, error) {
	var record models.RollRecord
	if err := strictDecode(data, &record); err != nil {
		return nil, err
	}

	if record.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	if record.GuildID == "" {
		return nil, fmt.Errorf("%w: missing guild id", ErrInvalidRecord)
	}
	if record.Item == "" {
		return nil, fmt.Errorf("%w: missing item", ErrInvalidRecord)
	}
	if record.Winner == "" {
		return nil, fmt.Errorf("%w: missing winner", ErrInvalidRecord)
	}
	if record.StartTime.IsZero() || record.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: missing timestamps", ErrInvalidRecord)
	}
	if record.EndTime.Before(record.StartTime) {
		return nil, fmt.Errorf("%w: end time precedes start time", ErrInvalidRecord)
	}
	if record.WinningValue < models.RollFloor || record.WinningValue > models.RollCeiling {
		return nil, fmt.Errorf("%w: winning value %d out of range", ErrInvalidRecord, record.WinningValue)
	}
	if record.RerollRounds < 0 {
		return nil, fmt.Errorf("%w: negative reroll count", ErrInvalidRecord)
	}

	for _, sub := range record.Submissions {
		if sub == nil || sub.Participant == "" {
			return nil, fmt.Errorf("%w: submission missing participant", ErrInvalidRecord)
		}
		if sub.Value < models.RollFloor || sub.Value > models.RollCeiling {
			return nil, fmt.Errorf("%w: submission value %d out of range", ErrInvalidRecord, sub.Value)
		}
		if sub.Round < 0 || sub.Round > record.RerollRounds {
			return nil, fmt.Errorf("%w: submission round %d out of range", ErrInvalidRecord, sub.Round)
		}
	}

	return &record, nil
}

// ParseAttendanceRecord decodes peer-supplied attendance record JSON with
// the same strictness as ParseRollRecord.
func ParseAttendanceRecord(data []byte) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if err := strictDecode(data, &record); err != nil {
		return nil, err
	}

	if record.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	if record.GuildID == "" {
		return nil, fmt.Errorf("%w: missing guild id", ErrInvalidRecord)
	}
	if record.Name == "" {
		return nil, fmt.Errorf("%w: missing event name", ErrInvalidRecord)
	}
	if record.StartTime.IsZero() || record.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: missing timestamps", ErrInvalidRecord)
	}
	if record.EndTime.Before(record.StartTime) {
		return nil, fmt.Errorf("%w: end time precedes start time", ErrInvalidRecord)
	}
	if _, err := time.Parse(models.AttendanceDateFormat, record.Date); err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidRecord, record.Date)
	}

	seen := make(map[string]bool, len(record.Attendees))
	for _, attendee := range record.Attendees {
		if attendee == "" {
			return nil, fmt.Errorf("%w: empty attendee", ErrInvalidRecord)
		}
		if seen[attendee] {
			return nil, fmt.Errorf("%w: duplicate attendee %s", ErrInvalidRecord, attendee)
		}
		seen[attendee] = true
	}

	return &record, nil
}

// strictDecode unmarshals exactly one JSON value, rejecting unknown
// fields and trailing data
func strictDecode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	if dec.More() {
		return fmt.Errorf("%w: trailing data", ErrMalformedRecord)
	}

	return nil
}
