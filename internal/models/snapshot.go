package models

// SchemaVersion is the current version of the persisted root structure
const SchemaVersion = 1

// AttendanceState groups the attendance ledger's persisted pieces
type AttendanceState struct {
	// Events is the ended-event history, oldest first
	Events []*AttendanceRecord `json:"events"`

	// Participants maps participant identifier to lifetime totals
	Participants map[string]*ParticipantAttendance `json:"participants"`
}

// Snapshot is the complete persisted state for one guild. It is the unit of
// export/import; loading an older snapshot fills absent pieces with defaults
// without touching pieces that are present.
type Snapshot struct {
	// SchemaVersion identifies the layout this snapshot was written with
	SchemaVersion int `json:"schemaVersion"`

	// GuildID is the guild the snapshot belongs to
	GuildID string `json:"guildId"`

	// History is the finalized roll record history, oldest first
	History []*RollRecord `json:"history"`

	// Stats maps participant identifier to lifetime roll counters
	Stats map[string]*ParticipantStats `json:"stats"`

	// Attendance is the attendance ledger state
	Attendance AttendanceState `json:"attendance"`

	// ActiveSession is the in-flight roll session, if any
	ActiveSession *RollSession `json:"activeSession,omitempty"`

	// ActiveEvent is the in-flight attendance event, if any
	ActiveEvent *AttendanceEvent `json:"activeEvent,omitempty"`

	// Settings holds explicitly set configuration values
	Settings map[string]string `json:"settings"`
}
