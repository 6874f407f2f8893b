package settings

import (
	settingsRepo "lootroll/internal/repositories/settings"
)

// Recognized configuration keys
const (
	// KeyAnnounceOnWin toggles posting an announcement when a session
	// finalizes with a winner
	KeyAnnounceOnWin = "announce_on_win"

	// KeyAnnounceChannel selects the channel announcements and peer
	// record lines are posted to. Empty disables both.
	KeyAnnounceChannel = "announce_channel"

	// KeyAutoRerollPrompt toggles prompting for a reroll when a session
	// finalizes in a tie
	KeyAutoRerollPrompt = "auto_reroll_prompt"

	// KeyAttendancePriorityWeight is the attendance share of the
	// leaderboard priority score, in [0,1]
	KeyAttendancePriorityWeight = "attendance_priority_weight"

	// KeyMinEventsForPriority is the attended-event count below which a
	// participant gets no attendance priority
	KeyMinEventsForPriority = "min_events_for_priority"
)

// Config holds configuration for the settings service
type Config struct {
	// Repository dependencies
	SettingsRepo settingsRepo.Repository
}

// GetInput identifies the key to look up
type GetInput struct {
	GuildID string
	Key     string
}

// GetOutput contains the effective value for a key
type GetOutput struct {
	// Value is the stored value, or the key's default when never set
	Value string
}

// SetInput contains the key and value to store
type SetInput struct {
	GuildID string
	Key     string
	Value   string
}

// SetOutput contains the stored value
type SetOutput struct {
	Value string
}

// GetAllInput identifies the guild to list
type GetAllInput struct {
	GuildID string
}

// GetAllOutput contains every recognized key's effective value
type GetAllOutput struct {
	Values map[string]string
}
