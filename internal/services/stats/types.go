package stats

import (
	"lootroll/internal/models"
	statsRepo "lootroll/internal/repositories/stats"
)

// Config holds configuration for the stats service
type Config struct {
	// Repository dependencies
	StatsRepo statsRepo.Repository
}

// RecordOutcomeInput contains one participant's outcome for a finalized session
type RecordOutcomeInput struct {
	// GuildID is the guild the session was held in
	GuildID string

	// Participant is the identifier of the participant
	Participant string

	// Won indicates whether the participant won the session
	Won bool

	// Value is the participant's counted submission value
	Value int
}

// RecordOutcomeOutput contains the updated counters
type RecordOutcomeOutput struct {
	// Stats is the participant's counters after the outcome was applied
	Stats *models.ParticipantStats
}

// GetStatsInput identifies the participant to look up
type GetStatsInput struct {
	GuildID     string
	Participant string
}

// GetStatsOutput contains the result of a stats lookup
type GetStatsOutput struct {
	// Stats is nil when the participant has never been recorded
	Stats *models.ParticipantStats
}

// GetAllStatsInput identifies the guild to list
type GetAllStatsInput struct {
	GuildID string
}

// GetAllStatsOutput contains the sorted leaderboard counters
type GetAllStatsOutput struct {
	Stats []*models.ParticipantStats
}
