package query

import (
	"time"

	"lootroll/internal/models"
	historyRepo "lootroll/internal/repositories/history"
	attendanceService "lootroll/internal/services/attendance"
	settingsService "lootroll/internal/services/settings"
	statsService "lootroll/internal/services/stats"
)

// Config holds configuration for the query service
type Config struct {
	// Repository dependencies
	HistoryRepo historyRepo.Repository

	// Service dependencies
	StatsService      statsService.Service
	AttendanceService attendanceService.Service
	SettingsService   settingsService.Service
}

// HistoryFilters narrows a history listing. Zero-valued fields do not
// filter.
type HistoryFilters struct {
	// Winner filters on exact winner identifier
	Winner string

	// Item filters on case-insensitive substring of the item text
	Item string

	// StartDate keeps records whose end time is at or after this instant
	StartDate *time.Time

	// EndDate keeps records whose end time is at or before this instant
	EndDate *time.Time
}

// GetHistoryInput identifies the guild and optional filters
type GetHistoryInput struct {
	GuildID string

	// Filters may be nil for the full history
	Filters *HistoryFilters
}

// GetHistoryOutput contains the matching records, most recent first
type GetHistoryOutput struct {
	Records []*models.RollRecord
}

// GetLeaderboardInput identifies the guild to rank
type GetLeaderboardInput struct {
	GuildID string
}

// LeaderboardEntry is one participant's joined ranking row
type LeaderboardEntry struct {
	Participant    string
	Wins           int
	Losses         int
	WinRate        float64
	AttendanceRate float64

	// Priority blends win rate and attendance rate by the configured
	// attendance weight. The attendance share is zero until the
	// participant clears the configured minimum attended-event count.
	Priority float64
}

// GetLeaderboardOutput contains the ranking, highest priority first
type GetLeaderboardOutput struct {
	Entries []*LeaderboardEntry
}
