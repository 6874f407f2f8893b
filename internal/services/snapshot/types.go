package snapshot

import (
	"lootroll/internal/models"
	attendanceRepo "lootroll/internal/repositories/attendance"
	historyRepo "lootroll/internal/repositories/history"
	sessionRepo "lootroll/internal/repositories/session"
	settingsRepo "lootroll/internal/repositories/settings"
	statsRepo "lootroll/internal/repositories/stats"
)

// Config holds configuration for the snapshot service
type Config struct {
	// Repository dependencies
	SessionRepo    sessionRepo.Repository
	HistoryRepo    historyRepo.Repository
	StatsRepo      statsRepo.Repository
	AttendanceRepo attendanceRepo.Repository
	SettingsRepo   settingsRepo.Repository
}

// ExportInput identifies the guild to export
type ExportInput struct {
	GuildID string
}

// ExportOutput contains the exported state
type ExportOutput struct {
	Snapshot *models.Snapshot
}

// ImportInput contains the snapshot to write back
type ImportInput struct {
	Snapshot *models.Snapshot
}

// ImportOutput contains the result of an import
type ImportOutput struct {
	// RollRecords is the number of roll records written
	RollRecords int

	// AttendanceRecords is the number of attendance records written
	AttendanceRecords int
}
