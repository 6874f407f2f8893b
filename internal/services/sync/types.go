package sync

import (
	"lootroll/internal/models"
	attendanceRepo "lootroll/internal/repositories/attendance"
	historyRepo "lootroll/internal/repositories/history"
	statsService "lootroll/internal/services/stats"
)

// Config holds configuration for the sync service
type Config struct {
	// Repository dependencies
	HistoryRepo    historyRepo.Repository
	AttendanceRepo attendanceRepo.Repository

	// Service dependencies
	StatsService statsService.Service
}

// MergeRollRecordInput contains a parsed, validated roll record
type MergeRollRecordInput struct {
	Record *models.RollRecord
}

// MergeRollRecordOutput reports whether the record was written
type MergeRollRecordOutput struct {
	// Merged is false when an equivalent record already existed
	Merged bool
}

// MergeAttendanceRecordInput contains a parsed, validated attendance record
type MergeAttendanceRecordInput struct {
	Record *models.AttendanceRecord
}

// MergeAttendanceRecordOutput reports whether the record was written
type MergeAttendanceRecordOutput struct {
	// Merged is false when an equivalent record already existed
	Merged bool
}
