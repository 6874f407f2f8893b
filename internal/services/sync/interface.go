package sync

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go lootroll/internal/services/sync Service

import "context"

// Service defines the interface for merging records received from peers
// into the local ledgers. Parsing of the raw wire bytes is done by the
// package-level Parse functions before anything reaches a Merge call.
type Service interface {
	// MergeRollRecord appends an externally received roll record unless a
	// record with the same end time and item already exists. A merged
	// record also applies its outcomes to the statistics ledger, keeping
	// peers' stats aligned with the finalizing peer's.
	MergeRollRecord(ctx context.Context, input *MergeRollRecordInput) (*MergeRollRecordOutput, error)

	// MergeAttendanceRecord appends an externally received attendance
	// record unless a record with the same end time and name already
	// exists. A merged record credits every attendee's lifetime totals.
	MergeAttendanceRecord(ctx context.Context, input *MergeAttendanceRecordInput) (*MergeAttendanceRecordOutput, error)
}
