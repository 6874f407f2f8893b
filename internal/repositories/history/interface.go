package history

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go lootroll/internal/repositories/history Repository

import (
	"context"
)

// Repository defines the interface for finalized roll record persistence.
// Records are append-only; nothing here mutates or deletes a stored record.
type Repository interface {
	// AppendRecord persists a finalized roll record
	AppendRecord(ctx context.Context, input *AppendRecordInput) error

	// ListRecords retrieves all records for a guild, most recently ended first
	ListRecords(ctx context.Context, input *ListRecordsInput) (*ListRecordsOutput, error)

	// HasRecord reports whether a record with the same end time and item
	// already exists. This is the only natural key history has; callers
	// merging externally received records must check it before appending.
	HasRecord(ctx context.Context, input *HasRecordInput) (bool, error)
}
