package snapshot

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go lootroll/internal/services/snapshot Service

import "context"

// Service defines the interface for whole-guild state export and import
type Service interface {
	// Export reads every ledger into a single snapshot structure
	Export(ctx context.Context, input *ExportInput) (*ExportOutput, error)

	// Import writes a snapshot's state back into the ledgers. Absent
	// pieces are filled with defaults; present pieces are written as is,
	// never replaced by defaults.
	Import(ctx context.Context, input *ImportInput) (*ImportOutput, error)
}
