package stats

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go lootroll/internal/repositories/stats Repository

import (
	"context"

	"lootroll/internal/models"
)

// Repository defines the interface for participant statistics persistence
type Repository interface {
	// GetStats retrieves one participant's counters
	GetStats(ctx context.Context, input *GetStatsInput) (*models.ParticipantStats, error)

	// SaveStats persists one participant's counters
	SaveStats(ctx context.Context, input *SaveStatsInput) error

	// ListStats retrieves every tracked participant's counters for a guild
	ListStats(ctx context.Context, input *ListStatsInput) (*ListStatsOutput, error)
}
