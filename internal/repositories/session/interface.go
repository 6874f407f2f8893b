package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go lootroll/internal/repositories/session Repository

import (
	"context"

	"lootroll/internal/models"
)

// Repository defines the interface for active roll session persistence.
// Each guild has at most one active session slot.
type Repository interface {
	// GetActiveSession retrieves the active session for a guild
	GetActiveSession(ctx context.Context, input *GetActiveSessionInput) (*models.RollSession, error)

	// SaveActiveSession persists the active session for a guild
	SaveActiveSession(ctx context.Context, input *SaveActiveSessionInput) error

	// ClearActiveSession removes the active session for a guild
	ClearActiveSession(ctx context.Context, input *ClearActiveSessionInput) error
}
