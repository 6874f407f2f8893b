package settings

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go lootroll/internal/services/settings Service

import "context"

// Service defines the interface for per-guild configuration
type Service interface {
	// Get returns a key's stored value, or its default when never set
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Set validates and stores a key's value. Unrecognized keys are
	// rejected, never silently created.
	Set(ctx context.Context, input *SetInput) (*SetOutput, error)

	// GetAll returns every recognized key with its effective value,
	// stored values taking precedence over defaults
	GetAll(ctx context.Context, input *GetAllInput) (*GetAllOutput, error)
}
