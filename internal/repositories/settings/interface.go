package settings

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go lootroll/internal/repositories/settings Repository

import (
	"context"
)

// Repository defines the interface for per-guild setting persistence.
// Key validation is the settings service's concern; the repository stores
// whatever it is given.
type Repository interface {
	// GetSetting retrieves one stored setting value
	GetSetting(ctx context.Context, input *GetSettingInput) (string, error)

	// SetSetting stores one setting value
	SetSetting(ctx context.Context, input *SetSettingInput) error

	// GetAllSettings retrieves every explicitly stored setting for a guild
	GetAllSettings(ctx context.Context, input *GetAllSettingsInput) (map[string]string, error)
}
