package settings

import "errors"

// Define errors
var (
	ErrUnknownKey   = errors.New("unrecognized configuration key")
	ErrInvalidValue = errors.New("invalid configuration value")

	ErrNilConfig       = errors.New("config cannot be nil")
	ErrNilSettingsRepo = errors.New("settings repository cannot be nil")
)
