package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	settingsRepo "lootroll/internal/repositories/settings"
)

// keySpec pairs a key's default with its value validator
type keySpec struct {
	defaultValue string
	validate     func(value string) error
}

var recognizedKeys = map[string]keySpec{
	KeyAnnounceOnWin:            {defaultValue: "true", validate: validateBool},
	KeyAnnounceChannel:          {defaultValue: "", validate: validateAny},
	KeyAutoRerollPrompt:         {defaultValue: "true", validate: validateBool},
	KeyAttendancePriorityWeight: {defaultValue: "0.5", validate: validateUnitFloat},
	KeyMinEventsForPriority:     {defaultValue: "5", validate: validateNonNegativeInt},
}

func validateAny(_ string) error {
	return nil
}

func validateBool(value string) error {
	if value != "true" && value != "false" {
		return fmt.Errorf("%w: expected true or false, got %q", ErrInvalidValue, value)
	}
	return nil
}

func validateUnitFloat(value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 || f > 1 {
		return fmt.Errorf("%w: expected a number in [0,1], got %q", ErrInvalidValue, value)
	}
	return nil
}

func validateNonNegativeInt(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("%w: expected a non-negative integer, got %q", ErrInvalidValue, value)
	}
	return nil
}

// service implements the Service interface
type service struct {
	settingsRepo settingsRepo.Repository
}

// New creates a new settings service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SettingsRepo == nil {
		return nil, ErrNilSettingsRepo
	}

	return &service{
		settingsRepo: cfg.SettingsRepo,
	}, nil
}

// Get returns a key's stored value, falling back to the key's default
func (s *service) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GuildID == "" {
		return nil, errors.New("guild ID is required")
	}

	spec, ok := recognizedKeys[input.Key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, input.Key)
	}

	value, err := s.settingsRepo.GetSetting(ctx, &settingsRepo.GetSettingInput{
		GuildID: input.GuildID,
		Key:     input.Key,
	})
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingNotFound) {
			return nil, fmt.Errorf("failed to get setting: %w", err)
		}
		value = spec.defaultValue
	}

	return &GetOutput{Value: value}, nil
}

// Set validates and stores a key's value
func (s *service) Set(ctx context.Context, input *SetInput) (*SetOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GuildID == "" {
		return nil, errors.New("guild ID is required")
	}

	spec, ok := recognizedKeys[input.Key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, input.Key)
	}

	if err := spec.validate(input.Value); err != nil {
		return nil, err
	}

	err := s.settingsRepo.SetSetting(ctx, &settingsRepo.SetSettingInput{
		GuildID: input.GuildID,
		Key:     input.Key,
		Value:   input.Value,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set setting: %w", err)
	}

	return &SetOutput{Value: input.Value}, nil
}

// GetAll returns every recognized key's effective value
func (s *service) GetAll(ctx context.Context, input *GetAllInput) (*GetAllOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GuildID == "" {
		return nil, errors.New("guild ID is required")
	}

	stored, err := s.settingsRepo.GetAllSettings(ctx, &settingsRepo.GetAllSettingsInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	values := make(map[string]string, len(recognizedKeys))
	for key, spec := range recognizedKeys {
		if v, ok := stored[key]; ok {
			values[key] = v
			continue
		}
		values[key] = spec.defaultValue
	}

	return &GetAllOutput{Values: values}, nil
}
