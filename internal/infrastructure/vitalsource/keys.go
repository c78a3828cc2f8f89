package vitalsource

import (
	"context"

	"github.com/shelfbridge/backend/internal/domain/settings"
)

// SettingsKeySource reads the API key from the settings store on every
// request, so admin key changes take effect without a restart.
type SettingsKeySource struct {
	options settings.OptionRepository
}

// NewSettingsKeySource creates a key source backed by the option repository
func NewSettingsKeySource(options settings.OptionRepository) *SettingsKeySource {
	return &SettingsKeySource{options: options}
}

// APIKey returns the key for the active environment, empty when unset
func (s *SettingsKeySource) APIKey(ctx context.Context) (string, error) {
	snapshot, err := s.options.Load(ctx)
	if err != nil {
		return "", err
	}
	return snapshot.APIKey(), nil
}

// StaticKeySource returns a fixed key, used in tests
type StaticKeySource string

// APIKey returns the fixed key
func (s StaticKeySource) APIKey(context.Context) (string, error) {
	return string(s), nil
}

var (
	_ KeySource = (*SettingsKeySource)(nil)
	_ KeySource = StaticKeySource("")
)
