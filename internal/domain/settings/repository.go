package settings

import "context"

// OptionRepository defines persistence operations for store options
type OptionRepository interface {
	// Get returns the stored value for name, or the built-in default when the
	// option has never been written.
	Get(ctx context.Context, name string) (string, error)
	// Set writes the value for a recognized option name, creating the row on
	// first write.
	Set(ctx context.Context, name, value string) error
	// Load returns a snapshot of all options with defaults applied.
	Load(ctx context.Context) (*Settings, error)
}
