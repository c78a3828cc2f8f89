package dto

// SettingsResponse carries the current store options with defaults applied
type SettingsResponse struct {
	Options map[string]string `json:"options"`
}

// UpdateSettingsRequest carries option values to write. Only recognized
// option names are accepted.
type UpdateSettingsRequest struct {
	Options map[string]string `json:"options" binding:"required"`
}

// NonceResponse carries a freshly issued sync token
type NonceResponse struct {
	Token string `json:"token"`
}
