package vitalsource

// Config holds configuration for the VitalSource API client
type Config struct {
	// APIBaseURL is the base URL for the VitalSource API (production or sandbox)
	APIBaseURL string
	// IsSandbox indicates if this is a sandbox environment
	IsSandbox bool
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// ProductionAPIURL is the production API endpoint
	ProductionAPIURL = "https://api.vitalsource.com"
	// SandboxAPIURL is the sandbox API endpoint
	SandboxAPIURL = "https://api.sandbox.vitalsource.com"

	// ReaderBaseURL is where redirect destinations point readers
	ReaderBaseURL = "https://online.vitalsource.com/books/"
	// ReaderBrand identifies the online reader in redirect requests
	ReaderBrand = "online.vitalsource.com"
)

// NewConfig creates a production configuration with defaults
func NewConfig() *Config {
	return &Config{
		APIBaseURL:     ProductionAPIURL,
		IsSandbox:      false,
		TimeoutSeconds: 30,
	}
}

// NewSandboxConfig creates a sandbox configuration with defaults
func NewSandboxConfig() *Config {
	return &Config{
		APIBaseURL:     SandboxAPIURL,
		IsSandbox:      true,
		TimeoutSeconds: 30,
	}
}

// Validate fills in defaults for unset fields
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		if c.IsSandbox {
			c.APIBaseURL = SandboxAPIURL
		} else {
			c.APIBaseURL = ProductionAPIURL
		}
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
