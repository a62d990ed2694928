package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps uploaded object bodies.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"64"`
}

// Address returns the listen address for fiber.App.Listen.
func (c Config) Address() string {
	return ":" + c.Port
}

// BodyLimit returns the body limit in bytes, falling back to 64 MiB.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 64 << 20
	}
	return c.BodyLimitMB << 20
}
