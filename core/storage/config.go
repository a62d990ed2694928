package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Driver selects the client implementation (minio, aws, local).
	Driver string `mapstructure:"driver" default:"minio"`
	// Endpoint is the URL of the storage service. Empty means AWS defaults for the aws driver.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Region is the location of the buckets (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PathStyle forces path-style addressing for the aws driver.
	PathStyle bool `mapstructure:"path_style" default:"true"`
	// Root is the directory holding one sub-directory per bucket for the local driver.
	Root string `mapstructure:"root" default:"./data"`
}

const (
	DriverMinio = "minio"
	DriverAWS   = "aws"
	DriverLocal = "local"
)

// IsValidDriver checks if the configured driver is supported.
func (c Config) IsValidDriver() bool {
	switch c.Driver {
	case DriverMinio, DriverAWS, DriverLocal:
		return true
	default:
		return false
	}
}
