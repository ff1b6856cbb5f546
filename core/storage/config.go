package storage

import "time"

const (
	ProviderGCS = "gcs"
	ProviderS3  = "s3"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Provider selects the client implementation (gcs, s3).
	Provider string `mapstructure:"provider" default:"gcs" validate:"oneof=gcs s3"`
	// Endpoint is the address of the storage service, with or without scheme.
	Endpoint string `mapstructure:"endpoint" default:"localhost:4443"`
	// Anonymous skips authentication entirely.
	Anonymous bool `mapstructure:"anonymous" default:"true"`
	// ProjectID is the GCS project that owns created buckets.
	ProjectID string `mapstructure:"project_id" default:"test"`
	// AccessKey is the access key ID for authentication (s3 only).
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for authentication (s3 only).
	SecretKey string `mapstructure:"secret_key" default:""`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket the workflow writes to.
	Bucket string `mapstructure:"bucket" default:"my-bucket" validate:"required"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30" validate:"gte=0"`
	// Retry bounds how many transient failures an operation tolerates.
	Retry RetryConfig `mapstructure:"retry"`
}

const (
	RetryIdempotent = "idempotent"
	RetryAlways     = "always"
	RetryNever      = "never"
)

// RetryConfig is a limited error count retry policy: an operation is abandoned
// once more than MaxErrors transient failures have been observed.
type RetryConfig struct {
	// MaxErrors is the number of transient failures tolerated.
	MaxErrors int `mapstructure:"max_errors" default:"2" validate:"gte=0"`
	// InitialBackoffMs is the delay before the first retry.
	InitialBackoffMs int `mapstructure:"initial_backoff_ms" default:"100" validate:"gte=0"`
	// MaxBackoffMs caps the delay between retries.
	MaxBackoffMs int `mapstructure:"max_backoff_ms" default:"2000" validate:"gte=0"`
	// Policy selects which operations are retried (always, idempotent, never).
	// Object writes carry no precondition, so only always retries them.
	Policy string `mapstructure:"policy" default:"always" validate:"oneof=idempotent always never"`
}

// MaxAttempts is the total number of attempts including the first one.
func (r RetryConfig) MaxAttempts() int {
	if r.MaxErrors < 0 || r.Policy == RetryNever {
		return 1
	}
	return r.MaxErrors + 1
}

func (r RetryConfig) initialBackoff() time.Duration {
	if r.InitialBackoffMs <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(r.InitialBackoffMs) * time.Millisecond
}

func (r RetryConfig) maxBackoff() time.Duration {
	if r.MaxBackoffMs <= 0 {
		return 2 * time.Second
	}
	return time.Duration(r.MaxBackoffMs) * time.Millisecond
}

func (c Config) timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
