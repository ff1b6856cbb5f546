package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGCSEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		useSSL   bool
		want     string
	}{
		{"Empty", "", false, ""},
		{"HostPort", "localhost:4443", false, "http://localhost:4443/storage/v1/"},
		{"HostPortSSL", "localhost:4443", true, "https://localhost:4443/storage/v1/"},
		{"BaseURL", "http://127.0.0.1:8080", false, "http://127.0.0.1:8080/storage/v1/"},
		{"FullPath", "http://localhost:8080/storage/v1/", false, "http://localhost:8080/storage/v1/"},
		{"MissingSlash", "https://0.0.0.0:4443/storage/v1", false, "https://0.0.0.0:4443/storage/v1/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gcsEndpoint(tt.endpoint, tt.useSSL)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("MissingHost", func(t *testing.T) {
		_, err := gcsEndpoint("http:///storage/v1/", false)
		assert.Error(t, err)
	})
}

func TestRetryConfig_MaxAttempts(t *testing.T) {
	tests := []struct {
		name string
		cfg  RetryConfig
		want int
	}{
		{"LimitedErrorCount", RetryConfig{MaxErrors: 2}, 3},
		{"NoTolerance", RetryConfig{MaxErrors: 0}, 1},
		{"Negative", RetryConfig{MaxErrors: -1}, 1},
		{"PolicyNever", RetryConfig{MaxErrors: 5, Policy: RetryNever}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.MaxAttempts())
		})
	}
}

func TestRetryConfig_Retries(t *testing.T) {
	tests := []struct {
		policy     string
		idempotent bool
		want       bool
	}{
		{RetryAlways, false, true},
		{RetryAlways, true, true},
		{"", false, true},
		{RetryIdempotent, true, true},
		{RetryIdempotent, false, false},
		{RetryNever, true, false},
	}

	for _, tt := range tests {
		cfg := RetryConfig{MaxErrors: 2, Policy: tt.policy}
		assert.Equal(t, tt.want, cfg.retries(tt.idempotent), "policy=%q idempotent=%t", tt.policy, tt.idempotent)
	}
}
