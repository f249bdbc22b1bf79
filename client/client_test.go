package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid minimal",
			cfg:  Config{APIToken: "tok"},
		},
		{
			name: "valid production",
			cfg:  Config{APIToken: "tok", Environment: EnvironmentProduction},
		},
		{
			name:    "missing token",
			cfg:     Config{},
			wantErr: "APIToken is required",
		},
		{
			name:    "bad environment",
			cfg:     Config{APIToken: "tok", Environment: "staging"},
			wantErr: "Environment must be",
		},
		{
			name:    "signing without key path",
			cfg:     Config{APIToken: "tok", SignRequests: true},
			wantErr: "SigningKeyPath is required",
		},
		{
			name:    "negative attempts",
			cfg:     Config{APIToken: "tok", MaxAttempts: -1},
			wantErr: "MaxAttempts cannot be negative",
		},
		{
			name:    "negative base delay",
			cfg:     Config{APIToken: "tok", RetryBaseDelay: -time.Millisecond},
			wantErr: "RetryBaseDelay cannot be negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.NotEmpty(t, cfgErr.Problems)
		})
	}
}

func TestConfigValidate_AccumulatesErrors(t *testing.T) {
	cfg := Config{Environment: "staging", SignRequests: true}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APIToken is required")
	assert.Contains(t, err.Error(), "Environment must be")
	assert.Contains(t, err.Error(), "SigningKeyPath is required")
}

func TestNewClient_Defaults(t *testing.T) {
	cl, err := NewClient(Config{APIToken: "tok"}, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cl.cfg.Timeout)
	assert.Equal(t, 4, cl.cfg.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cl.cfg.RetryBaseDelay)
	assert.Equal(t, "https://api.sandbox.pawapay.io", cl.baseURL)
	assert.NotNil(t, cl.httpClient)
	assert.NotNil(t, cl.logger)
}

func TestNewClient_BaseURLResolution(t *testing.T) {
	cl, err := NewClient(Config{APIToken: "tok", Environment: EnvironmentProduction}, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.pawapay.io", cl.baseURL)

	cl, err = NewClient(Config{APIToken: "tok", BaseURL: "http://localhost:9999"}, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cl.baseURL)
}

func TestNewClient_RejectsInvalidConfig(t *testing.T) {
	_, err := NewClient(Config{}, nil, nil, nil)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNewRequestID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := newRequestID()
		assert.Len(t, id, 36)
		assert.False(t, seen[id], "duplicate idempotency ID %s", id)
		seen[id] = true
	}
}
