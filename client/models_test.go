package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	known := []Status{
		StatusAccepted, StatusEnqueued, StatusSubmitted, StatusCompleted,
		StatusFailed, StatusRejected, StatusDuplicateIgnored,
	}
	for _, s := range known {
		got, err := ParseStatus(string(s))
		require.NoError(t, err, s)
		assert.Equal(t, s, got)
	}

	for _, bad := range []string{"", "accepted", "PENDING", "COMPLETED "} {
		_, err := ParseStatus(bad)
		require.Error(t, err, bad)

		var unk *UnknownStatusError
		require.ErrorAs(t, err, &unk, bad)
		assert.Equal(t, bad, unk.Value)
	}
}

func TestStatusTerminal(t *testing.T) {
	terminal := map[Status]bool{
		StatusAccepted:         false,
		StatusEnqueued:         false,
		StatusSubmitted:        false,
		StatusCompleted:        true,
		StatusFailed:           true,
		StatusRejected:         true,
		StatusDuplicateIgnored: true,
	}
	for s, want := range terminal {
		assert.Equal(t, want, s.Terminal(), s)
	}
}

func TestSandboxTestNumbers(t *testing.T) {
	nums := SandboxTestNumbers()

	for country, msisdn := range nums.Success {
		normalized, err := NormalizeMSISDN(msisdn)
		require.NoError(t, err, country)
		assert.Equal(t, msisdn, normalized, country)
		assert.Contains(t, nums.Failure, country)
	}
}
