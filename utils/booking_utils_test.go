package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBookingReference(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ref, err := GenerateBookingReference()
		require.NoError(t, err)
		require.Len(t, ref, 11)
		assert.True(t, strings.HasPrefix(ref, "BK-"))
		for _, r := range ref[3:] {
			assert.Contains(t, referenceCharset, string(r))
		}
		seen[ref] = true
	}
	assert.Greater(t, len(seen), 1, "codes should not repeat across calls")
}

func TestRandomCodeRejectsBadLength(t *testing.T) {
	_, err := randomCode(0)
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2026-09-01T14:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 14, got.Hour())

	got, err = ParseDate("  ")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseDate("01/09/2026")
	assert.Error(t, err)
}

func TestIsValidClock(t *testing.T) {
	assert.True(t, IsValidClock(""))
	assert.True(t, IsValidClock("14:00"))
	assert.True(t, IsValidClock("09:30"))
	assert.False(t, IsValidClock("25:00"))
	assert.False(t, IsValidClock("2pm"))
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("LODGING_TEST_KEY", "set")
	assert.Equal(t, "set", EnvOrDefault("LODGING_TEST_KEY", "fallback"))

	t.Setenv("LODGING_TEST_KEY", "   ")
	assert.Equal(t, "fallback", EnvOrDefault("LODGING_TEST_KEY", "fallback"))

	assert.Equal(t, "fallback", EnvOrDefault("LODGING_TEST_MISSING", "fallback"))
}
