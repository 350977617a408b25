package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
	"time"
)

const referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// GenerateBookingReference produces a code like "BK-7F3KQ2MX". Uses
// crypto/rand with rand.Int to avoid modulo bias.
func GenerateBookingReference() (string, error) {
	code, err := randomCode(8)
	if err != nil {
		return "", err
	}
	return "BK-" + code, nil
}

func randomCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(referenceCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(referenceCharset[num.Int64()])
	}
	return sb.String(), nil
}

// ParseDate accepts "2006-01-02" or RFC3339 input (the frontend sends
// both). Empty input yields the zero time with no error.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// IsValidClock reports whether value is an "HH:MM" wall-clock string.
// Empty is valid: it means "use the default".
func IsValidClock(value string) bool {
	if value == "" {
		return true
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}

// PtrTime returns pointer to time.Time.
func PtrTime(t time.Time) *time.Time { return &t }
