package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	sig := Sign("2026-01-29-001.png", exp, "s3cret")
	require.NotEmpty(t, sig)

	assert.True(t, Verify("2026-01-29-001.png", exp, sig, "s3cret", time.Now()))
}

func TestVerifyFailsAtExpiry(t *testing.T) {
	now := time.Now()
	exp := now.Unix()

	sig := Sign("a.png", exp, "s3cret")
	// now == exp is already expired (exclusive validity window).
	assert.False(t, Verify("a.png", exp, sig, "s3cret", now))
	assert.False(t, Verify("a.png", exp, sig, "s3cret", now.Add(time.Minute)))
	assert.True(t, Verify("a.png", exp, sig, "s3cret", now.Add(-time.Minute)))
}

func TestVerifyRejectsMutatedSignature(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	sig := Sign("a.png", exp, "s3cret")

	for i := range sig {
		mutated := []byte(sig)
		mutated[i] ^= 0x01
		assert.False(t, Verify("a.png", exp, string(mutated), "s3cret", time.Now()),
			"flipped byte %d should invalidate the signature", i)
	}
}

func TestVerifyRejectsUnsetSecret(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	sig := Sign("a.png", exp, "")
	assert.False(t, Verify("a.png", exp, sig, "", time.Now()))
}

func TestVerifyRejectsWrongFilename(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	sig := Sign("a.png", exp, "s3cret")
	assert.False(t, Verify("b.png", exp, sig, "s3cret", time.Now()))
}

func TestSignIsURLSafe(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	sig := Sign("файл с пробелами.png", exp, "s3cret")
	assert.NotContains(t, sig, "+")
	assert.NotContains(t, sig, "/")
	assert.NotContains(t, sig, "=")
}
