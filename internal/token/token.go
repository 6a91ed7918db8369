// Package token issues and validates HMAC-based expiring access tokens
// for alias filenames. A signed link carries the expiry timestamp and a
// signature proving it was minted by a holder of the shared secret.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"
)

// Sign computes the URL-safe signature for filename valid until exp
// (unix seconds). The signed message is "{filename}\n{exp}".
func Sign(filename string, exp int64, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(h, "%s\n%d", filename, exp)
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// Verify reports whether sig authorizes access to filename until exp.
// It fails when the secret is unset, the expiry has passed, or the
// signature does not match. Comparison is constant-time.
func Verify(filename string, exp int64, sig, secret string, now time.Time) bool {
	if secret == "" {
		return false
	}
	if now.Unix() >= exp {
		return false
	}
	expected := Sign(filename, exp, secret)
	return hmac.Equal([]byte(expected), []byte(sig))
}
