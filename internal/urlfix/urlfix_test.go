package urlfix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const origin = "https://img.example.com"

func TestNormalizeAbsolutePassesThrough(t *testing.T) {
	u, err := Normalize("https://other.example.com/api/p/x.png", origin)
	require.NoError(t, err)
	assert.Equal(t, "https://other.example.com/api/p/x.png", u)
}

func TestNormalizeRootedRelative(t *testing.T) {
	u, err := Normalize("/cfile/abc", origin)
	require.NoError(t, err)
	assert.Equal(t, origin+"/cfile/abc", u)
}

func TestNormalizeKnownPrefixWithoutSlash(t *testing.T) {
	u, err := Normalize("rfile/2026-01-29-001.png", origin)
	require.NoError(t, err)
	assert.Equal(t, origin+"/rfile/2026-01-29-001.png", u)
}

func TestNormalizeDemanglesSanitizedURL(t *testing.T) {
	u, err := Normalize("https---imaes.example.com-api-p-x.png", origin)
	require.NoError(t, err)
	assert.Equal(t, "https://imaes.example.com/api/p/x.png", u)
}

func TestNormalizeDemanglesHTTPVariant(t *testing.T) {
	u, err := Normalize("http---host.tld-cfile-abc", origin)
	require.NoError(t, err)
	assert.Equal(t, "http://host.tld/cfile/abc", u)
}

func TestNormalizeBareDomain(t *testing.T) {
	u, err := Normalize("imaes.example.com/api/p/x.png", origin)
	require.NoError(t, err)
	assert.Equal(t, "https://imaes.example.com/api/p/x.png", u)
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"not a url", "", "   ", "https---nohost"} {
		_, err := Normalize(raw, origin)
		assert.ErrorIs(t, err, ErrUnparseable, "raw=%q", raw)
	}
}

func TestNormalizeErrorCarriesRawValue(t *testing.T) {
	_, err := Normalize("not a url", origin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a url")
}
