// Package provider defines the closed set of backing stores and the
// normalization of the historically inconsistent provider tags stored
// in the upload log.
package provider

import "strings"

// Provider identifies which backing store holds the bytes of an upload.
type Provider string

const (
	// Telegram is the bot-channel relay store.
	Telegram Provider = "tg"
	// ObjectStore is the S3-compatible bucket store (Cloudflare R2 style).
	ObjectStore Provider = "r2"
	// Unknown is the terminal variant for tags that cannot be normalized.
	// Callers must treat it explicitly; it is never a silent fallback.
	Unknown Provider = ""
)

// Normalize maps a raw stored provider tag to the canonical enum.
// Historical rows carry several spellings per provider, in mixed case.
// The function is total: anything unrecognized maps to Unknown.
func Normalize(raw string) Provider {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "tg", "tgchannel", "telegram":
		return Telegram
	case "r2", "cloudflare_r2":
		return ObjectStore
	default:
		return Unknown
	}
}

// InferFromURL guesses the provider from the shape of a stored url value.
// Used only when the provider tag itself failed to normalize. Returns
// Unknown when the url carries neither path marker.
func InferFromURL(url string) Provider {
	switch {
	case strings.Contains(url, "/cfile/"), strings.Contains(url, "-cfile-"):
		return Telegram
	case strings.Contains(url, "/rfile/"), strings.Contains(url, "-rfile-"):
		return ObjectStore
	default:
		return Unknown
	}
}

// String returns the canonical tag, or "unknown" for the terminal variant.
func (p Provider) String() string {
	if p == Unknown {
		return "unknown"
	}
	return string(p)
}
