// Package urlfix repairs the historical url values stored in the upload
// log. Early versions of the ingestion path ran stored urls through the
// same character sanitizer as filenames, replacing "://" and "/" with
// "-", so the log contains a mix of absolute urls, rooted-relative
// paths, bare-relative paths, and mangled "https---host-a-b" strings.
//
// Normalize is an ordered chain of total, side-effect-free parse
// attempts composed left to right with early exit. It never guesses:
// values that survive no attempt are reported as unparseable with the
// raw value attached for manual repair.
package urlfix

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnparseable is returned when no repair attempt produced a valid
// absolute URL.
var ErrUnparseable = errors.New("unparseable stored url")

// knownPrefixes are path roots this service has ever written relative
// urls under.
var knownPrefixes = []string{"cfile/", "rfile/", "api/", "p/", "file/"}

// Normalize resolves a raw stored url value into an absolute URL,
// using origin (scheme://host) to root relative forms. Attempts, in
// order: already absolute, rooted-relative, bare-relative with a known
// prefix, de-mangled "https---" repair, bare domain without scheme.
func Normalize(raw, origin string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", fmt.Errorf("%w: empty value", ErrUnparseable)
	}
	origin = strings.TrimRight(origin, "/")

	attempts := []func(string, string) (string, bool){
		tryAbsolute,
		tryRooted,
		tryKnownPrefix,
		tryDemangle,
		tryBareDomain,
	}
	for _, attempt := range attempts {
		if u, ok := attempt(v, origin); ok {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnparseable, raw)
}

// tryAbsolute accepts values that already parse as http(s) URLs.
func tryAbsolute(v, _ string) (string, bool) {
	u, err := url.Parse(v)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return u.String(), true
}

// tryRooted resolves "/cfile/abc"-style paths against the origin.
func tryRooted(v, origin string) (string, bool) {
	if !strings.HasPrefix(v, "/") || strings.HasPrefix(v, "//") {
		return "", false
	}
	return checkAbsolute(origin + v)
}

// tryKnownPrefix resolves "rfile/abc"-style paths written without the
// leading slash.
func tryKnownPrefix(v, origin string) (string, bool) {
	for _, p := range knownPrefixes {
		if strings.HasPrefix(v, p) {
			return checkAbsolute(origin + "/" + v)
		}
	}
	return "", false
}

// tryDemangle repairs urls whose "://" and "/" were replaced with "-":
// "https---host.tld-a-b-c.png" becomes "https://host.tld/a/b/c.png".
// Dashes that were genuinely part of a path segment cannot be told
// apart from mangled separators; this is a best-effort repair for the
// dominant host-plus-clean-segments shape.
func tryDemangle(v, _ string) (string, bool) {
	var scheme string
	switch {
	case strings.HasPrefix(v, "https---"):
		scheme, v = "https", strings.TrimPrefix(v, "https---")
	case strings.HasPrefix(v, "http---"):
		scheme, v = "http", strings.TrimPrefix(v, "http---")
	default:
		return "", false
	}
	parts := strings.Split(v, "-")
	if len(parts) == 0 || !strings.Contains(parts[0], ".") {
		return "", false
	}
	return checkAbsolute(scheme + "://" + parts[0] + "/" + strings.Join(parts[1:], "/"))
}

// tryBareDomain accepts "host.tld/path" values missing the scheme.
func tryBareDomain(v, _ string) (string, bool) {
	head := v
	if i := strings.IndexByte(v, '/'); i >= 0 {
		head = v[:i]
	}
	if !strings.Contains(head, ".") || strings.ContainsAny(head, " \t") {
		return "", false
	}
	return checkAbsolute("https://" + v)
}

// checkAbsolute validates that the candidate parses to an absolute
// http(s) URL with a host.
func checkAbsolute(candidate string) (string, bool) {
	u, err := url.Parse(candidate)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	return u.String(), true
}
