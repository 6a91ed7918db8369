// Package contenttype decides the MIME type to emit for a stored file.
//
// Upstream messaging APIs frequently report application/octet-stream for
// photos; the extension in the storage path is more reliable than that,
// and a last-resort image/jpeg default keeps the common preview case
// usable.
package contenttype

import "strings"

// suffixTypes is the fixed extension table, checked in order.
var suffixTypes = []struct {
	suffix string
	mime   string
}{
	{".jpg", "image/jpeg"},
	{".jpeg", "image/jpeg"},
	{".png", "image/png"},
	{".webp", "image/webp"},
	{".gif", "image/gif"},
	{".svg", "image/svg+xml"},
	{".mp4", "video/mp4"},
	{".mov", "video/quicktime"},
	{".mp3", "audio/mpeg"},
	{".pdf", "application/pdf"},
}

// GenericBinary is the upstream type that must never reach a browser.
const GenericBinary = "application/octet-stream"

// fallback keeps image previews working when nothing better is known.
const fallback = "image/jpeg"

// Resolve picks the Content-Type for a stored file. Priority: extension
// of storagePath, then upstreamType verbatim, then image/jpeg when the
// upstream value is absent or the generic binary type.
func Resolve(storagePath, upstreamType string) string {
	if t := guessFromPath(storagePath); t != "" {
		return t
	}
	if upstreamType != "" && upstreamType != GenericBinary {
		return upstreamType
	}
	return fallback
}

// guessFromPath returns "" when the path gives no usable hint.
func guessFromPath(path string) string {
	p := strings.ToLower(path)
	for _, st := range suffixTypes {
		if strings.HasSuffix(p, st.suffix) {
			return st.mime
		}
	}
	// Channel-relayed photos land under a photos/ directory with no
	// extension on the file itself.
	if strings.Contains(p, "photos/") {
		return "image/jpeg"
	}
	return ""
}
