package contenttype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveExtensionWinsOverUpstream(t *testing.T) {
	assert.Equal(t, "image/png", Resolve("a/b/photo.png", "application/octet-stream"))
	assert.Equal(t, "image/png", Resolve("a/b/photo.PNG", "video/mp4"))
	assert.Equal(t, "video/quicktime", Resolve("clips/v.mov", "application/octet-stream"))
	assert.Equal(t, "application/pdf", Resolve("docs/x.pdf", ""))
}

func TestResolveUpstreamUsedWithoutExtension(t *testing.T) {
	assert.Equal(t, "video/mp4", Resolve("x/y/file", "video/mp4"))
	assert.Equal(t, "text/plain", Resolve("x/y/file", "text/plain"))
}

func TestResolveForcedDefault(t *testing.T) {
	assert.Equal(t, "image/jpeg", Resolve("x/y/file", "application/octet-stream"))
	assert.Equal(t, "image/jpeg", Resolve("x/y/file", ""))
}

func TestResolvePhotosSegmentHeuristic(t *testing.T) {
	// Channel-relayed photos have no extension but live under photos/.
	assert.Equal(t, "image/jpeg", Resolve("photos/file_123", "application/octet-stream"))
	assert.Equal(t, "image/jpeg", Resolve("photos/file_123", "text/plain"))
}

func TestResolveFullSuffixTable(t *testing.T) {
	cases := map[string]string{
		"f.jpg":  "image/jpeg",
		"f.jpeg": "image/jpeg",
		"f.png":  "image/png",
		"f.webp": "image/webp",
		"f.gif":  "image/gif",
		"f.svg":  "image/svg+xml",
		"f.mp4":  "video/mp4",
		"f.mov":  "video/quicktime",
		"f.mp3":  "audio/mpeg",
		"f.pdf":  "application/pdf",
	}
	for path, want := range cases {
		assert.Equal(t, want, Resolve(path, ""), path)
	}
}
