// Package naming allocates collision-safe logical filenames for new
// uploads.
//
// Daily auto-naming counts today's log entries and formats the next
// sequence number. The count-then-insert pair is not atomic: two
// concurrent uploads in the same window can draw the same sequence
// number. That race is accepted; alias resolution is last-write-wins
// on created_at and never depends on filenames being unique.
package naming

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNameAllocation is returned when the collision retry budget is
// exhausted.
var ErrNameAllocation = errors.New("filename allocation failed")

// maxAttempts bounds existence-check retries for literal-key stores.
const maxAttempts = 2

// maxBaseLen caps sanitized names, matching the historical log schema.
const maxBaseLen = 120

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// Location is the calendar timezone for daily sequence names.
var Location = time.FixedZone("CST", 8*60*60)

// DailyCounter reports how many log entries were created on the given
// local calendar day.
type DailyCounter interface {
	CountOnDay(ctx context.Context, day time.Time) (int, error)
}

// ExistsFunc reports whether a candidate key is already taken in a
// literal-key store. Nil means no existence check applies.
type ExistsFunc func(ctx context.Context, key string) (bool, error)

// Allocator produces logical filenames for new uploads.
type Allocator struct {
	counter DailyCounter
	now     func() time.Time
}

// NewAllocator creates an Allocator backed by the given daily counter.
func NewAllocator(counter DailyCounter) *Allocator {
	return &Allocator{counter: counter, now: time.Now}
}

// Allocate picks the filename for a new upload.
//
// A non-empty requestedBase wins: it is sanitized and extHint appended
// unless already present. Otherwise, when useAutoDaily is set, a
// "{date}-{seq}" name is synthesized from today's entry count. The
// final fallback is the sanitized original upload name, or a timestamp
// default when that too is empty. When exists is non-nil the candidate
// is checked and retried a bounded number of times with a short random
// suffix before giving up with ErrNameAllocation.
func (a *Allocator) Allocate(ctx context.Context, requestedBase string, useAutoDaily bool, originalName, extHint string, exists ExistsFunc) (string, error) {
	candidate, err := a.choose(ctx, requestedBase, useAutoDaily, originalName, extHint)
	if err != nil {
		return "", err
	}
	if exists == nil {
		return candidate, nil
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check key %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = withRandomSuffix(candidate)
	}
	return "", fmt.Errorf("%w: retries exhausted for %q", ErrNameAllocation, candidate)
}

func (a *Allocator) choose(ctx context.Context, requestedBase string, useAutoDaily bool, originalName, extHint string) (string, error) {
	if base := Sanitize(requestedBase); base != "" {
		if extHint != "" && !strings.HasSuffix(base, extHint) {
			return base + extHint, nil
		}
		return base, nil
	}

	if useAutoDaily {
		now := a.now().In(Location)
		n, err := a.counter.CountOnDay(ctx, now)
		if err != nil {
			return "", fmt.Errorf("count today's entries: %w", err)
		}
		return fmt.Sprintf("%s-%03d%s", now.Format("2006-01-02"), n+1, extHint), nil
	}

	if base := Sanitize(originalName); base != "" {
		if extHint != "" && !strings.HasSuffix(base, extHint) {
			return base + extHint, nil
		}
		return base, nil
	}
	return fmt.Sprintf("upload-%d%s", a.now().UnixMilli(), extHint), nil
}

// Sanitize strips path separators, replaces unsafe characters with "-",
// and caps the length. Only [a-zA-Z0-9-_.] survive.
func Sanitize(name string) string {
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, `\`, "-")
	s = unsafeChars.ReplaceAllString(s, "-")
	if len(s) > maxBaseLen {
		s = s[:maxBaseLen]
	}
	return s
}

// withRandomSuffix inserts a short random token before the extension.
func withRandomSuffix(name string) string {
	suffix := uuid.NewString()[:8]
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i] + "-" + suffix + name[i:]
	}
	return name + "-" + suffix
}

// ExtFromMime maps an upload's MIME type to a filename extension, for
// uploads whose original name carries none.
func ExtFromMime(mime string) string {
	switch {
	case strings.Contains(mime, "png"):
		return ".png"
	case strings.Contains(mime, "jpeg"), strings.Contains(mime, "jpg"):
		return ".jpg"
	case strings.Contains(mime, "gif"):
		return ".gif"
	case strings.Contains(mime, "webp"):
		return ".webp"
	default:
		return ""
	}
}

// ExtFromName returns the extension of name including the dot, or "".
func ExtFromName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 && i < len(name)-1 {
		return name[i:]
	}
	return ""
}
