// Package alias resolves logical filenames to their backing store.
// A filename is stable across re-uploads and provider moves; resolution
// always selects the newest log entry bearing the name.
package alias

import (
	"context"
	"crypto/hmac"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/imgbed/service/internal/imglog"
	"github.com/imgbed/service/internal/provider"
	"github.com/imgbed/service/internal/token"
	"github.com/imgbed/service/internal/urlfix"
)

// ErrForbidden is returned for an invalid signature, or when exactly
// one of exp/sig was supplied. There is no partial-credential state.
var ErrForbidden = errors.New("invalid access signature")

// ErrExpired is returned for a valid signature whose expiry has passed.
var ErrExpired = errors.New("access link expired")

// UnknownProviderError reports a log entry whose provider tag could not
// be normalized and whose url shape gave no hint either. The raw values
// are carried for diagnosis; resolution never guesses the final bytes.
type UnknownProviderError struct {
	RawProvider string
	RawURL      string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q for url %q", e.RawProvider, e.RawURL)
}

// Access carries the optional exp/sig query parameters of a request.
type Access struct {
	Exp int64
	Sig string
}

// Resolution is the outcome of resolving a filename: either a redirect
// (Telegram relay) or a direct object stream (bucket key).
type Resolution struct {
	Provider provider.Provider
	// RedirectTo is set for the Telegram provider: the local relay
	// path to send the client to.
	RedirectTo string
	// Key is set for the object-store provider: the bucket key to
	// stream directly.
	Key string
	// Entry is the log entry the resolution came from.
	Entry *imglog.LogEntry
}

// LogStore is the read-side dependency of the resolver.
type LogStore interface {
	LatestByFilename(ctx context.Context, filename string) (*imglog.LogEntry, error)
}

// Service resolves aliases against the upload log.
type Service struct {
	store  LogStore
	secret string
	origin string
	now    func() time.Time
}

// NewService creates a resolver. secret signs private links (empty
// disables signed access entirely); origin roots relative historical
// urls.
func NewService(store LogStore, secret, origin string) *Service {
	return &Service{store: store, secret: secret, origin: origin, now: time.Now}
}

// Resolve maps a logical filename to its current backing location.
// When access is non-nil the signature is verified before any data is
// touched; signature failures are fatal, never downgraded to public
// access.
func (s *Service) Resolve(ctx context.Context, filename string, access *Access) (*Resolution, error) {
	if access != nil {
		if err := s.checkAccess(filename, access); err != nil {
			return nil, err
		}
	}

	entry, err := s.store.LatestByFilename(ctx, filename)
	if err != nil {
		return nil, err
	}

	prov := provider.Normalize(entry.Provider)
	if prov == provider.Unknown {
		prov = provider.InferFromURL(entry.URL)
	}

	switch prov {
	case provider.Telegram:
		fileID, err := s.extractHandle(entry.URL, "cfile")
		if err != nil {
			return nil, err
		}
		return &Resolution{Provider: prov, RedirectTo: "/cfile/" + fileID, Entry: entry}, nil
	case provider.ObjectStore:
		key, err := s.extractHandle(entry.URL, "rfile")
		if err != nil {
			return nil, err
		}
		return &Resolution{Provider: prov, Key: key, Entry: entry}, nil
	default:
		return nil, &UnknownProviderError{RawProvider: entry.Provider, RawURL: entry.URL}
	}
}

// checkAccess enforces the signed-link state machine: bad signatures
// and expired links are distinct failures, both fatal.
func (s *Service) checkAccess(filename string, access *Access) error {
	if access.Sig == "" || access.Exp == 0 {
		return ErrForbidden
	}
	if s.secret == "" {
		return ErrForbidden
	}
	expected := token.Sign(filename, access.Exp, s.secret)
	if !hmac.Equal([]byte(expected), []byte(access.Sig)) {
		return ErrForbidden
	}
	if s.now().Unix() >= access.Exp {
		return ErrExpired
	}
	return nil
}

// extractHandle recovers the provider handle (Telegram file_id or
// bucket key) from a stored url, repairing historical shapes first.
// marker names the path segment the handle follows.
func (s *Service) extractHandle(rawURL, marker string) (string, error) {
	normalized, err := urlfix.Normalize(rawURL, s.origin)
	if err != nil {
		return "", err
	}
	needle := "/" + marker + "/"
	i := strings.LastIndex(normalized, needle)
	if i < 0 {
		return "", fmt.Errorf("%w: no %s segment in %q", urlfix.ErrUnparseable, marker, rawURL)
	}
	handle := normalized[i+len(needle):]
	if handle == "" {
		return "", fmt.Errorf("%w: empty handle in %q", urlfix.ErrUnparseable, rawURL)
	}
	return handle, nil
}
