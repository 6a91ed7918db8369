// Package admin exposes the privileged surface: login, signed-link
// minting, log listing, and batch deletion.
package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/imgbed/service/internal/imglog"
	"github.com/imgbed/service/internal/token"
)

// ErrBadCredentials is returned when the admin token does not match.
var ErrBadCredentials = errors.New("bad admin credentials")

// ErrSigningDisabled is returned when no signing secret is configured.
var ErrSigningDisabled = errors.New("signing secret is not set")

// minExpirySeconds floors how short a signed link may live.
const minExpirySeconds = 60

// defaultExpirySeconds applies when the caller gives no expiry.
const defaultExpirySeconds = 86400

// Store is the log-store dependency of the admin surface.
type Store interface {
	Page(ctx context.Context, providerFilter string, cursor int64, limit int) ([]imglog.LogEntry, int64, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

// Service implements the privileged operations.
type Service struct {
	store         Store
	adminToken    string
	jwtSecret     string
	signingSecret string
	origin        string
	now           func() time.Time
}

// NewService creates an admin Service. origin is the default base for
// minted alias links.
func NewService(store Store, adminToken, jwtSecret, signingSecret, origin string) *Service {
	return &Service{
		store:         store,
		adminToken:    adminToken,
		jwtSecret:     jwtSecret,
		signingSecret: signingSecret,
		origin:        origin,
		now:           time.Now,
	}
}

// Login exchanges the shared admin token for a JWT.
func (s *Service) Login(adminToken string) (string, error) {
	if s.adminToken == "" ||
		subtle.ConstantTimeCompare([]byte(adminToken), []byte(s.adminToken)) != 1 {
		return "", ErrBadCredentials
	}

	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  s.now().Unix(),
		"exp":  s.now().Add(24 * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// SignLink mints a fully qualified alias URL carrying exp and sig for
// filename. base overrides the configured origin; expSeconds below the
// floor is raised to it.
func (s *Service) SignLink(filename, base string, expSeconds int64) (string, error) {
	if s.signingSecret == "" {
		return "", ErrSigningDisabled
	}
	if expSeconds <= 0 {
		expSeconds = defaultExpirySeconds
	}
	if expSeconds < minExpirySeconds {
		expSeconds = minExpirySeconds
	}

	b := normalizeBase(base)
	if b == "" {
		b = normalizeBase(s.origin)
	}

	exp := s.now().Unix() + expSeconds
	sig := token.Sign(filename, exp, s.signingSecret)
	return fmt.Sprintf("%s/p/%s?exp=%d&sig=%s", b, url.PathEscape(filename), exp, sig), nil
}

// List pages the upload log newest-first.
func (s *Service) List(ctx context.Context, providerFilter string, cursor int64, limit int) ([]imglog.LogEntry, int64, error) {
	return s.store.Page(ctx, providerFilter, cursor, limit)
}

// Delete removes the given log entries.
func (s *Service) Delete(ctx context.Context, ids []string) (int64, error) {
	return s.store.DeleteByIDs(ctx, ids)
}

// normalizeBase forces a scheme and strips trailing slashes.
func normalizeBase(base string) string {
	v := strings.TrimSpace(base)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
		v = "https://" + v
	}
	return strings.TrimRight(v, "/")
}
