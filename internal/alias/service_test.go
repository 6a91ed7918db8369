package alias

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgbed/service/internal/imglog"
	"github.com/imgbed/service/internal/provider"
	"github.com/imgbed/service/internal/token"
	"github.com/imgbed/service/internal/urlfix"
)

const testOrigin = "https://img.example.com"

// memStore keeps entries in memory, selecting the newest per filename
// like the SQL store does.
type memStore struct {
	entries []imglog.LogEntry
}

func (m *memStore) LatestByFilename(_ context.Context, filename string) (*imglog.LogEntry, error) {
	var latest *imglog.LogEntry
	for i := range m.entries {
		e := &m.entries[i]
		if e.Filename != filename {
			continue
		}
		if latest == nil || e.CreatedAt > latest.CreatedAt {
			latest = e
		}
	}
	if latest == nil {
		return nil, imglog.ErrNotFound
	}
	return latest, nil
}

func newTestService(store LogStore, secret string) *Service {
	return NewService(store, secret, testOrigin)
}

func TestResolveLastWriteWins(t *testing.T) {
	store := &memStore{entries: []imglog.LogEntry{
		{ID: "old", URL: "/cfile/old-id", Provider: "tgchannel", Filename: "a.png", CreatedAt: 100},
		{ID: "new", URL: "/rfile/a.png", Provider: "r2", Filename: "a.png", CreatedAt: 200},
	}}
	svc := newTestService(store, "")

	res, err := svc.Resolve(context.Background(), "a.png", nil)
	require.NoError(t, err)

	assert.Equal(t, provider.ObjectStore, res.Provider)
	assert.Equal(t, "a.png", res.Key)
	assert.Equal(t, int64(200), res.Entry.CreatedAt)
}

func TestResolveTelegramRedirect(t *testing.T) {
	store := &memStore{entries: []imglog.LogEntry{
		{ID: "x", URL: "/cfile/AgACAgUAAx", Provider: "telegram", Filename: "b.png", CreatedAt: 1},
	}}
	svc := newTestService(store, "")

	res, err := svc.Resolve(context.Background(), "b.png", nil)
	require.NoError(t, err)

	assert.Equal(t, provider.Telegram, res.Provider)
	assert.Equal(t, "/cfile/AgACAgUAAx", res.RedirectTo)
	assert.Empty(t, res.Key)
}

func TestResolveRepairsMangledURL(t *testing.T) {
	// Historical rows ran the stored url through the filename
	// sanitizer, replacing "://" and "/" with "-".
	store := &memStore{entries: []imglog.LogEntry{
		{ID: "x", URL: "https---img.example.com-api-cfile-AgACAgUAAx", Provider: "tg", Filename: "c.png", CreatedAt: 1},
	}}
	svc := newTestService(store, "")

	res, err := svc.Resolve(context.Background(), "c.png", nil)
	require.NoError(t, err)
	assert.Equal(t, "/cfile/AgACAgUAAx", res.RedirectTo)
}

func TestResolveInfersProviderFromURLShape(t *testing.T) {
	store := &memStore{entries: []imglog.LogEntry{
		{ID: "x", URL: "/rfile/pic.png", Provider: "", Filename: "pic.png", CreatedAt: 1},
	}}
	svc := newTestService(store, "")

	res, err := svc.Resolve(context.Background(), "pic.png", nil)
	require.NoError(t, err)
	assert.Equal(t, provider.ObjectStore, res.Provider)
	assert.Equal(t, "pic.png", res.Key)
}

func TestResolveUnknownProviderCarriesRawValues(t *testing.T) {
	store := &memStore{entries: []imglog.LogEntry{
		{ID: "x", URL: "/somewhere/else", Provider: "imgur", Filename: "d.png", CreatedAt: 1},
	}}
	svc := newTestService(store, "")

	_, err := svc.Resolve(context.Background(), "d.png", nil)
	var unknown *UnknownProviderError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "imgur", unknown.RawProvider)
	assert.Equal(t, "/somewhere/else", unknown.RawURL)
}

func TestResolveUnparseableStoredURL(t *testing.T) {
	store := &memStore{entries: []imglog.LogEntry{
		{ID: "x", URL: "not a url", Provider: "tg", Filename: "e.png", CreatedAt: 1},
	}}
	svc := newTestService(store, "")

	_, err := svc.Resolve(context.Background(), "e.png", nil)
	assert.ErrorIs(t, err, urlfix.ErrUnparseable)
}

func TestResolveNotFound(t *testing.T) {
	svc := newTestService(&memStore{}, "")

	_, err := svc.Resolve(context.Background(), "missing.png", nil)
	assert.ErrorIs(t, err, imglog.ErrNotFound)
}

func TestResolveAccessStateMachine(t *testing.T) {
	store := &memStore{entries: []imglog.LogEntry{
		{ID: "x", URL: "/rfile/f.png", Provider: "r2", Filename: "f.png", CreatedAt: 1},
	}}
	svc := newTestService(store, "s3cret")

	ctx := context.Background()
	exp := time.Now().Add(time.Hour).Unix()
	sig := token.Sign("f.png", exp, "s3cret")

	// No params: public path.
	_, err := svc.Resolve(ctx, "f.png", nil)
	assert.NoError(t, err)

	// Both present and valid: authorized.
	_, err = svc.Resolve(ctx, "f.png", &Access{Exp: exp, Sig: sig})
	assert.NoError(t, err)

	// Either present alone: rejected.
	_, err = svc.Resolve(ctx, "f.png", &Access{Exp: exp})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Resolve(ctx, "f.png", &Access{Sig: sig})
	assert.ErrorIs(t, err, ErrForbidden)

	// Wrong signature: rejected.
	_, err = svc.Resolve(ctx, "f.png", &Access{Exp: exp, Sig: "bogus"})
	assert.ErrorIs(t, err, ErrForbidden)

	// Valid signature, past expiry: expired.
	pastExp := time.Now().Add(-time.Second).Unix()
	pastSig := token.Sign("f.png", pastExp, "s3cret")
	_, err = svc.Resolve(ctx, "f.png", &Access{Exp: pastExp, Sig: pastSig})
	assert.ErrorIs(t, err, ErrExpired)
}

func TestResolveSignedAccessDisabledWithoutSecret(t *testing.T) {
	store := &memStore{entries: []imglog.LogEntry{
		{ID: "x", URL: "/rfile/g.png", Provider: "r2", Filename: "g.png", CreatedAt: 1},
	}}
	svc := newTestService(store, "")

	exp := time.Now().Add(time.Hour).Unix()
	sig := token.Sign("g.png", exp, "")
	_, err := svc.Resolve(context.Background(), "g.png", &Access{Exp: exp, Sig: sig})
	assert.ErrorIs(t, err, ErrForbidden)
}
