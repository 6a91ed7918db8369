package imglog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAppender struct {
	entries []*LogEntry
	err     error
}

func (s *stubAppender) Append(_ context.Context, e *LogEntry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, e)
	return nil
}

func TestRecordSuccess(t *testing.T) {
	store := &stubAppender{}
	rec := NewRecorder(store, zap.NewNop().Sugar())

	res := rec.Record(context.Background(), "file-id", "/cfile/file-id", "tg", "a.png", 1700000000000)

	assert.True(t, res.Logged)
	assert.NoError(t, res.Err)
	require.Len(t, store.entries, 1)
	assert.Equal(t, "file-id", store.entries[0].ID)
	assert.Equal(t, "/cfile/file-id", store.entries[0].URL)
	assert.Equal(t, "tg", store.entries[0].Provider)
	assert.Equal(t, "a.png", store.entries[0].Filename)
	assert.Equal(t, int64(1700000000000), store.entries[0].CreatedAt)
}

func TestRecordSwallowsAppendFailure(t *testing.T) {
	boom := errors.New("db down")
	rec := NewRecorder(&stubAppender{err: boom}, zap.NewNop().Sugar())

	// A lost log row must never propagate as an upload failure.
	res := rec.Record(context.Background(), "id", "/rfile/x.png", "r2", "x.png", 1)

	assert.False(t, res.Logged)
	assert.ErrorIs(t, res.Err, boom)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, defaultPageLimit, clampLimit(0))
	assert.Equal(t, defaultPageLimit, clampLimit(-5))
	assert.Equal(t, 100, clampLimit(100))
	assert.Equal(t, maxPageLimit, clampLimit(maxPageLimit))
	assert.Equal(t, maxPageLimit, clampLimit(100000))
}

func TestPageCursor(t *testing.T) {
	items := []LogEntry{{CreatedAt: 300}, {CreatedAt: 200}, {CreatedAt: 100}}

	// Full page: cursor is the last item's created_at.
	assert.Equal(t, int64(100), pageCursor(items, 3))
	// Short page: end of log, no cursor.
	assert.Equal(t, int64(0), pageCursor(items, 4))
	assert.Equal(t, int64(0), pageCursor(nil, 1))
}
