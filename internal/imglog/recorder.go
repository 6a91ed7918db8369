package imglog

import (
	"context"

	"go.uber.org/zap"
)

// Appender is the log-write dependency of the Recorder.
type Appender interface {
	Append(ctx context.Context, e *LogEntry) error
}

// RecordResult distinguishes full success from "upload succeeded, log
// write failed". Err is set only in the latter case.
type RecordResult struct {
	Logged bool
	Err    error
}

// Recorder writes log entries after a provider has accepted an upload.
// Failures are swallowed: the uploaded bytes are already durable with
// the provider, so a lost log row must never fail the upload itself.
type Recorder struct {
	store Appender
	log   *zap.SugaredLogger
}

// NewRecorder creates a Recorder writing through store.
func NewRecorder(store Appender, log *zap.SugaredLogger) *Recorder {
	return &Recorder{store: store, log: log}
}

// Record appends the entry for a finished upload. It never returns an
// error; a failed append is reported in the result and logged as a
// warning.
func (r *Recorder) Record(ctx context.Context, id, url, prov, filename string, createdAt int64) RecordResult {
	err := r.store.Append(ctx, &LogEntry{
		ID:        id,
		URL:       url,
		Provider:  prov,
		Filename:  filename,
		CreatedAt: createdAt,
	})
	if err != nil {
		r.log.Warnw("upload log write failed",
			"id", id, "provider", prov, "filename", filename, "err", err)
		return RecordResult{Logged: false, Err: err}
	}
	return RecordResult{Logged: true}
}
