// Package upload ingests files into a backing provider and records
// them in the upload log.
package upload

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/imgbed/service/internal/imglog"
	"github.com/imgbed/service/internal/naming"
	"github.com/imgbed/service/internal/provider"
	"github.com/imgbed/service/internal/storage"
	"github.com/imgbed/service/internal/telegram"
)

// Request carries one incoming upload.
type Request struct {
	Body         io.Reader
	Size         int64
	OriginalName string
	ContentType  string
	// RequestedBase, when non-empty, overrides auto naming.
	RequestedBase string
	// AutoDaily enables "{date}-{seq}" naming when no base was given.
	AutoDaily bool
}

// Result reports a finished upload. Logged is false when the provider
// accepted the bytes but the log write failed; the upload itself still
// succeeded.
type Result struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Logged   bool   `json:"logged"`
}

// Service runs uploads against both providers.
type Service struct {
	allocator *naming.Allocator
	recorder  *imglog.Recorder
	objects   storage.Storage
	tg        *telegram.Client
	now       func() time.Time
}

// NewService creates an upload Service. Log-write failures are handled
// inside the recorder; the service only reports them in the result.
func NewService(allocator *naming.Allocator, recorder *imglog.Recorder, objects storage.Storage, tg *telegram.Client) *Service {
	return &Service{
		allocator: allocator,
		recorder:  recorder,
		objects:   objects,
		tg:        tg,
		now:       time.Now,
	}
}

// ToTelegram posts the file to the bot channel and records it. The
// Telegram file_id doubles as the entry id; the stored url is the
// relative relay path.
func (s *Service) ToTelegram(ctx context.Context, req Request) (*Result, error) {
	if !s.tg.Configured() {
		return nil, fmt.Errorf("telegram provider not configured")
	}

	ext := s.extHint(req)
	fileID, err := s.tg.Upload(ctx, req.OriginalName, req.ContentType, req.Body)
	if err != nil {
		return nil, fmt.Errorf("telegram upload: %w", err)
	}

	name, err := s.allocator.Allocate(ctx, req.RequestedBase, req.AutoDaily, req.OriginalName, ext, nil)
	if err != nil {
		return nil, err
	}

	relURL := "/cfile/" + fileID
	rec := s.recorder.Record(ctx, fileID, relURL, string(provider.Telegram), name, s.now().UnixMilli())

	return &Result{
		ID:       fileID,
		URL:      relURL,
		Name:     name,
		Provider: string(provider.Telegram),
		Logged:   rec.Logged,
	}, nil
}

// ToObjectStore puts the file into the bucket under an allocated key
// and records it. The key is literal, so allocation runs an existence
// check with bounded collision retries.
func (s *Service) ToObjectStore(ctx context.Context, req Request) (*Result, error) {
	ext := s.extHint(req)
	key, err := s.allocator.Allocate(ctx, req.RequestedBase, req.AutoDaily, req.OriginalName, ext, s.objects.Exists)
	if err != nil {
		return nil, err
	}

	if err := s.objects.Upload(ctx, key, req.Body, req.Size, req.ContentType); err != nil {
		return nil, fmt.Errorf("object store upload: %w", err)
	}

	id := uuid.NewString()
	relURL := "/rfile/" + key
	rec := s.recorder.Record(ctx, id, relURL, string(provider.ObjectStore), key, s.now().UnixMilli())

	return &Result{
		ID:       id,
		URL:      relURL,
		Name:     key,
		Provider: string(provider.ObjectStore),
		Logged:   rec.Logged,
	}, nil
}

// extHint derives the filename extension from the upload's MIME type,
// falling back to the original name's own extension.
func (s *Service) extHint(req Request) string {
	if ext := naming.ExtFromMime(req.ContentType); ext != "" {
		return ext
	}
	return naming.ExtFromName(req.OriginalName)
}
