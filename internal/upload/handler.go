package upload

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/imgbed/service/internal/naming"
	"github.com/imgbed/service/internal/response"
)

// maxUploadBytes bounds a single multipart upload held in memory/disk.
const maxUploadBytes = 50 << 20

// Handler holds HTTP handlers for the two upload endpoints.
type Handler struct {
	svc *Service
	log *zap.SugaredLogger
}

// NewHandler creates a new upload Handler.
func NewHandler(svc *Service, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, log: log}
}

// UploadTelegram godoc
//
//	@Summary		Upload a file via the Telegram channel provider
//	@Tags			admin
//	@Accept			mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file			formData	file	true	"file to upload"
//	@Param			name			formData	string	false	"requested logical name"
//	@Param			autoDailyName	formData	string	false	"date-sequential naming, default true"
//	@Success		200	{object}	response.Envelope{data=Result}
//	@Failure		400	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/api/admin/upload/tgchannel [post]
func (h *Handler) UploadTelegram(w http.ResponseWriter, r *http.Request) {
	req, cleanup, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	defer cleanup()

	res, err := h.svc.ToTelegram(r.Context(), *req)
	if err != nil {
		h.writeUploadError(w, "tgchannel", err)
		return
	}
	response.OK(w, res)
}

// UploadObjectStore godoc
//
//	@Summary		Upload a file via the object-store provider
//	@Tags			admin
//	@Accept			mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file			formData	file	true	"file to upload"
//	@Param			name			formData	string	false	"requested logical name"
//	@Param			autoDailyName	formData	string	false	"date-sequential naming, default true"
//	@Success		200	{object}	response.Envelope{data=Result}
//	@Failure		400	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/api/admin/upload/r2 [post]
func (h *Handler) UploadObjectStore(w http.ResponseWriter, r *http.Request) {
	req, cleanup, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	defer cleanup()

	res, err := h.svc.ToObjectStore(r.Context(), *req)
	if err != nil {
		h.writeUploadError(w, "r2", err)
		return
	}
	response.OK(w, res)
}

// parseForm extracts the multipart upload and its naming options. On
// failure it writes the error response itself and returns ok=false.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) (*Request, func(), bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "invalid form data")
		return nil, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file is required")
		return nil, nil, false
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req := &Request{
		Body:          file,
		Size:          header.Size,
		OriginalName:  header.Filename,
		ContentType:   contentType,
		RequestedBase: r.FormValue("name"),
		AutoDaily:     r.FormValue("autoDailyName") != "false",
	}
	return req, func() { _ = file.Close() }, true
}

// writeUploadError maps service failures onto HTTP statuses. Note that
// a failed log write never lands here: the upload already succeeded and
// the result reports Logged=false instead.
func (h *Handler) writeUploadError(w http.ResponseWriter, prov string, err error) {
	h.log.Errorw("upload failed", "provider", prov, "err", err)
	if errors.Is(err, naming.ErrNameAllocation) {
		response.Error(w, http.StatusInternalServerError, "filename allocation failed")
		return
	}
	response.Error(w, http.StatusInternalServerError, "upload failed")
}
