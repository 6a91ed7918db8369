package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/imgbed/service/internal/imglog"
	"github.com/imgbed/service/internal/response"
)

// Handler holds HTTP handlers for the admin endpoints.
type Handler struct {
	svc *Service
	log *zap.SugaredLogger
}

// NewHandler creates a new admin Handler.
func NewHandler(svc *Service, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, log: log}
}

type loginRequest struct {
	Token string `json:"token"`
}

type loginData struct {
	Token string `json:"token" example:"eyJhbGci..."`
}

// Login godoc
//
//	@Summary		Exchange the admin token for a JWT
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"admin token"
//	@Success		200		{object}	response.Envelope{data=loginData}
//	@Failure		401		{object}	response.Envelope
//	@Router			/api/admin/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		response.BadRequest(w, "token required")
		return
	}

	jwt, err := h.svc.Login(req.Token)
	if err != nil {
		response.Unauthorized(w, "bad credentials")
		return
	}
	response.OK(w, loginData{Token: jwt})
}

type signData struct {
	URL string `json:"url"`
}

// Sign godoc
//
//	@Summary		Mint a signed expiring alias link
//	@Tags			admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			filename	query		string	true	"logical filename"
//	@Param			expSeconds	query		int		false	"link lifetime in seconds, default 86400, floor 60"
//	@Param			base		query		string	false	"base url override"
//	@Success		200			{object}	response.Envelope{data=signData}
//	@Failure		400			{object}	response.Envelope
//	@Failure		500			{object}	response.Envelope
//	@Router			/api/admin/sign [get]
func (h *Handler) Sign(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filename := q.Get("filename")
	if filename == "" {
		response.BadRequest(w, "filename required")
		return
	}

	var expSeconds int64
	if raw := q.Get("expSeconds"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(w, "malformed expSeconds parameter")
			return
		}
		expSeconds = v
	}

	url, err := h.svc.SignLink(filename, q.Get("base"), expSeconds)
	if err != nil {
		if errors.Is(err, ErrSigningDisabled) {
			response.Error(w, http.StatusInternalServerError, "signing secret is not set")
			return
		}
		h.log.Errorw("sign link failed", "filename", filename, "err", err)
		response.InternalError(w)
		return
	}
	response.OK(w, signData{URL: url})
}

type listData struct {
	Items      []imglog.LogEntry `json:"items"`
	NextCursor *string           `json:"nextCursor"`
}

// List godoc
//
//	@Summary		Page the upload log
//	@Tags			admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit		query		int		false	"page size, capped at 200"
//	@Param			cursor		query		string	false	"created_at exclusive upper bound from the previous page"
//	@Param			provider	query		string	false	"provider tag filter"
//	@Success		200			{object}	response.Envelope{data=listData}
//	@Failure		400			{object}	response.Envelope
//	@Failure		500			{object}	response.Envelope
//	@Router			/api/admin/list [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "malformed limit parameter")
			return
		}
		limit = v
	}

	var cursor int64
	if raw := q.Get("cursor"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(w, "malformed cursor parameter")
			return
		}
		cursor = v
	}

	items, next, err := h.svc.List(r.Context(), q.Get("provider"), cursor, limit)
	if err != nil {
		h.log.Errorw("list failed", "err", err)
		response.InternalError(w)
		return
	}

	data := listData{Items: items}
	if next > 0 {
		s := strconv.FormatInt(next, 10)
		data.NextCursor = &s
	}
	response.OK(w, data)
}

type deleteRequest struct {
	IDs []string `json:"ids"`
}

type deleteData struct {
	Deleted int64 `json:"deleted"`
}

// Delete godoc
//
//	@Summary		Delete log entries by id
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		deleteRequest	true	"entry ids"
//	@Success		200		{object}	response.Envelope{data=deleteData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/api/admin/delete [post]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
		response.BadRequest(w, "ids required")
		return
	}

	n, err := h.svc.Delete(r.Context(), req.IDs)
	if err != nil {
		h.log.Errorw("delete failed", "err", err)
		response.InternalError(w)
		return
	}
	response.OK(w, deleteData{Deleted: n})
}
