package alias

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/imgbed/service/internal/contenttype"
	"github.com/imgbed/service/internal/imglog"
	"github.com/imgbed/service/internal/response"
	"github.com/imgbed/service/internal/storage"
	"github.com/imgbed/service/internal/telegram"
	"github.com/imgbed/service/internal/urlfix"
)

// cacheControl is the long-lived cache directive for served media.
const cacheControl = "public, max-age=31536000"

// Handler serves the public read surface: alias resolution and the two
// provider fetch paths.
type Handler struct {
	svc     *Service
	objects storage.Storage
	tg      *telegram.Client
	log     *zap.SugaredLogger
}

// NewHandler creates a new alias Handler.
func NewHandler(svc *Service, objects storage.Storage, tg *telegram.Client, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, objects: objects, tg: tg, log: log}
}

// ResolveAlias godoc
//
//	@Summary		Resolve a logical filename
//	@Description	Redirects to the Telegram relay or streams the object directly, depending on which provider holds the newest upload under this name. Optional exp/sig query parameters carry a signed expiring link.
//	@Tags			public
//	@Param			filename	path	string	true	"logical filename"
//	@Param			exp			query	int		false	"link expiry, unix seconds"
//	@Param			sig			query	string	false	"base64url HMAC signature"
//	@Success		200	"object bytes"
//	@Success		302	"redirect to provider fetch path"
//	@Failure		400	{object}	response.Envelope
//	@Failure		403	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/p/{filename} [get]
func (h *Handler) ResolveAlias(w http.ResponseWriter, r *http.Request) {
	filename, err := url.PathUnescape(chi.URLParam(r, "filename"))
	if err != nil || filename == "" {
		response.BadRequest(w, "filename required")
		return
	}

	access, err := parseAccess(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	res, err := h.svc.Resolve(r.Context(), filename, access)
	if err != nil {
		h.writeResolveError(w, filename, err)
		return
	}

	if res.RedirectTo != "" {
		http.Redirect(w, r, res.RedirectTo, http.StatusFound)
		return
	}
	h.streamObject(w, r, res.Key)
}

// FetchTelegram godoc
//
//	@Summary	Stream a Telegram-relayed file
//	@Tags		public
//	@Param		fileID	path	string	true	"Telegram file_id"
//	@Success	200	"file bytes"
//	@Failure	404	{object}	response.Envelope
//	@Router		/cfile/{fileID} [get]
func (h *Handler) FetchTelegram(w http.ResponseWriter, r *http.Request) {
	fileID, err := url.PathUnescape(chi.URLParam(r, "fileID"))
	if err != nil || fileID == "" {
		response.BadRequest(w, "file id required")
		return
	}
	if !h.tg.Configured() {
		response.InternalError(w)
		return
	}

	path, err := h.tg.FilePath(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, telegram.ErrFileNotFound) {
			response.NotFound(w, "file not found")
			return
		}
		h.log.Errorw("telegram getFile failed", "fileID", fileID, "err", err)
		response.InternalError(w)
		return
	}

	file, err := h.tg.Fetch(r.Context(), path)
	if err != nil {
		if errors.Is(err, telegram.ErrFileNotFound) {
			response.NotFound(w, "file not found")
			return
		}
		h.log.Errorw("telegram fetch failed", "fileID", fileID, "err", err)
		response.InternalError(w)
		return
	}
	defer file.Body.Close()

	w.Header().Set("Content-Type", contenttype.Resolve(file.Path, file.ContentType))
	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("Content-Disposition", "inline")
	if file.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(file.ContentLength, 10))
	}
	_, _ = io.Copy(w, file.Body)
}

// FetchObject godoc
//
//	@Summary	Stream a stored object
//	@Tags		public
//	@Param		key	path	string	true	"object key"
//	@Success	200	"object bytes"
//	@Failure	404	{object}	response.Envelope
//	@Router		/rfile/{key} [get]
func (h *Handler) FetchObject(w http.ResponseWriter, r *http.Request) {
	key, err := url.PathUnescape(chi.URLParam(r, "key"))
	if err != nil || key == "" {
		response.BadRequest(w, "object key required")
		return
	}
	h.streamObject(w, r, key)
}

// streamObject fetches a bucket object and writes it with the resolved
// content type and long-lived cache headers.
func (h *Handler) streamObject(w http.ResponseWriter, r *http.Request, key string) {
	obj, err := h.objects.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			// Log/store drift: the log entry outlived the object.
			response.NotFound(w, "object not found")
			return
		}
		h.log.Errorw("object fetch failed", "key", key, "err", err)
		response.InternalError(w)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", contenttype.Resolve(key, obj.ContentType))
	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("Content-Disposition", "inline")
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	_, _ = io.Copy(w, obj.Body)
}

// parseAccess extracts the optional exp/sig parameters. Both absent
// means public access; a malformed exp is a client error. Presence of
// only one parameter is passed through for the resolver to reject.
func parseAccess(r *http.Request) (*Access, error) {
	q := r.URL.Query()
	expRaw, sig := q.Get("exp"), q.Get("sig")
	if expRaw == "" && sig == "" {
		return nil, nil
	}

	var exp int64
	if expRaw != "" {
		v, err := strconv.ParseInt(expRaw, 10, 64)
		if err != nil {
			return nil, errors.New("malformed exp parameter")
		}
		exp = v
	}
	return &Access{Exp: exp, Sig: sig}, nil
}

// writeResolveError maps resolver failures onto the error taxonomy.
func (h *Handler) writeResolveError(w http.ResponseWriter, filename string, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		response.Forbidden(w, "invalid access signature")
	case errors.Is(err, ErrExpired):
		response.Forbidden(w, "access link expired")
	case errors.Is(err, imglog.ErrNotFound):
		response.NotFound(w, "not found")
	case errors.Is(err, urlfix.ErrUnparseable):
		h.log.Errorw("unparseable stored url", "filename", filename, "err", err)
		response.ErrorDetail(w, http.StatusInternalServerError, "unparseable stored url", err.Error())
	default:
		var unknown *UnknownProviderError
		if errors.As(err, &unknown) {
			h.log.Errorw("unknown provider",
				"filename", filename, "provider", unknown.RawProvider, "url", unknown.RawURL)
			response.ErrorDetail(w, http.StatusInternalServerError, "unknown provider", map[string]string{
				"provider": unknown.RawProvider,
				"url":      unknown.RawURL,
			})
			return
		}
		h.log.Errorw("alias resolution failed", "filename", filename, "err", err)
		response.InternalError(w)
	}
}
