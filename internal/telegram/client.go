// Package telegram talks to the Bot API for the channel-relay provider.
// A chat acts as the backing store: uploads are posted to it and read
// back later through getFile plus the file download endpoint.
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiBase = "https://api.telegram.org"

// ErrFileNotFound is returned when Telegram no longer knows the file.
var ErrFileNotFound = errors.New("telegram file not found")

// ErrUploadRejected is returned when the Bot API accepted the request
// but returned no usable file handle.
var ErrUploadRejected = errors.New("telegram upload rejected")

// Client is a minimal Bot API client scoped to file relay.
type Client struct {
	base   string
	token  string
	chatID string
	http   *http.Client
}

// NewClient creates a Client for the given bot token and target chat.
func NewClient(token, chatID string) *Client {
	return &Client{
		base:   apiBase,
		token:  token,
		chatID: chatID,
		http:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Configured reports whether both the bot token and chat are set.
func (c *Client) Configured() bool {
	return c.token != "" && c.chatID != ""
}

// sendResult is the subset of a send* response this service reads.
type sendResult struct {
	OK     bool `json:"ok"`
	Result struct {
		Photo []fileRef `json:"photo"`
		Video *fileRef  `json:"video"`
		Audio *fileRef  `json:"audio"`
		Doc   *fileRef  `json:"document"`
	} `json:"result"`
}

type fileRef struct {
	FileID   string `json:"file_id"`
	FileSize int64  `json:"file_size"`
}

// Upload posts the file to the chat, routed by MIME type to the
// matching send method, and returns the file_id Telegram assigned.
func (c *Client) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	endpoint, field := routeByType(contentType)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		defer pw.Close()
		if err := mw.WriteField("chat_id", c.chatID); err != nil {
			pw.CloseWithError(err)
			return
		}
		part, err := mw.CreateFormFile(field, filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/bot%s/%s", c.base, c.token, endpoint), pr)
	if err != nil {
		return "", fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	var out sendResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	id := out.fileID()
	if !out.OK || id == "" {
		return "", fmt.Errorf("%w: %s status %d", ErrUploadRejected, endpoint, resp.StatusCode)
	}
	return id, nil
}

// fileID extracts the stored file handle, preferring the largest photo
// variant when the upload went out as a photo.
func (r *sendResult) fileID() string {
	if len(r.Result.Photo) > 0 {
		largest := r.Result.Photo[0]
		for _, p := range r.Result.Photo[1:] {
			if p.FileSize > largest.FileSize {
				largest = p
			}
		}
		return largest.FileID
	}
	for _, ref := range []*fileRef{r.Result.Video, r.Result.Audio, r.Result.Doc} {
		if ref != nil && ref.FileID != "" {
			return ref.FileID
		}
	}
	return ""
}

// routeByType picks the Bot API send method and form field for a MIME
// type. Anything unrecognized goes out as a document.
func routeByType(contentType string) (endpoint, field string) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "sendPhoto", "photo"
	case strings.HasPrefix(contentType, "video/"):
		return "sendVideo", "video"
	case strings.HasPrefix(contentType, "audio/"):
		return "sendAudio", "audio"
	case contentType == "application/pdf":
		return "sendDocument", "document"
	default:
		return "sendDocument", "document"
	}
}

// FilePath resolves a file_id to the server-side file path via getFile.
func (c *Client) FilePath(ctx context.Context, fileID string) (string, error) {
	u := fmt.Sprintf("%s/bot%s/getFile?file_id=%s", c.base, c.token, url.QueryEscape(fileID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build getFile request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("getFile: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		OK     bool `json:"ok"`
		Result struct {
			FilePath string `json:"file_path"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode getFile response: %w", err)
	}
	if !out.OK || out.Result.FilePath == "" {
		return "", ErrFileNotFound
	}
	return out.Result.FilePath, nil
}

// File is an open download stream from the Telegram file endpoint.
type File struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	Path          string
}

// Fetch streams the bytes behind a file path returned by FilePath.
func (c *Client) Fetch(ctx context.Context, filePath string) (*File, error) {
	u := fmt.Sprintf("%s/file/bot%s/%s", c.base, c.token, filePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build file request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch file: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("fetch file: status %d", resp.StatusCode)
	}

	return &File{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
		Path:          filePath,
	}, nil
}
