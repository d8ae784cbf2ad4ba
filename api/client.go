package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/umoja/portal/core"
)

// Client is the single outbound gateway to the portal API. Every request
// goes through do(): bearer injection, JSON (or multipart) serialization,
// envelope normalization and failure classification all happen here so the
// screens never branch on response shapes or raw HTTP codes.
type Client struct {
	base string
	http *http.Client
	log  core.Logger

	mu            sync.RWMutex
	tokenFn       func() string
	onAuthExpired func()
}

func NewClient(conf *core.Config, logger core.Logger) *Client {
	return &Client{
		base: conf.API.BaseURL,
		http: &http.Client{Timeout: conf.API.Timeout},
		log:  logger,
	}
}

// SetTokenSource registers the session's token getter. A nil or empty token
// means the request goes out unauthenticated.
func (c *Client) SetTokenSource(fn func() string) {
	c.mu.Lock()
	c.tokenFn = fn
	c.mu.Unlock()
}

// SetAuthExpiredHandler registers the hook invoked on any 401 response,
// before the session-expired error is returned to the caller.
func (c *Client) SetAuthExpiredHandler(fn func()) {
	c.mu.Lock()
	c.onAuthExpired = fn
	c.mu.Unlock()
}

func (c *Client) Get(ctx context.Context, path string, params Params) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, pathWithQuery(path, params), "", nil)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Envelope, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "marshalling request body")
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(data))
}

func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Envelope, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "marshalling request body")
	}
	return c.do(ctx, http.MethodPut, path, "application/json", bytes.NewReader(data))
}

func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, "", nil)
}

// PostMultipart submits a file under fileField together with its sibling
// metadata fields as a multipart/form-data request.
func (c *Client) PostMultipart(ctx context.Context, path, fileField, filename string, file io.Reader, fields map[string]string) (*Envelope, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, errors.Wrapf(err, "writing field %q", k)
		}
	}
	fw, err := w.CreateFormFile(fileField, filename)
	if err != nil {
		return nil, errors.Wrap(err, "creating form file")
	}
	if _, err := io.Copy(fw, file); err != nil {
		return nil, errors.Wrap(err, "copying file")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "closing multipart writer")
	}
	return c.do(ctx, http.MethodPost, path, w.FormDataContentType(), &buf)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	c.mu.RLock()
	tokenFn := c.tokenFn
	onAuthExpired := c.onAuthExpired
	c.mu.RUnlock()
	if tokenFn != nil {
		if token := tokenFn(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		// network unreachable, DNS failure or client timeout
		return nil, core.NewTransportError("")
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, core.NewTransportError("")
	}

	// a reverse proxy misroute often answers HTML with a 200; refuse to
	// treat it as JSON of any kind
	if looksLikeHTML(data) {
		return nil, core.ErrMisconfiguredEndpoint
	}

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		if onAuthExpired != nil {
			onAuthExpired()
		}
		return nil, core.ErrSessionExpired

	case res.StatusCode >= 500:
		if c.log != nil {
			c.log.Error(fmt.Sprintf("%s %s -> %d", method, path, res.StatusCode), map[string]interface{}{"body": string(data)})
		}
		return nil, core.NewServerError(res.StatusCode)

	case res.StatusCode >= 400:
		if msg := serverMessage(data); msg != "" {
			return nil, core.NewBusinessError(res.StatusCode, msg)
		}
		return nil, core.NewBusinessError(res.StatusCode, fmt.Sprintf("HTTP %d", res.StatusCode))
	}

	env, err := parseEnvelope(data, res.Header.Get("Content-Type"))
	if err != nil {
		if c.log != nil {
			c.log.Error(fmt.Sprintf("%s %s: unparseable success body", method, path), err)
		}
		return nil, core.NewServerError(res.StatusCode)
	}
	return env, nil
}

func pathWithQuery(path string, params Params) string {
	if q := params.Values().Encode(); q != "" {
		return path + "?" + q
	}
	return path
}

func looksLikeHTML(body []byte) bool {
	head := strings.ToLower(string(bytes.TrimSpace(body)))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

// serverMessage digs the human-readable message out of a 4xx body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
