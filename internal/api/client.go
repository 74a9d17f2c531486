package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"

	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/aaravmahajanofficial/storefront-client/internal/storage"
	"github.com/aaravmahajanofficial/storefront-client/internal/utils"
)

// maximum error body kept for the error message
const maxErrorBody = 64 << 10

// TokenStore is the subset of storage.TokenStore the client needs.
type TokenStore interface {
	Load(ctx context.Context) (*models.StoredSession, error)
	Clear(ctx context.Context) error
}

// Request describes one call to the backend. Body precedence is
// Multipart, then Form, then JSON.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	JSON      any
	Form      url.Values
	Multipart *Multipart
	NoAuth    bool
}

type Multipart struct {
	Fields url.Values
	Files  []FilePart
}

type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Content     io.Reader
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     TokenStore
	userAgent  string

	mu             sync.RWMutex
	onUnauthorized func(ctx context.Context)
}

// New returns a client for the configured backend. A nil transport means
// http.DefaultTransport wrapped with logging, metrics and tracing.
func New(cfg *config.API, tokens TokenStore, transport http.RoundTripper) (*Client, error) {

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", cfg.BaseURL, err)
	}

	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme must be http or https", cfg.BaseURL)
	}

	if transport == nil {
		transport = NewTransport(nil)
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		tokens:    tokens,
		userAgent: cfg.UserAgent,
	}, nil
}

// SetUnauthorizedHandler registers the callback run after any 401, once the
// stored token has been cleared.
func (c *Client) SetUnauthorizedHandler(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onUnauthorized = fn
}

func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(path, "/")

	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String()
}

// Do sends req and decodes a 2xx JSON body into dest. dest may be nil, and a
// 204 decodes nothing. Non-2xx responses become *errors.AppError.
func (c *Client) Do(ctx context.Context, req *Request, dest any) error {

	body, contentType, err := encodeBody(req)
	if err != nil {
		return appErrors.BadRequestError("failed to encode request body").WithError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.endpoint(req.Path, req.Query), body)
	if err != nil {
		return appErrors.InternalError("failed to build request").WithError(err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if !req.NoAuth {
		if err := c.authorize(ctx, httpReq); err != nil {
			return err
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return appErrors.TransportError(fmt.Sprintf("%s %s failed", req.Method, req.Path)).WithError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(ctx)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return appErrors.FromResponse(resp.StatusCode, raw)
	}

	if dest == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := utils.DecodeJSONBody(resp.Body, dest); err != nil {
		return appErrors.ThirdPartyError("unexpected response from server").WithError(err)
	}

	return nil
}

func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if c.tokens == nil {
		return nil
	}

	session, err := c.tokens.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNoSession) {
			return nil
		}
		return appErrors.InternalError("failed to read stored session").WithError(err)
	}

	tokenType := session.TokenType
	if tokenType == "" || strings.EqualFold(tokenType, "bearer") {
		tokenType = "Bearer"
	}

	req.Header.Set("Authorization", tokenType+" "+session.Token)

	return nil
}

func (c *Client) handleUnauthorized(ctx context.Context) {
	logger := LoggerFromContext(ctx)

	if c.tokens != nil {
		if err := c.tokens.Clear(ctx); err != nil {
			logger.Warn("Failed to clear stored session", slog.String("error", err.Error()))
		}
	}

	c.mu.RLock()
	hook := c.onUnauthorized
	c.mu.RUnlock()

	if hook != nil {
		hook(ctx)
	}
}

func encodeBody(req *Request) (io.Reader, string, error) {

	switch {
	case req.Multipart != nil:
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)

		for key, values := range req.Multipart.Fields {
			for _, value := range values {
				if err := writer.WriteField(key, value); err != nil {
					return nil, "", err
				}
			}
		}

		for _, file := range req.Multipart.Files {
			part, err := createFilePart(writer, file)
			if err != nil {
				return nil, "", err
			}
			if _, err := io.Copy(part, file.Content); err != nil {
				return nil, "", err
			}
		}

		if err := writer.Close(); err != nil {
			return nil, "", err
		}

		return &buf, writer.FormDataContentType(), nil

	case req.Form != nil:
		return strings.NewReader(req.Form.Encode()), "application/x-www-form-urlencoded", nil

	case req.JSON != nil:
		data, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, "", err
		}

		return bytes.NewReader(data), "application/json", nil

	default:
		return nil, "", nil
	}
}

func createFilePart(writer *multipart.Writer, file FilePart) (io.Writer, error) {
	if file.ContentType == "" {
		return writer.CreateFormFile(file.Field, file.Filename)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename))
	header.Set("Content-Type", file.ContentType)

	return writer.CreatePart(header)
}
