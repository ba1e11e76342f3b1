// Package backend is the REST client for the product backend. All responses
// cross the fetch boundary exactly once: decoded from the generic
// {success, data, message} envelope, classified into the error taxonomy and
// normalized into domain shapes. Nothing downstream touches raw payloads.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/yieldland/minehub/internal/domain"
	"github.com/yieldland/minehub/internal/logger"
)

// Client talks to the product backend.
type Client struct {
	baseURL  string
	token    string
	http     *http.Client
	validate *validator.Validate

	// cache deduplicates identical GETs inside a short window so that a
	// manual refresh racing a timer tick, or several mounted observers,
	// do not multiply requests.
	cache *expirable.LRU[string, json.RawMessage]
}

// Options tunes client behavior; zero values fall back to defaults.
type Options struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

// envelope is the backend's generic response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// NewClient creates a backend client for the given base URL and auth token.
func NewClient(baseURL, token string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		http:     &http.Client{Timeout: opts.Timeout},
		validate: validator.New(),
		cache:    expirable.NewLRU[string, json.RawMessage](CacheSize, nil, opts.CacheTTL),
	}
}

// get performs a GET, serving from the dedupe cache when a fresh identical
// request already completed.
func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	key := path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}
	if data, ok := c.cache.Get(key); ok {
		return data, nil
	}

	data, err := c.do(ctx, http.MethodGet, key, nil)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, data)
	return data, nil
}

// post performs a POST with a JSON body. Commands are never cached.
func (c *Client) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode request: %v", domain.ErrInvalidInput, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrTransport, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", domain.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status %d", domain.ErrTransport, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrDecode, method, path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrBusiness, msg)
	}

	logger.FromContext(ctx).Debug(LogMsgRequestCompleted, "method", method, "path", path)
	return env.Data, nil
}
