package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"navident-console/internal/session"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// RequestError is returned for any non-2xx response that is not a 401.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Blob is a binary download (Excel export, generated PDF).
type Blob struct {
	Data        []byte
	ContentType string
}

// Client wraps the REST backend. Every request carries the bearer token from
// the session store when one is present. Any 401 clears the session and fires
// the onUnauthorized hook before the error is returned to the caller, so
// call sites keep their own error handling while the console forces a fresh
// login globally.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	store          *session.Store
	log            *logrus.Logger
	onUnauthorized func()
}

func NewClient(baseURL string, timeout time.Duration, store *session.Store, log *logrus.Logger, onUnauthorized func()) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: timeout},
		store:          store,
		log:            log,
		onUnauthorized: onUnauthorized,
	}
}

func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, params url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, params, body, out)
}

func (c *Client) Put(ctx context.Context, path string, params url.Values, body, out any) error {
	return c.do(ctx, http.MethodPut, path, params, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// GetBlob fetches a binary payload.
func (c *Client) GetBlob(ctx context.Context, path string, params url.Values) (*Blob, error) {
	resp, err := c.send(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Blob{Data: data, ContentType: resp.Header.Get("Content-Type")}, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	resp, err := c.send(ctx, method, path, params, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, params url.Values, body any) (*http.Response, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		// Session expired or revoked: wipe local state and force a login,
		// independent of what the call site does with the error.
		if err := c.store.Clear(); err != nil {
			c.log.Warnf("Failed to clear session: %+v", err)
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	default:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &RequestError{StatusCode: resp.StatusCode, Body: string(data)}
	}
}
