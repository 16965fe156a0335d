// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package immich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

var (
	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("immich unavailable")
	ErrNotFound    = errors.New("immich resource not found")
)

// StatusError is a non-2xx answer from Immich other than 404.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("immich returned status %d", e.Code)
}

// Thumbnail sizes accepted by Immich
const (
	SizeThumbnail = "thumbnail"
	SizePreview   = "preview"
)

// Client talks to the Immich REST API. All calls share one circuit breaker:
// after consecutive failures it rejects calls with ErrUnavailable until the
// open timeout elapses.
//
// JSON calls are bounded by the request timeout. Image calls only bound the
// wait for response headers; the body streams for as long as the caller's
// context allows.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker

	requestTimeout   time.Duration
	failureThreshold uint32
	openTimeout      time.Duration
}

type Option func(*Client)

// WithRequestTimeout bounds JSON calls and the wait for response headers
// (default 30s).
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) { c.requestTimeout = d }
}

// WithBreaker sets how many consecutive failures open the breaker and how
// long it stays open.
func WithBreaker(failures uint32, openTimeout time.Duration) Option {
	return func(c *Client) {
		c.failureThreshold = failures
		c.openTimeout = openTimeout
	}
}

func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:          strings.TrimRight(baseURL, "/"),
		apiKey:           apiKey,
		requestTimeout:   30 * time.Second,
		failureThreshold: 5,
		openTimeout:      30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = c.requestTimeout
	c.http = &http.Client{Transport: transport}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "immich",
		MaxRequests: 1,
		Timeout:     c.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.failureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				"component", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return c
}

// State reports the breaker state.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

// Available reports whether calls currently reach Immich, i.e. the breaker
// is not open.
func (c *Client) Available() bool {
	return c.breaker.State() != gobreaker.StateOpen
}

// get performs a GET through the breaker. On success the caller owns the body.
func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("x-api-key", c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("immich request failed: %w", err)
		}

		if resp.StatusCode == http.StatusNotFound {
			drain(resp)
			return nil, ErrNotFound
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			drain(resp)
			return nil, &StatusError{Code: resp.StatusCode}
		}
		return resp, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return nil, err
	}

	return out.(*http.Response), nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	resp, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode immich response: %w", err)
	}
	return nil
}

// ListAlbums returns all albums visible to the API key, without assets.
func (c *Client) ListAlbums(ctx context.Context) ([]Album, error) {
	var albums []Album
	if err := c.getJSON(ctx, "/api/albums", &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

// GetAlbum returns one album with its assets.
func (c *Client) GetAlbum(ctx context.Context, albumID string) (Album, error) {
	var album Album
	path := "/api/albums/" + url.PathEscape(albumID) + "?withoutAssets=false"
	if err := c.getJSON(ctx, path, &album); err != nil {
		return Album{}, err
	}
	return album, nil
}

// Image is a streamed asset body. The caller must close Body.
type Image struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

func (c *Client) image(ctx context.Context, path string) (*Image, error) {
	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Image{
		Body:          resp.Body,
		ContentType:   contentType,
		ContentLength: resp.ContentLength,
	}, nil
}

// Thumbnail fetches a resized rendition; size is SizeThumbnail or SizePreview.
func (c *Client) Thumbnail(ctx context.Context, assetID, size string) (*Image, error) {
	q := url.Values{"size": {size}}
	return c.image(ctx, "/api/assets/"+url.PathEscape(assetID)+"/thumbnail?"+q.Encode())
}

// Original fetches the full-size file.
func (c *Client) Original(ctx context.Context, assetID string) (*Image, error) {
	return c.image(ctx, "/api/assets/"+url.PathEscape(assetID)+"/original")
}
