package chesscom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/kapu/chess-coach-go/internal/obslog"
)

// Client talks to the published archive API: the per-player archive index
// and the monthly archive documents. All requests are idempotent GETs with a
// bounded retry. Monthly archives are immutable once the month closes, so
// successful fetches are cached and a cache hit never touches the network.
type Client struct {
	baseURL   string
	http      *fasthttp.Client
	userAgent string
	cache     Cache

	defaultTimeout time.Duration
	retryMax       int
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func WithRetry(max int) Option {
	return func(c *Client) { c.retryMax = max }
}

func WithCache(cache Cache) Option {
	return func(c *Client) {
		if cache != nil {
			c.cache = cache
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithMaxConnsPerHost(n int) Option {
	return func(c *Client) { c.http.MaxConnsPerHost = n }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &fasthttp.Client{ReadTimeout: 15 * time.Second, WriteTimeout: 15 * time.Second, MaxConnsPerHost: 4},
		userAgent:      "chess-coach-go/1.0",
		cache:          NewMemoryCache(),
		defaultTimeout: 15 * time.Second,
		retryMax:       3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListArchives returns the player's monthly archive references, oldest
// first (the API's order). An existing player with no games yields an empty
// list and no error.
func (c *Client) ListArchives(ctx context.Context, username string) ([]string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, &APIError{Reason: ReasonNotFound, URL: c.baseURL}
	}
	url := fmt.Sprintf("%s/player/%s/games/archives", c.baseURL, username)
	var idx archiveIndex
	if err := c.getJSON(ctx, url, &idx); err != nil {
		return nil, err
	}
	return idx.Archives, nil
}

// FetchArchive returns the games of one monthly archive, cache first.
func (c *Client) FetchArchive(ctx context.Context, url string) ([]Game, error) {
	if games, ok := c.cache.Get(ctx, url); ok {
		return games, nil
	}
	var month monthlyGames
	if err := c.getJSON(ctx, url, &month); err != nil {
		return nil, err
	}
	games := month.Games
	if games == nil {
		games = []Game{}
	}
	c.cache.Put(ctx, url, games)
	return games, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(url)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	attempts := c.retryMax
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		deadline := c.computeDeadline(ctx)
		err := c.http.DoDeadline(req, resp, deadline)
		if err != nil {
			apiErr := transportError(url, err)
			if attempt == attempts {
				return apiErr
			}
			lastErr = apiErr
			if sleepErr := sleepWithContext(ctx, backoffDuration(attempt)); sleepErr != nil {
				return lastErr
			}
			continue
		}

		status := resp.StatusCode()
		if status < 200 || status >= 300 {
			apiErr := &APIError{Reason: HTTPReason(status), Status: status, URL: url}
			if attempt == attempts || !shouldRetryStatus(status) {
				return apiErr
			}
			lastErr = apiErr
			obslog.L().Debug("retrying archive request",
				zap.String("url", url), zap.Int("status", status), zap.Int("attempt", attempt))
			if sleepErr := sleepWithContext(ctx, backoffDuration(attempt)); sleepErr != nil {
				return lastErr
			}
			continue
		}

		if out != nil {
			if err := json.Unmarshal(resp.Body(), out); err != nil {
				return &APIError{Reason: ReasonTransport, URL: url, Err: fmt.Errorf("decode response: %w", err)}
			}
		}
		return nil
	}

	if lastErr == nil {
		lastErr = &APIError{Reason: ReasonTransport, URL: url}
	}
	return lastErr
}

func transportError(url string, err error) *APIError {
	reason := ReasonTransport
	if errors.Is(err, fasthttp.ErrTimeout) || errors.Is(err, fasthttp.ErrDialTimeout) || errors.Is(err, context.DeadlineExceeded) {
		reason = ReasonTimeout
	}
	return &APIError{Reason: reason, URL: url, Err: err}
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	clientDL := time.Now().Add(c.defaultTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		return dl
	}
	return clientDL
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func backoffDuration(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 6 {
		attempt = 6
	}
	base := 100 * time.Millisecond
	return time.Duration(1<<uint(attempt-1)) * base // 100ms, 200ms ...
}

func shouldRetryStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}
