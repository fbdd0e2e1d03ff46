package chesscom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	// handlers run on the server goroutine, so report rather than abort
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestListArchives(t *testing.T) {
	var srvURL string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/player/zhangsan123/games/archives" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		writeJSON(t, w, map[string]any{"archives": []string{
			srvURL + "/player/zhangsan123/games/2026/07",
			srvURL + "/player/zhangsan123/games/2026/08",
		}})
	})
	srvURL = srv.URL

	c := NewClient(srv.URL)
	// username is normalized before it reaches the wire
	archives, err := c.ListArchives(context.Background(), "  ZhangSan123 ")
	if err != nil {
		t.Fatalf("ListArchives: %v", err)
	}
	if len(archives) != 2 {
		t.Fatalf("archives = %d, want 2", len(archives))
	}
}

func TestFetchArchiveUsesCache(t *testing.T) {
	var hits int64
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		writeJSON(t, w, map[string]any{"games": []map[string]any{
			{"url": "https://example.com/game/1", "pgn": "1. e4 e5", "end_time": 1756000000,
				"white": map[string]any{"username": "zhangsan123"},
				"black": map[string]any{"username": "lisi99"}},
		}})
	})

	c := NewClient(srv.URL)
	url := srv.URL + "/player/zhangsan123/games/2026/08"

	first, err := c.FetchArchive(context.Background(), url)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := c.FetchArchive(context.Background(), url)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if n := atomic.LoadInt64(&hits); n != 1 {
		t.Fatalf("network hits = %d, want 1", n)
	}
	if len(first) != 1 || len(second) != 1 || first[0].URL != second[0].URL {
		t.Fatalf("cached result differs: %+v vs %+v", first, second)
	}
	if first[0].White.Username != "zhangsan123" {
		t.Fatalf("game decode: %+v", first[0])
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		reason Reason
	}{
		{http.StatusNotFound, ReasonNotFound},
		{http.StatusForbidden, ReasonForbidden},
		{http.StatusTeapot, Reason("http_418")},
	}
	for _, c := range cases {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(c.status)
		})
		client := NewClient(srv.URL, WithRetry(1))
		_, err := client.ListArchives(context.Background(), "ghost")
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: error %v is not *APIError", c.status, err)
		}
		if apiErr.Reason != c.reason || apiErr.Status != c.status {
			t.Fatalf("status %d: got reason %q status %d", c.status, apiErr.Reason, apiErr.Status)
		}
	}
}

func TestRetryOnServerError(t *testing.T) {
	var hits int64
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&hits, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(t, w, map[string]any{"archives": []string{}})
	})

	c := NewClient(srv.URL, WithRetry(3), WithTimeout(5*time.Second))
	archives, err := c.ListArchives(context.Background(), "zhangsan123")
	if err != nil {
		t.Fatalf("ListArchives after retry: %v", err)
	}
	if archives == nil {
		archives = []string{}
	}
	if len(archives) != 0 {
		t.Fatalf("archives = %v, want empty", archives)
	}
	if n := atomic.LoadInt64(&hits); n != 2 {
		t.Fatalf("hits = %d, want 2", n)
	}
}

func TestNoRetryOnNotFound(t *testing.T) {
	var hits int64
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	})

	c := NewClient(srv.URL, WithRetry(3))
	if _, err := c.ListArchives(context.Background(), "ghost"); ReasonOf(err) != ReasonNotFound {
		t.Fatalf("reason = %q, want %q", ReasonOf(err), ReasonNotFound)
	}
	if n := atomic.LoadInt64(&hits); n != 1 {
		t.Fatalf("hits = %d, want 1 (404 must not retry)", n)
	}
}

func TestReasonOf(t *testing.T) {
	if got := ReasonOf(nil); got != "" {
		t.Fatalf("ReasonOf(nil) = %q", got)
	}
	if got := ReasonOf(fmt.Errorf("plain")); got != ReasonTransport {
		t.Fatalf("ReasonOf(plain) = %q", got)
	}
	wrapped := fmt.Errorf("outer: %w", &APIError{Reason: ReasonForbidden, Status: 403})
	if got := ReasonOf(wrapped); got != ReasonForbidden {
		t.Fatalf("ReasonOf(wrapped) = %q", got)
	}
}

func TestArchiveYearMonth(t *testing.T) {
	year, month, ok := ArchiveYearMonth("https://api.chess.com/pub/player/u/games/2026/08")
	if !ok || year != 2026 || month != 8 {
		t.Fatalf("ArchiveYearMonth = %d/%d/%v", year, month, ok)
	}
	if _, _, ok := ArchiveYearMonth("https://api.chess.com/pub/player/u"); ok {
		t.Fatalf("non-archive URL parsed")
	}
}

func TestEndedAt(t *testing.T) {
	g := Game{EndTime: 1756400000}
	at, ok := g.EndedAt()
	if !ok || !at.Equal(time.Unix(1756400000, 0).UTC()) {
		t.Fatalf("EndedAt = %v/%v", at, ok)
	}
	var zero Game
	if _, ok := zero.EndedAt(); ok {
		t.Fatalf("zero end_time reported as ended")
	}
}
