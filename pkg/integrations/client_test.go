package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/chious/readmequest/pkg/cache"
	apperrors "github.com/chious/readmequest/pkg/errors"
	"github.com/chious/readmequest/pkg/observability"
)

func newTestClient(t *testing.T, server *httptest.Server, headers map[string]string, opts ...Option) *Client {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })

	if server != nil {
		opts = append([]Option{WithHTTPClient(server.Client())}, opts...)
	}
	return NewClient(c, "test", time.Hour, headers, opts...)
}

func TestNewClient(t *testing.T) {
	headers := map[string]string{"Authorization": "Bearer token"}
	client := NewClient(nil, "test", time.Hour, headers)

	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.cache == nil {
		t.Error("NewClient() should default to a null cache")
	}
	if client.attempts != 1 {
		t.Errorf("attempts = %d, want 1", client.attempts)
	}
	if client.headers["Authorization"] != "Bearer token" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewClientOptions(t *testing.T) {
	client := NewClient(nil, "test", time.Hour, nil,
		WithTimeout(3*time.Second),
		WithAttempts(0),
		WithRetryDelay(time.Millisecond),
	)
	if client.http.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", client.http.Timeout)
	}
	if client.attempts != 1 {
		t.Errorf("attempts = %d, want clamp to 1", client.attempts)
	}
	if client.retryDelay != time.Millisecond {
		t.Errorf("retryDelay = %v, want 1ms", client.retryDelay)
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := newTestClient(t, server, nil)

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var gotDefault, gotOverride string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDefault = r.Header.Get("X-Default")
		gotOverride = r.Header.Get("X-Override")
		w.Header().Set("X-Echo", "yes")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := newTestClient(t, server, map[string]string{"X-Default": "default", "X-Override": "default"})

	var resp map[string]string
	h, err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "overridden"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if gotDefault != "default" {
		t.Errorf("default header = %q, want %q", gotDefault, "default")
	}
	if gotOverride != "overridden" {
		t.Errorf("override header = %q, want %q", gotOverride, "overridden")
	}
	if h.Get("X-Echo") != "yes" {
		t.Error("response headers not returned")
	}
}

func TestClientGetBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "unterminated`))
	}))
	defer server.Close()

	client := newTestClient(t, server, nil)

	var resp []map[string]any
	if err := client.Get(context.Background(), server.URL, &resp); err == nil {
		t.Error("Get() should fail on malformed JSON")
	}
}

func TestClientGetStatuses(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		headers   map[string]string
		wantIs    error
		retryable bool
		rateLimit bool
	}{
		{name: "404", status: http.StatusNotFound, wantIs: ErrNotFound},
		{name: "500", status: http.StatusInternalServerError, wantIs: ErrNetwork, retryable: true},
		{name: "401", status: http.StatusUnauthorized, wantIs: ErrNetwork},
		{name: "403 without quota headers", status: http.StatusForbidden, wantIs: ErrNetwork},
		{name: "403 quota exhausted", status: http.StatusForbidden, headers: map[string]string{"X-RateLimit-Remaining": "0"}, rateLimit: true},
		{name: "429", status: http.StatusTooManyRequests, headers: map[string]string{"Retry-After": "30"}, rateLimit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newTestClient(t, server, nil)

			var resp map[string]string
			err := client.Get(context.Background(), server.URL, &resp)
			if err == nil {
				t.Fatal("Get() should return error")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("Get() error = %v, want %v", err, tt.wantIs)
			}
			if got := cache.IsRetryable(err); got != tt.retryable {
				t.Errorf("IsRetryable = %v, want %v", got, tt.retryable)
			}
			var rl *apperrors.RateLimitedError
			if got := errors.As(err, &rl); got != tt.rateLimit {
				t.Errorf("rate limited = %v, want %v (err %v)", got, tt.rateLimit, err)
			}
		})
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode([]string{"ok"})
	}))
	defer server.Close()

	client := newTestClient(t, server, nil, WithAttempts(3), WithRetryDelay(time.Millisecond))

	var out []string
	_, err := client.Cached(context.Background(), "k", false, &out, func() error {
		return client.Get(context.Background(), server.URL, &out)
	})
	if err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestClientCached(t *testing.T) {
	client := newTestClient(t, nil, nil)

	type testData struct {
		Value string `json:"value"`
	}

	fetchCount := 0
	fetch := func(v *testData) func() error {
		return func() error {
			fetchCount++
			*v = testData{Value: "fetched-" + strconv.Itoa(fetchCount)}
			return nil
		}
	}

	var first testData
	hit, err := client.Cached(context.Background(), "key", false, &first, fetch(&first))
	if err != nil || hit {
		t.Fatalf("first Cached() = %v, %v; want miss", hit, err)
	}

	var second testData
	hit, err = client.Cached(context.Background(), "key", false, &second, fetch(&second))
	if err != nil || !hit {
		t.Fatalf("second Cached() = %v, %v; want hit", hit, err)
	}
	if second.Value != "fetched-1" {
		t.Errorf("cached value = %q, want %q", second.Value, "fetched-1")
	}
	if fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1", fetchCount)
	}

	var third testData
	hit, err = client.Cached(context.Background(), "key", true, &third, fetch(&third))
	if err != nil || hit {
		t.Fatalf("refresh Cached() = %v, %v; want miss", hit, err)
	}
	if third.Value != "fetched-2" {
		t.Errorf("refreshed value = %q, want %q", third.Value, "fetched-2")
	}
}

func TestClientCachedFetchError(t *testing.T) {
	client := newTestClient(t, nil, nil)

	var value string
	fetchCount := 0
	_, err := client.Cached(context.Background(), "error-key", false, &value, func() error {
		fetchCount++
		return ErrNotFound
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Cached() error = %v, want ErrNotFound", err)
	}
	if fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1", fetchCount)
	}

	// failures must not be cached
	hit, err := client.Cached(context.Background(), "error-key", false, &value, func() error {
		value = "ok"
		return nil
	})
	if err != nil || hit {
		t.Errorf("Cached() after failure = %v, %v; want fresh fetch", hit, err)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		wantErr    bool
		wantType   error
		isRetryErr bool
	}{
		{name: "200 OK", code: 200},
		{name: "404 Not Found", code: 404, wantErr: true, wantType: ErrNotFound},
		{name: "500 Internal Server Error", code: 500, wantErr: true, isRetryErr: true},
		{name: "502 Bad Gateway", code: 502, wantErr: true, isRetryErr: true},
		{name: "503 Service Unavailable", code: 503, wantErr: true, isRetryErr: true},
		{name: "400 Bad Request", code: 400, wantErr: true},
		{name: "403 Forbidden", code: 403, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code)

			if !tt.wantErr {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("checkStatus() should return error")
			}
			if tt.wantType != nil && !errors.Is(err, tt.wantType) {
				t.Errorf("checkStatus() error = %v, want %v", err, tt.wantType)
			}
			if got := cache.IsRetryable(err); got != tt.isRetryErr {
				t.Errorf("checkStatus() retryable = %v, want %v", got, tt.isRetryErr)
			}
		})
	}
}

func TestRetryAfter(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tests := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"none", nil, 0},
		{"retry after", map[string]string{"Retry-After": "42"}, 42},
		{"reset epoch", map[string]string{"X-RateLimit-Reset": strconv.FormatInt(now.Unix()+90, 10)}, 90},
		{"reset in past", map[string]string{"X-RateLimit-Reset": strconv.FormatInt(now.Unix()-5, 10)}, 0},
		{"garbage", map[string]string{"Retry-After": "soon"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			if got := retryAfter(h, now); got != tt.want {
				t.Errorf("retryAfter() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewHTTPClient(t *testing.T) {
	if got := NewHTTPClient(0).Timeout; got != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", got, DefaultTimeout)
	}
	if got := NewHTTPClient(time.Second).Timeout; got != time.Second {
		t.Errorf("Timeout = %v, want 1s", got)
	}
}

type countingHooks struct {
	observability.NoopHTTPHooks
	observability.NoopCacheHooks
	mu                    sync.Mutex
	requests, responses   int
	hits, misses, setsLen int
}

func (h *countingHooks) OnRequest(context.Context, string, string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests++
}

func (h *countingHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses++
}

func (h *countingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *countingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *countingHooks) OnCacheSet(_ context.Context, _ string, size int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.setsLen += size
}

func TestClientEmitsHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetHTTPHooks(hooks)
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, nil)
	for i := 0; i < 2; i++ {
		var out map[string]bool
		_, err := client.Cached(context.Background(), "k", false, &out, func() error {
			return client.Get(context.Background(), server.URL+"/x", &out)
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.requests != 1 || hooks.responses != 1 {
		t.Errorf("requests/responses = %d/%d, want 1/1", hooks.requests, hooks.responses)
	}
	if hooks.misses != 1 || hooks.hits != 1 {
		t.Errorf("misses/hits = %d/%d, want 1/1", hooks.misses, hooks.hits)
	}
	if hooks.setsLen == 0 {
		t.Error("cache set not reported")
	}
}
