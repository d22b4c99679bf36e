package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "shopfront/internal/storefront/adapters/session"
	"shopfront/internal/storefront/apiclient"
	"shopfront/internal/storefront/resilience"
	"shopfront/pkg/logger"
)

// fakeAPI - управляемый сервер: protected отвечает 200 только с токеном valid,
// refresh выдает issue или отвечает refreshStatus.
type fakeAPI struct {
	t *testing.T

	mu            sync.Mutex
	valid         string
	issue         string
	refreshStatus int
	refreshBody   string
	authHeaders   [][]string
	refreshBodies []string

	protectedCalls atomic.Int32
	refreshCalls   atomic.Int32
}

func newFakeAPI(t *testing.T, valid, issue string) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{t: t, valid: valid, issue: issue, refreshStatus: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/token/refresh/", f.refresh)
	mux.HandleFunc("/", f.protected)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) protected(w http.ResponseWriter, r *http.Request) {
	f.protectedCalls.Add(1)

	f.mu.Lock()
	f.authHeaders = append(f.authHeaders, r.Header.Values("Authorization"))
	valid := f.valid
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if r.Header.Get("Authorization") != "Bearer "+valid {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Given token not valid for any token type"}`)
		return
	}
	_, _ = io.WriteString(w, `{"path":"`+r.URL.Path+`"}`)
}

func (f *fakeAPI) refresh(w http.ResponseWriter, r *http.Request) {
	f.refreshCalls.Add(1)
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.refreshBodies = append(f.refreshBodies, string(body))
	status, issue, raw := f.refreshStatus, f.issue, f.refreshBody
	f.mu.Unlock()

	assert.Equal(f.t, http.MethodPost, r.Method)
	assert.Empty(f.t, r.Header.Get("Authorization"), "refresh is sent without bearer token")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	switch {
	case raw != "":
		_, _ = io.WriteString(w, raw)
	case status == http.StatusOK:
		_ = json.NewEncoder(w).Encode(map[string]string{"access": issue})
	default:
		_, _ = io.WriteString(w, `{"detail":"Token is invalid or expired"}`)
	}
}

func newClient(t *testing.T, baseURL string, store *adapter.MemoryStore, opts ...apiclient.Option) *apiclient.Client {
	t.Helper()
	c, err := apiclient.New(baseURL, store, opts...)
	require.NoError(t, err)
	return c
}

func sessionOf(t *testing.T, store *adapter.MemoryStore) (string, string) {
	t.Helper()
	ctx := context.Background()
	access, err := store.AccessToken(ctx)
	require.NoError(t, err)
	refresh, err := store.RefreshToken(ctx)
	require.NoError(t, err)
	return access, refresh
}

func TestNew(t *testing.T) {
	_, err := apiclient.New("http://x", nil)
	assert.ErrorIs(t, err, apiclient.ErrNilStore)

	for _, raw := range []string{"", "shop.local", "ftp://shop.local", "http://"} {
		_, err = apiclient.New(raw, adapter.NewMemoryStore())
		assert.ErrorIs(t, err, apiclient.ErrInvalidBaseURL, raw)
	}

	c, err := apiclient.New("http://shop.local/", adapter.NewMemoryStore())
	require.NoError(t, err)
	assert.Equal(t, "http://shop.local", c.BaseURL())
}

func TestRequest_AttachesSingleBearerHeader(t *testing.T) {
	api, srv := newFakeAPI(t, "A1", "")
	store := adapter.NewMemoryStore()
	require.NoError(t, store.SaveSession(context.Background(), "A1", "R1"))

	c := newClient(t, srv.URL, store)
	resp, err := c.Request(context.Background(), http.MethodGet, "/cart/", nil,
		apiclient.WithHeader("Authorization", "Bearer caller"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, api.authHeaders, 1)
	assert.Equal(t, []string{"Bearer A1"}, api.authHeaders[0])
	assert.Zero(t, api.refreshCalls.Load())
}

func TestRequest_NoTokenNoHeader(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Values("Authorization")
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, adapter.NewMemoryStore())
	_, err := c.Request(context.Background(), http.MethodGet, "/search/", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRequest_RefreshesOnceAndRetries(t *testing.T) {
	api, srv := newFakeAPI(t, "A2", "A2")
	store := adapter.NewMemoryStore()
	require.NoError(t, store.SaveSession(context.Background(), "A1", "R1"))

	c := newClient(t, srv.URL, store)

	var orders struct {
		Path string `json:"path"`
	}
	err := c.Do(context.Background(), http.MethodGet, "/orders/", nil, &orders)
	require.NoError(t, err)
	assert.Equal(t, "/orders/", orders.Path)

	assert.EqualValues(t, 2, api.protectedCalls.Load())
	assert.EqualValues(t, 1, api.refreshCalls.Load())
	assert.JSONEq(t, `{"refresh":"R1"}`, api.refreshBodies[0])
	assert.Equal(t, []string{"Bearer A1"}, api.authHeaders[0])
	assert.Equal(t, []string{"Bearer A2"}, api.authHeaders[1])

	access, refresh := sessionOf(t, store)
	assert.Equal(t, "A2", access)
	assert.Equal(t, "R1", refresh)
}

func TestRequest_RetryKeepsMethodBodyAndQuery(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []string
		urls   []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == apiclient.DefaultRefreshPath {
			_, _ = io.WriteString(w, `{"access":"A2"}`)
			return
		}
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, r.Method+" "+string(body))
		urls = append(urls, r.URL.RequestURI())
		mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer A2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	store := adapter.NewMemoryStore()
	require.NoError(t, store.SaveSession(context.Background(), "A1", "R1"))
	c := newClient(t, srv.URL, store)

	resp, err := c.Request(context.Background(), http.MethodPost, "/update-cart/7/",
		map[string]int{"quantity": 3}, apiclient.WithQuery(url.Values{"ref": {"cli"}}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Empty(t, resp.Body)

	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, `POST {"quantity":3}`, bodies[0])
	assert.Equal(t, []string{"/update-cart/7/?ref=cli", "/update-cart/7/?ref=cli"}, urls)
}

func TestRequest_RefreshRejectedClearsSession(t *testing.T) {
	api, srv := newFakeAPI(t, "A2", "")
	api.refreshStatus = http.StatusUnauthorized

	store := adapter.NewMemoryStore()
	require.NoError(t, store.SaveSession(context.Background(), "A1", "R1"))

	var hookCalls int
	c := newClient(t, srv.URL, store, apiclient.WithAuthExpiredHandler(func(_ context.Context, err error) {
		hookCalls++
		assert.ErrorIs(t, err, apiclient.ErrAuthExpired)
	}))

	_, err := c.Request(context.Background(), http.MethodGet, "/orders/", nil)
	require.Error(t, err)
	assert.True(t, apiclient.IsAuthExpired(err))

	assert.EqualValues(t, 1, api.protectedCalls.Load(), "original request is not retried")
	assert.EqualValues(t, 1, api.refreshCalls.Load())
	assert.Equal(t, 1, hookCalls)

	access, refresh := sessionOf(t, store)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestRequest_MalformedRefreshResponse(t *testing.T) {
	api, srv := newFakeAPI(t, "A2", "")
	api.refreshBody = `{"token":"A2"}`

	store := adapter.NewMemoryStore()
	require.NoError(t, store.SaveSession(context.Background(), "A1", "R1"))

	_, err := newClient(t, srv.URL, store).Request(context.Background(), http.MethodGet, "/cart/", nil)
	assert.ErrorIs(t, err, apiclient.ErrAuthExpired)
	assert.ErrorIs(t, err, apiclient.ErrMalformedRefreshResponse)

	access, refresh := sessionOf(t, store)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestRequest_NoRefreshToken(t *testing.T) {
	api, srv := newFakeAPI(t, "A2", "A2")
	store := adapter.NewMemoryStore()
	require.NoError(t, store.SetAccessToken(context.Background(), "stale"))

	_, err := newClient(t, srv.URL, store).Request(context.Background(), http.MethodGet, "/cart/", nil)
	assert.ErrorIs(t, err, apiclient.ErrAuthExpired)
	assert.Zero(t, api.refreshCalls.Load())

	access, _ := sessionOf(t, store)
	assert.Empty(t, access)
}

func TestRequest_WithoutRefreshReturnsUnauthorized(t *testing.T) {
	api, srv := newFakeAPI(t, "A2", "A2")
	store := adapter.NewMemoryStore()
	require.NoError(t, store.SaveSession(context.Background(), "A1", "R1"))

	var expired atomic.Int32
	c := newClient(t, srv.URL, store, apiclient.WithAuthExpiredHandler(func(context.Context, error) {
		expired.Add(1)
	}))

	_, err := c.Request(context.Background(), http.MethodPost, "/login/", nil, apiclient.WithoutRefresh())
	require.Error(t, err)
	assert.False(t, apiclient.IsAuthExpired(err))
	httpErr, ok := apiclient.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)

	assert.Zero(t, api.refreshCalls.Load())
	assert.EqualValues(t, 1, api.protectedCalls.Load())
	assert.Zero(t, expired.Load())

	access, refresh := sessionOf(t, store)
	assert.Equal(t, "A1", access)
	assert.Equal(t, "R1", refresh)
}

func TestRequest_NoSecondRefresh(t *testing.T) {
	// Сервер выдает A2, но не принимает ни один токен.
	api, srv := newFakeAPI(t, "never", "A2")
	store := adapter.NewMemoryStore()
	require.NoError(t, store.SaveSession(context.Background(), "A1", "R1"))

	var hookCalls int
	c := newClient(t, srv.URL, store, apiclient.WithAuthExpiredHandler(func(context.Context, error) {
		hookCalls++
	}))

	_, err := c.Request(context.Background(), http.MethodGet, "/orders/", nil)
	assert.ErrorIs(t, err, apiclient.ErrAuthExpired)

	assert.EqualValues(t, 2, api.protectedCalls.Load())
	assert.EqualValues(t, 1, api.refreshCalls.Load())
	assert.Equal(t, 1, hookCalls)

	access, refresh := sessionOf(t, store)
	assert.Equal(t, "A2", access, "tokens stay after a rejected retry")
	assert.Equal(t, "R1", refresh)
}

func TestRequest_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"Product out of stock"}`)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL, adapter.NewMemoryStore()).
		Request(context.Background(), http.MethodPost, "/add-to-cart/1/", nil)

	httpErr, ok := apiclient.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "Product out of stock", httpErr.Detail())
	assert.Contains(t, err.Error(), "POST /add-to-cart/1/: status 400")
	assert.False(t, apiclient.IsAuthExpired(err))
}

func TestRequest_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := newClient(t, base, adapter.NewMemoryStore()).
		Request(context.Background(), http.MethodGet, "/cart/", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apiclient.ErrNetwork)
	var netErr *apiclient.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, base+"/cart/", netErr.URL)
}

func TestRequest_CanceledRefreshKeepsSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	released := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == apiclient.DefaultRefreshPath {
			_, _ = io.Copy(io.Discard, r.Body)
			cancel()
			<-released
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := adapter.NewMemoryStore()
	require.NoError(t, store.SaveSession(context.Background(), "A1", "R1"))

	_, err := newClient(t, srv.URL, store).Request(ctx, http.MethodGet, "/cart/", nil)
	close(released)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, apiclient.IsAuthExpired(err))

	access, refresh := sessionOf(t, store)
	assert.Equal(t, "A1", access)
	assert.Equal(t, "R1", refresh)
}

func TestRequest_SessionRoundTrip(t *testing.T) {
	api, srv := newFakeAPI(t, "A1", "")
	store := adapter.NewMemoryStore()
	c := newClient(t, srv.URL, store)

	// Вход: сервер выдал A1/R1, затем корзина запрашивается с Bearer A1.
	require.NoError(t, store.SaveSession(context.Background(), "A1", "R1"))

	_, err := c.Request(context.Background(), http.MethodGet, "/cart/", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer A1"}, api.authHeaders[0])
}

func TestRequest_DefaultHeadersAndRequestID(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, adapter.NewMemoryStore(), apiclient.WithDefaultHeader("X-Client", "cli"))
	ctx := logger.NewRequestIDContext(context.Background(), "req-42")

	_, err := c.Request(ctx, http.MethodPost, "/checkout/", []byte(`{"address":"x"}`))
	require.NoError(t, err)

	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "cli", got.Get("X-Client"))
	assert.Equal(t, "req-42", got.Get("X-Request-Id"))
}

func TestRequest_EncodeError(t *testing.T) {
	c := newClient(t, "http://127.0.0.1:1", adapter.NewMemoryStore())
	_, err := c.Request(context.Background(), http.MethodPost, "/x/", map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), apiclient.ErrorEncodeBody)
}

func TestRequest_ConcurrentRefresh(t *testing.T) {
	const callers = 8

	api, srv := newFakeAPI(t, "A2", "A2")
	store := adapter.NewMemoryStore()
	require.NoError(t, store.SaveSession(context.Background(), "A1", "R1"))
	c := newClient(t, srv.URL, store)

	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Request(context.Background(), http.MethodGet, "/orders/", nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	// Без дедупликации каждый получивший 401 вызов обновляет токен сам.
	n := api.refreshCalls.Load()
	assert.GreaterOrEqual(t, n, int32(1))
	assert.LessOrEqual(t, n, int32(callers))
}

func TestRequest_DeduplicatedRefreshSharesExchange(t *testing.T) {
	release := make(chan struct{})
	var refreshCalls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == apiclient.DefaultRefreshPath {
			refreshCalls.Add(1)
			<-release
			_, _ = io.WriteString(w, `{"access":"A2"}`)
			return
		}
		if r.Header.Get("Authorization") != "Bearer A2" {
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	store := adapter.NewMemoryStore()
	require.NoError(t, store.SaveSession(context.Background(), "A1", "R1"))
	c := newClient(t, srv.URL, store, apiclient.WithRefreshDeduplication())

	const callers = 4
	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Request(context.Background(), http.MethodGet, "/orders/", nil)
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool { return refreshCalls.Load() == 1 }, time.Second, 5*time.Millisecond)
	// Даем остальным вызовам дойти до ожидания общего обмена.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, refreshCalls.Load())
}

func TestRequest_DeduplicatedRefreshSurvivesCallerCancel(t *testing.T) {
	release := make(chan struct{})
	var refreshCalls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == apiclient.DefaultRefreshPath {
			_, _ = io.Copy(io.Discard, r.Body)
			refreshCalls.Add(1)
			<-release
			_, _ = io.WriteString(w, `{"access":"A2"}`)
			return
		}
		if r.Header.Get("Authorization") != "Bearer A2" {
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()
	defer func() {
		select {
		case <-release:
		default:
			close(release)
		}
	}()

	store := adapter.NewMemoryStore()
	require.NoError(t, store.SaveSession(context.Background(), "A1", "R1"))
	c := newClient(t, srv.URL, store, apiclient.WithRefreshDeduplication())

	first, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Request(first, http.MethodGet, "/orders/", nil)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return refreshCalls.Load() == 1 }, time.Second, 5*time.Millisecond)

	secondErr := make(chan error, 1)
	go func() {
		_, err := c.Request(context.Background(), http.MethodGet, "/orders/", nil)
		secondErr <- err
	}()
	// Даем второму вызову присоединиться к идущему обмену.
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, apiclient.IsAuthExpired(err))
	case <-time.After(time.Second):
		t.Fatal("canceled caller did not return")
	}

	close(release)
	select {
	case err := <-secondErr:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("second caller did not return")
	}

	assert.EqualValues(t, 1, refreshCalls.Load())
	access, refresh := sessionOf(t, store)
	assert.Equal(t, "A2", access)
	assert.Equal(t, "R1", refresh)
}

func TestRequest_CircuitBreaker(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	cb := resilience.NewCircuitBreaker("test", resilience.CircuitBreakerConfig{
		ErrorThreshold:   2,
		Timeout:          time.Hour,
		SuccessThreshold: 1,
	})
	c := newClient(t, base, adapter.NewMemoryStore(), apiclient.WithCircuitBreaker(cb))

	for range 2 {
		_, err := c.Request(context.Background(), http.MethodGet, "/cart/", nil)
		require.ErrorIs(t, err, apiclient.ErrNetwork)
		assert.False(t, errors.Is(err, resilience.ErrCircuitOpen))
	}

	_, err := c.Request(context.Background(), http.MethodGet, "/cart/", nil)
	assert.ErrorIs(t, err, apiclient.ErrNetwork)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, resilience.StateOpen, cb.GetState())
}

func TestRequest_Metrics(t *testing.T) {
	api, srv := newFakeAPI(t, "A2", "A2")
	store := adapter.NewMemoryStore()
	require.NoError(t, store.SaveSession(context.Background(), "A1", "R1"))

	reg := prometheus.NewRegistry()
	m := apiclient.NewMetrics(reg)
	c := newClient(t, srv.URL, store, apiclient.WithMetrics(m))

	_, err := c.Request(context.Background(), http.MethodGet, "/orders/", nil)
	require.NoError(t, err)

	api.mu.Lock()
	api.refreshStatus = http.StatusUnauthorized
	api.valid = "A3"
	api.mu.Unlock()

	_, err = c.Request(context.Background(), http.MethodGet, "/orders/", nil)
	require.ErrorIs(t, err, apiclient.ErrAuthExpired)

	assert.InDelta(t, 1, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, apiclient.OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, apiclient.OutcomeAuthExpired)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Refreshes.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Refreshes.WithLabelValues("failure")), 0)
}

func TestDo_EmptyBodyAndDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad/" {
			_, _ = io.WriteString(w, `not json`)
		}
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, adapter.NewMemoryStore())

	var out map[string]any
	require.NoError(t, c.Do(context.Background(), http.MethodDelete, "/wishlist/remove/1/", nil, &out))
	assert.Nil(t, out)

	err := c.Do(context.Background(), http.MethodGet, "/bad/", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), apiclient.ErrorDecodeResponse)
}

func TestRequest_KeepsEscapedPathAndMergesQuery(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.EscapedPath() + "?" + r.URL.RawQuery
	}))
	defer srv.Close()

	c := newClient(t, srv.URL+"/", adapter.NewMemoryStore())
	_, err := c.Request(context.Background(), http.MethodPost, "api/password_reset_confirm/MQ/abc%2Fdef/?a=1", nil,
		apiclient.WithQuery(url.Values{"b": {"2"}}))
	require.NoError(t, err)
	assert.Equal(t, "/api/password_reset_confirm/MQ/abc%2Fdef/?a=1&b=2", got)
}

func TestRequest_MalformedQueryFailsBeforeSending(t *testing.T) {
	var (
		calls atomic.Int32
		mu    sync.Mutex
		got   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		mu.Lock()
		got = r.URL.Query().Get("q")
		mu.Unlock()
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, adapter.NewMemoryStore())
	_, err := c.Request(context.Background(), http.MethodGet, "/search/?q=100%&page=2", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), apiclient.ErrorBuildRequest)
	assert.Zero(t, calls.Load())

	_, err = c.Request(context.Background(), http.MethodGet, "/search/", nil,
		apiclient.WithQuery(url.Values{"q": {"100%"}}))
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "100%", got)
}
