package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	stubconfig "shopfront/internal/stubapi/config"
	stubhttp "shopfront/internal/stubapi/http"
	"shopfront/internal/stubapi/passwords"
	"shopfront/internal/stubapi/shop"
	"shopfront/internal/stubapi/tokens"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// setupCLI запускает тестовый API и направляет на него клиент с файловой сессией.
func setupCLI(t *testing.T) *testClock {
	t.Helper()

	clock := &testClock{t: time.Now()}
	issuer, err := tokens.NewIssuer("cli-secret", time.Minute, time.Hour, clock.now)
	require.NoError(t, err)
	store := shop.NewStore(passwords.NewBcrypt(bcrypt.MinCost), shop.DefaultCatalog(), clock.now)
	srv := stubhttp.NewServer(&stubconfig.HTTPConfig{ReadTimeout: time.Second, WriteTimeout: time.Second}, store, issuer, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("STOREFRONT_API_URL", "http://"+ln.Addr().String())
	t.Setenv("STOREFRONT_SESSION_BACKEND", "file")
	t.Setenv("STOREFRONT_SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("STOREFRONT_LOGGER_LEVEL", "error")
	t.Setenv(EnvPassword, "secret123")

	return clock
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCLI_SessionFlow(t *testing.T) {
	clock := setupCLI(t)

	code, _, stderr := run(t, "register", "alice", "--email", "alice@example.com")
	require.Equal(t, 0, code, stderr)

	code, _, stderr = run(t, "cart", "add", "1")
	require.Equal(t, 0, code, stderr)

	clock.advance(2 * time.Minute)

	code, stdout, stderr := run(t, "cart")
	require.Equal(t, 0, code, stderr)
	var cart struct {
		Items []json.RawMessage `json:"cart_items"`
		Total string            `json:"total_discounted_price"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &cart))
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "1199.20", cart.Total)

	clock.advance(2 * time.Hour)

	code, _, stderr = run(t, "cart")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, MsgSessionExpired)

	code, _, stderr = run(t, "login", "alice")
	require.Equal(t, 0, code, stderr)

	code, stdout, stderr = run(t, "--metrics", "wishlist", "toggle", "2")
	require.Equal(t, 0, code, stderr)
	assert.JSONEq(t, `{"status":"added"}`, stdout)
	assert.Contains(t, stderr, "storefront_api_client_requests_total")

	code, _, _ = run(t, "logout")
	require.Equal(t, 0, code)

	code, _, stderr = run(t, "profile")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, MsgSessionExpired)
}

func TestCLI_Errors(t *testing.T) {
	setupCLI(t)

	code, _, stderr := run(t, "login", "ghost", "--password", "wrong-pass")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid username or password")

	code, _, stderr = run(t, "product", "abc")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "product id must be a positive integer")

	code, _, stderr = run(t, "product", "999")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "404")

	code, stdout, stderr := run(t, "search", "--suggest", "kett")
	require.Equal(t, 0, code, stderr)
	assert.JSONEq(t, `["Kettle","Kettlebell"]`, stdout)
}
