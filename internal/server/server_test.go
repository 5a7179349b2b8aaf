package server

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/twolink/internal/kinematics"
	"github.com/san-kum/twolink/internal/monitoring"
)

func newTestServer(t *testing.T, cfg Config) http.Handler {
	t.Helper()
	monitoring.SetLogger(t.Logf)
	t.Cleanup(func() { monitoring.SetLogger(nil) })
	if cfg.L1 == 0 {
		cfg.L1, cfg.L2 = 100, 80
	}
	s, err := New(cfg)
	require.NoError(t, err)
	return s.Handler()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestNewRejectsBadLengths(t *testing.T) {
	_, err := New(Config{L1: 0, L2: 10})
	assert.True(t, errors.Is(err, kinematics.ErrInvalidLength))
}

func TestForward(t *testing.T) {
	h := newTestServer(t, Config{})
	w := get(t, h, "/api/forward?theta1=0&theta2=90&l1=100&l2=80")
	require.Equal(t, http.StatusOK, w.Code)

	var body poseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.InDelta(t, 100, body.Elbow.X, 1e-9)
	assert.InDelta(t, 0, body.Elbow.Y, 1e-9)
	assert.InDelta(t, 100, body.EndEffector.X, 1e-9)
	assert.InDelta(t, 80, body.EndEffector.Y, 1e-9)
	assert.InDelta(t, math.Pi/2, body.Theta2, 1e-12)
}

func TestForwardDefaultsLengths(t *testing.T) {
	h := newTestServer(t, Config{L1: 120, L2: 100})
	w := get(t, h, "/api/forward")
	require.Equal(t, http.StatusOK, w.Code)

	var body poseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 120.0, body.L1)
	assert.InDelta(t, 220, body.EndEffector.X, 1e-9)
}

func TestInverse(t *testing.T) {
	h := newTestServer(t, Config{})

	tests := []struct {
		name   string
		query  string
		clamp  string
		reachX float64
	}{
		{"reachable", "x=180&y=0", "none", 180},
		{"outer", "x=1000&y=0", "outer", 180},
		{"inner", "x=5&y=0", "inner", 20},
		{"degenerate", "x=0&y=0", "degenerate", 20},
		{"subnormal", "x=1e-320&y=0", "inner", 20},
		{"max float", "x=1.7976931348623157e308&y=0", "outer", 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, h, "/api/inverse?"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)

			var body inverseResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.clamp, body.Clamp)
			assert.InDelta(t, tt.reachX, body.Reached.X, 1e-9)
			assert.InDelta(t, body.Reached.X, body.EndEffector.X, 1e-6)
			assert.InDelta(t, body.Reached.Y, body.EndEffector.Y, 1e-6)
		})
	}
}

func TestInverseElbowBranch(t *testing.T) {
	h := newTestServer(t, Config{})

	var up, down inverseResponse
	require.NoError(t, json.Unmarshal(get(t, h, "/api/inverse?x=100&y=60").Body.Bytes(), &up))
	require.NoError(t, json.Unmarshal(get(t, h, "/api/inverse?x=100&y=60&elbow=down").Body.Bytes(), &down))

	assert.True(t, up.ElbowUp)
	assert.False(t, down.ElbowUp)
	assert.Less(t, up.Theta2, 0.0)
	assert.Greater(t, down.Theta2, 0.0)
	assert.InDelta(t, -up.Theta2, down.Theta2, 1e-9)
}

func TestBadRequests(t *testing.T) {
	h := newTestServer(t, Config{})

	for _, target := range []string{
		"/api/inverse?y=1",
		"/api/inverse?x=abc&y=1",
		"/api/inverse?x=1&y=NaN",
		"/api/inverse?x=1&y=1&elbow=sideways",
		"/api/inverse?x=1&y=1&l1=-5",
		"/api/forward?theta1=Inf",
		"/api/forward?l2=0",
		"/api/forward?l1=1e308&l2=1e308",
	} {
		w := get(t, h, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body["error"], target)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(t, Config{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/forward", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestEmbeddedStatic(t *testing.T) {
	h := newTestServer(t, Config{})

	w := get(t, h, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<canvas")

	w = get(t, h, "/app.js")
	assert.Equal(t, http.StatusOK, w.Code)
	// Solves are paced by animation frames and stale answers are dropped.
	assert.Contains(t, w.Body.String(), "requestAnimationFrame")
	assert.Contains(t, w.Body.String(), "seq <= shown")
	assert.NotContains(t, w.Body.String(), `addEventListener("mousemove", async`)
}

func TestStaticDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<p>custom</p>"), 0644))

	h := newTestServer(t, Config{StaticDir: dir})
	w := get(t, h, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "custom")
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, Config{})
	w := get(t, h, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	monitoring.SetLogger(nil)
	s, err := New(Config{Addr: "127.0.0.1:0", L1: 100, L2: 80})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
