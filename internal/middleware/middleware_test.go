package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/catering-rentals/internal/config"
)

func quietLog() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestSession_IssuesAndReusesCookie(t *testing.T) {
	e := echo.New()
	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = SessionID(c)
		return c.NoContent(http.StatusOK)
	}, Session())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, SessionCookie, cookies[0].Name)
	require.Equal(t, cookies[0].Value, seen)
	_, err := uuid.Parse(seen)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: seen})
	rec = httptest.NewRecorder()
	first := seen
	e.ServeHTTP(rec, req)
	require.Equal(t, first, seen)
	require.Empty(t, rec.Result().Cookies(), "existing session keeps its cookie")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.NotEqual(t, "forged", seen)
}

func TestSessionID_Outside(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	require.Equal(t, "anon", SessionID(c))
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/wizards", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/wizards")
	c.Set(sessionKey, "s1")

	cfg := config.RateLimitConfig{Prefix: "rl"}
	for strategy, want := range map[string]string{
		"ip":               "rl:ip:10.0.0.1",
		"session":          "rl:sid:s1",
		"ip_route":         "rl:ip:10.0.0.1:route:POST /api/wizards",
		"session_route":    "rl:sid:s1:route:POST /api/wizards",
		"ip_session_route": "rl:ip:10.0.0.1:sid:s1:route:POST /api/wizards",
		"":                 "rl:ip:10.0.0.1:sid:s1:route:POST /api/wizards",
	} {
		cfg.KeyStrategy = strategy
		require.Equal(t, want, buildRateKey(cfg, c), strategy)
	}
}

func TestNilRedisDisablesLimiterAndCache(t *testing.T) {
	e := echo.New()
	rl := NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil, quietLog())
	ca := NewRedisCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil, quietLog())
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "ok") }, rl, ca)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("X-Cache"))
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	raw, err := encodePayload(http.StatusOK, hdr, []byte(`{"data":[]}`))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodePayload(raw)
	require.True(t, ok)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	require.Equal(t, `{"data":[]}`, string(body))

	_, _, _, ok = decodePayload(raw[:5])
	require.False(t, ok)
}

func TestCaptureWriterOverflow(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	require.False(t, cw.overflow)
	_, _ = cw.Write([]byte("def"))
	require.True(t, cw.overflow)
	require.Equal(t, "abcdef", rec.Body.String())
	require.Zero(t, cw.buf.Len())
}

func TestSlogLogsRequest(t *testing.T) {
	var sb strings.Builder
	log := slog.New(slog.NewJSONHandler(&sb, nil))
	e := echo.New()
	e.Use(Slog(log))
	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusTeapot) })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Contains(t, sb.String(), `"path":"/healthz"`)
	require.Contains(t, sb.String(), `"status":418`)
}
