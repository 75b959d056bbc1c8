package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tracker/internal/server"
	"tracker/internal/store"
	"tracker/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var hc = http.Client{Timeout: 2 * time.Second}

// named returns a router that answers every path with its name and the path it saw.
func named(name string) http.Handler {
	r := chi.NewRouter()
	r.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{"router": name, "path": r.URL.Path, "body": body})
	})
	return r
}

func newTestServer(t *testing.T, opts server.Options, db store.Database) *httptest.Server {
	s := server.New(opts, db, server.Routers{
		Exercises: named("exercises"),
		Users:     named("users"),
	})
	ts := httptest.NewServer(s.Handler)
	t.Cleanup(ts.Close)
	return ts
}

type routed struct {
	Router string         `json:"router"`
	Path   string         `json:"path"`
	Body   map[string]any `json:"body"`
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.Nil(t, err)
	return send(t, req)
}

func send(t *testing.T, req *http.Request) (*http.Response, []byte) {
	res, err := hc.Do(req)
	require.Nil(t, err)
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.Nil(t, err)
	return res, b
}

func TestServer_MountsRouters(t *testing.T) {
	ts := newTestServer(t, server.Options{}, store.Unavailable{})

	for prefix, router := range map[string]string{"/exercises": "exercises", "/users": "users"} {
		res, b := get(t, ts.URL+prefix+"/anything")
		require.Equal(t, http.StatusOK, res.StatusCode)

		var got routed
		require.Nil(t, json.Unmarshal(b, &got))
		assert.Equal(t, router, got.Router)
		assert.Equal(t, prefix+"/anything", got.Path)
	}
}

func TestServer_UnknownPathIsNotFound(t *testing.T) {
	ts := newTestServer(t, server.Options{}, store.Unavailable{})

	res, _ := get(t, ts.URL+"/workouts/1")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestServer_JSONBodyReachesRouter(t *testing.T) {
	ts := newTestServer(t, server.Options{}, store.Unavailable{})

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/users/add", strings.NewReader(`{"username":"alice"}`))
	require.Nil(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, b := send(t, req)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var got routed
	require.Nil(t, json.Unmarshal(b, &got))
	assert.Equal(t, "alice", got.Body["username"])
}

func TestServer_MalformedJSONIsBadRequest(t *testing.T) {
	ts := newTestServer(t, server.Options{}, store.Unavailable{})

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/exercises/add", strings.NewReader(`{"username":"alice",}`))
	require.Nil(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, _ := send(t, req)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestServer_CORSAllowList(t *testing.T) {
	ts := newTestServer(t, server.Options{AllowedOrigins: []string{"http://localhost:3000"}}, store.Unavailable{})

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/users/", nil)
	require.Nil(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	res, _ := send(t, req)
	assert.Equal(t, "http://localhost:3000", res.Header.Get("Access-Control-Allow-Origin"))

	req, err = http.NewRequest(http.MethodGet, ts.URL+"/users/", nil)
	require.Nil(t, err)
	req.Header.Set("Origin", "https://evil.example")
	res, _ = send(t, req)
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_CORSWildcardPreflight(t *testing.T) {
	ts := newTestServer(t, server.Options{AllowedOrigins: []string{"*"}}, store.Unavailable{})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/exercises/abc", nil)
	require.Nil(t, err)
	req.Header.Set("Origin", "https://anywhere.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)

	res, _ := send(t, req)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, res.Header.Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

func TestServer_Health(t *testing.T) {
	db := mocks.NewDatabase(t)
	db.On("Ping", mock.Anything).Return(nil).Once()
	db.On("Ping", mock.Anything).Return(store.ErrUnavailable).Once()

	ts := newTestServer(t, server.Options{}, db)

	res, b := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(b))

	res, _ = get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
}

func TestServer_Metrics(t *testing.T) {
	ts := newTestServer(t, server.Options{}, store.Unavailable{})

	_, _ = get(t, ts.URL+"/users/")
	res, b := get(t, ts.URL+"/metrics")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(b), "tracker_http_requests_total")
}
