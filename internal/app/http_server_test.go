package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/frudas24/flexbox/internal/box"
	"github.com/frudas24/flexbox/internal/config"
	"github.com/frudas24/flexbox/internal/geom"
	"github.com/frudas24/flexbox/internal/layout"
	"github.com/frudas24/flexbox/internal/monitor"
	"github.com/frudas24/flexbox/internal/session"
)

// newTestApp returns a started App backed by a temp layout file and a fixed
// monitor list.
func newTestApp(t *testing.T, monitors []monitor.Monitor, listErr error) (*App, *session.Session) {
	t.Helper()
	cfg := config.Config{
		DataDir:      t.TempDir(),
		MonitorIndex: 1,
		HandleSize:   8,
		MoveRate:     120,
		MoveBurst:    8,
	}
	cfg.LayoutPath = filepath.Join(cfg.DataDir, "layout.yaml")
	sess := session.New("pw")
	a, err := New(cfg, sess, func() ([]monitor.Monitor, error) { return monitors, listErr }, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, a.Start())
	t.Cleanup(func() { _ = a.Stop() })
	return a, sess
}

// serve runs one request through the registered routes.
func serve(a *App, method, target, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	a.RegisterRoutes(mux, "")
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// TestNew_RequiresSession verifies New rejects a nil session.
func TestNew_RequiresSession(t *testing.T) {
	_, err := New(config.Config{}, nil, nil, nil)
	require.Error(t, err)
}

// TestStart_SizesSurfaceFromMonitor verifies the selected monitor sizes the board.
func TestStart_SizesSurfaceFromMonitor(t *testing.T) {
	a, sess := newTestApp(t, []monitor.Monitor{
		{Index: 1, W: 1920, H: 1080, Primary: true},
		{Index: 2, W: 800, H: 600},
	}, nil)

	assert.Equal(t, geom.Size{W: 1920, H: 1080}, a.Board().Size())
	assert.Equal(t, 1, sess.Monitor())
	assert.Len(t, a.ListMonitors(), 2)
}

// TestStart_UnsupportedMonitorsFallsBack verifies enumeration failures on
// unsupported platforms keep the default surface.
func TestStart_UnsupportedMonitorsFallsBack(t *testing.T) {
	a, _ := newTestApp(t, nil, monitor.ErrUnsupported)
	assert.Equal(t, monitor.DefaultSize, a.Board().Size())
	assert.Empty(t, a.ListMonitors())
}

// TestStart_ListErrorFails verifies other enumeration errors abort startup.
func TestStart_ListErrorFails(t *testing.T) {
	a, err := New(config.Config{}, session.New("pw"), func() ([]monitor.Monitor, error) {
		return nil, errors.New("boom")
	}, nil)
	require.NoError(t, err)
	require.Error(t, a.Start())
}

// TestStart_RestoresLayout verifies a saved layout is applied on startup.
func TestStart_RestoresLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	opts := box.DefaultOptions()
	opts.W, opts.H, opts.X, opts.Y = 120, 80, 10, 20
	require.NoError(t, layout.Save(path, layout.Layout{
		Surface: geom.Size{W: 640, H: 480},
		Boxes:   []layout.Entry{{ID: "a", Options: opts}},
	}))

	a, err := New(config.Config{LayoutPath: path}, session.New("pw"), func() ([]monitor.Monitor, error) {
		return nil, nil
	}, nil)
	require.NoError(t, err)
	require.NoError(t, a.Start())
	defer func() { _ = a.Stop() }()

	assert.Equal(t, geom.Size{W: 640, H: 480}, a.Board().Size())
	b, ok := a.Board().Get("a")
	require.True(t, ok)
	assert.Equal(t, geom.Rect{Top: 20, Left: 10, Width: 120, Height: 80}, b.Rect())
}

// TestRoutes_RequireAuth verifies every API route except login rejects
// unauthenticated requests.
func TestRoutes_RequireAuth(t *testing.T) {
	a, _ := newTestApp(t, nil, nil)
	cases := []struct{ method, target string }{
		{http.MethodGet, "/api/state"},
		{http.MethodGet, "/api/monitors"},
		{http.MethodPost, "/api/boxes"},
		{http.MethodGet, "/api/layout"},
		{http.MethodPost, "/api/layout"},
		{http.MethodGet, "/ws/control"},
	}
	for _, c := range cases {
		rec := serve(a, c.method, c.target, "{}")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", c.method, c.target)
	}
}

// TestLogin verifies password checks and the logout round trip.
func TestLogin(t *testing.T) {
	a, sess := newTestApp(t, nil, nil)

	rec := serve(a, http.MethodPost, "/login", `{"password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = serve(a, http.MethodGet, "/login", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	rec = serve(a, http.MethodPost, "/login", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(a, http.MethodPost, "/login", `{"password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sess.IsAuthenticated())

	rec = serve(a, http.MethodPost, "/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sess.IsAuthenticated())
}

// TestHandleBoxes_AddsBox verifies a posted box keeps defaults for omitted
// options and shows up in the state snapshot.
func TestHandleBoxes_AddsBox(t *testing.T) {
	a, sess := newTestApp(t, nil, nil)
	require.True(t, sess.Authenticate("pw"))

	rec := serve(a, http.MethodPost, "/api/boxes", `{"w":50,"h":40,"x":5,"y":6}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var added addedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	require.NotEmpty(t, added.ID)

	b, ok := a.Board().Get(added.ID)
	require.True(t, ok)
	assert.Equal(t, geom.Rect{Top: 6, Left: 5, Width: 50, Height: 40}, b.Rect())
	assert.Equal(t, box.DefaultConstraints(), b.Constraints())

	rec = serve(a, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var state stateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.True(t, state.Authenticated)
	require.Len(t, state.Board.Boxes, 1)
	assert.Equal(t, added.ID, state.Board.Boxes[0].ID)
}

// TestHandleBoxes_RejectsInvalidOptions verifies inverted bounds are a bad request.
func TestHandleBoxes_RejectsInvalidOptions(t *testing.T) {
	a, sess := newTestApp(t, nil, nil)
	require.True(t, sess.Authenticate("pw"))

	rec := serve(a, http.MethodPost, "/api/boxes", `{"minW":50,"maxW":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = serve(a, http.MethodGet, "/api/boxes", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Empty(t, a.Board().IDs())
}

// TestHandleLayout_SavesToDisk verifies POST persists the board and GET
// reports it.
func TestHandleLayout_SavesToDisk(t *testing.T) {
	a, sess := newTestApp(t, nil, nil)
	require.True(t, sess.Authenticate("pw"))

	opts := box.DefaultOptions()
	opts.W, opts.H = 30, 30
	require.NoError(t, a.Board().AddWithID("one", opts))

	rec := serve(a, http.MethodPost, "/api/layout", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	saved, err := layout.Load(a.cfg.LayoutPath)
	require.NoError(t, err)
	require.Len(t, saved.Boxes, 1)
	assert.Equal(t, "one", saved.Boxes[0].ID)
	assert.Equal(t, 30.0, saved.Boxes[0].Options.W)

	rec = serve(a, http.MethodGet, "/api/layout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var l layout.Layout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &l))
	assert.Len(t, l.Boxes, 1)

	rec = serve(a, http.MethodDelete, "/api/layout", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// TestStatic_DiskThenEmbedded verifies a disk directory wins and the embedded
// client is the fallback.
func TestStatic_DiskThenEmbedded(t *testing.T) {
	a, _ := newTestApp(t, nil, nil)

	rec := serve(a, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "flexbox")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("from disk"), 0o600))
	mux := http.NewServeMux()
	a.RegisterRoutes(mux, dir)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "from disk", rec.Body.String())

	rec = serve(a, http.MethodGet, "/favicon.ico", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
