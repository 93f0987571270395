// Package app wires HTTP, the control server and board state together.
package app

import (
	"encoding/json"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/frudas24/flexbox/internal/board"
	"github.com/frudas24/flexbox/internal/box"
	"github.com/frudas24/flexbox/internal/session"
	"github.com/frudas24/flexbox/internal/web"
)

// RegisterRoutes wires API and static handlers onto the mux. An empty
// staticDir serves the embedded client only.
func (a *App) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	mux.HandleFunc("/login", a.handleLogin)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/api/monitors", a.handleMonitors)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/boxes", a.handleBoxes)
	mux.HandleFunc("/api/layout", a.handleLayout)
	mux.Handle("/ws/control", a.Control())
	mux.HandleFunc("/favicon.ico", handleFavicon)

	mux.Handle("/", a.staticFileServer(staticDir))
}

type loginRequest struct {
	Password string `json:"password"`
}

type stateResponse struct {
	session.Snapshot
	Board board.Snapshot `json:"board"`
}

type addedResponse struct {
	ID string `json:"id"`
}

// handleLogin authenticates the session.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !a.session.Authenticate(req.Password) {
		a.log.Warn("login rejected", zap.String("remote", r.RemoteAddr))
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

// handleLogout clears authentication state.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.session.Logout()
	writeJSON(w, map[string]bool{"ok": true})
}

// handleMonitors returns the list of monitors.
func (a *App) handleMonitors(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	writeJSON(w, a.ListMonitors())
}

// handleState returns the session state and a board snapshot.
func (a *App) handleState(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	writeJSON(w, stateResponse{
		Snapshot: a.session.Snapshot(),
		Board:    a.board.Snapshot(),
	})
}

// handleBoxes adds a box from a JSON options body. Omitted options keep their
// defaults.
func (a *App) handleBoxes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !a.requireAuth(w) {
		return
	}
	opts := box.DefaultOptions()
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	id, err := a.board.Add(opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(addedResponse{ID: id})
}

// handleLayout returns the current layout on GET and persists it on POST.
func (a *App) handleLayout(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, a.board.Layout())
	case http.MethodPost:
		if err := a.SaveLayout(a.board.Layout()); err != nil {
			a.log.Error("save layout failed", zap.Error(err))
			http.Error(w, "failed to save layout", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]bool{"ok": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// requireAuth returns false and writes an error if the session is not authenticated.
func (a *App) requireAuth(w http.ResponseWriter) bool {
	if !a.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// staticFileServer returns a handler for static assets, preferring disk then embed.
func (a *App) staticFileServer(staticDir string) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
		a.log.Warn("static dir unavailable, using embedded assets", zap.String("dir", staticDir))
	}

	embedded, err := web.StaticFS()
	if err != nil {
		a.log.Error("static assets unavailable", zap.Error(err))
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
