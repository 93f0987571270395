// Package app wires HTTP, the control server and board state together.
package app

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/frudas24/flexbox/internal/board"
	"github.com/frudas24/flexbox/internal/config"
	"github.com/frudas24/flexbox/internal/control"
	"github.com/frudas24/flexbox/internal/geom"
	"github.com/frudas24/flexbox/internal/layout"
	"github.com/frudas24/flexbox/internal/monitor"
	"github.com/frudas24/flexbox/internal/session"
)

// MonitorLister enumerates displays.
type MonitorLister func() ([]monitor.Monitor, error)

// App coordinates the HTTP API, the control websocket and the board.
type App struct {
	mu       sync.Mutex
	cfg      config.Config
	log      *zap.Logger
	session  *session.Session
	board    *board.Board
	control  *control.Server
	list     MonitorLister
	monitors []monitor.Monitor
}

// New creates a new application with its dependencies wired. A nil lister
// uses monitor.ListMonitors.
func New(cfg config.Config, sess *session.Session, list MonitorLister, log *zap.Logger) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if list == nil {
		list = monitor.ListMonitors
	}
	if log == nil {
		log = zap.NewNop()
	}

	app := &App{
		cfg:     cfg,
		log:     log,
		session: sess,
		list:    list,
	}
	app.board = board.New(board.Config{
		Size:        monitor.DefaultSize,
		HandleSize:  cfg.HandleSize,
		ClampResize: cfg.ClampResize,
	}, log.Named("board"))
	app.control = control.NewServer(sess, app.board, log.Named("control"), control.Options{
		MoveRate:   cfg.MoveRate,
		MoveBurst:  cfg.MoveBurst,
		SaveLayout: app.SaveLayout,
	})
	return app, nil
}

// Start enumerates monitors, sizes the surface and restores the saved layout.
func (a *App) Start() error {
	monitors, err := a.list()
	switch {
	case errors.Is(err, monitor.ErrUnsupported):
		a.log.Info("monitor enumeration unavailable, using configured surface")
	case err != nil:
		return fmt.Errorf("list monitors: %w", err)
	}
	a.mu.Lock()
	a.monitors = monitors
	a.mu.Unlock()

	a.session.SetMonitor(a.cfg.MonitorIndex)
	override := geom.Size{W: a.cfg.Surface.Width, H: a.cfg.Surface.Height}
	size := monitor.SurfaceSize(override, monitors, a.cfg.MonitorIndex)
	if err := a.board.ResizeSurface(size.W, size.H); err != nil {
		return err
	}

	l, err := layout.Load(a.cfg.LayoutPath)
	if err != nil {
		return err
	}
	if err := a.board.Apply(l); err != nil {
		return fmt.Errorf("apply layout %s: %w", a.cfg.LayoutPath, err)
	}
	a.log.Info("board ready",
		zap.Float64("width", a.board.Size().W),
		zap.Float64("height", a.board.Size().H),
		zap.Int("boxes", len(l.Boxes)))
	return nil
}

// Stop removes every box from the board.
func (a *App) Stop() error {
	a.board.Close()
	return nil
}

// SaveLayout persists l to the configured layout path.
func (a *App) SaveLayout(l layout.Layout) error {
	if a.cfg.LayoutPath == "" {
		return errors.New("layout path is not configured")
	}
	if err := layout.Save(a.cfg.LayoutPath, l); err != nil {
		return err
	}
	a.log.Info("layout saved", zap.String("path", a.cfg.LayoutPath), zap.Int("boxes", len(l.Boxes)))
	return nil
}

// ListMonitors returns the cached monitor list.
func (a *App) ListMonitors() []monitor.Monitor {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]monitor.Monitor, len(a.monitors))
	copy(out, a.monitors)
	return out
}

// Board returns the board hosting every box.
func (a *App) Board() *board.Board {
	return a.board
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}
