// Package control runs the websocket control channel for the board.
package control

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/frudas24/flexbox/internal/board"
	"github.com/frudas24/flexbox/internal/box"
	"github.com/frudas24/flexbox/internal/layout"
	"github.com/frudas24/flexbox/internal/pointer"
	"github.com/frudas24/flexbox/internal/session"
)

const (
	outboxSize = 256
	writeWait  = 5 * time.Second
)

// errBusy is reported to a client that connects while another controller is
// active.
var errBusy = errors.New("control connection already active")

// Options tunes a control server.
type Options struct {
	// MoveRate is the number of pointer moves per second forwarded per
	// connection; MoveBurst the limiter burst.
	MoveRate  float64
	MoveBurst int
	// SaveLayout persists the board layout. Nil disables saveLayout.
	SaveLayout func(layout.Layout) error
}

// Server handles websocket control input.
type Server struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	session  *session.Session
	board    *board.Board
	log      *zap.Logger
	opts     Options
	conn     *websocket.Conn
	now      func() time.Time
}

// NewServer creates a control websocket server.
func NewServer(sess *session.Session, b *board.Board, log *zap.Logger, opts Options) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MoveRate <= 0 {
		opts.MoveRate = 120
	}
	if opts.MoveBurst <= 0 {
		opts.MoveBurst = 8
	}
	return &Server{
		session: sess,
		board:   b,
		log:     log,
		opts:    opts,
		now:     time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and processes control messages until
// either side closes it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		s.log.Warn("control connection rejected", zap.Error(err))
		_ = conn.WriteJSON(Reply{T: ReplyError, Text: err.Error()})
		_ = conn.Close()
		return
	}
	defer s.cleanupConn(conn)
	s.log.Info("control connected", zap.String("remote", r.RemoteAddr))

	out := make(chan Reply, outboxSize)
	unsubscribe := s.board.Subscribe(func(ev box.Event) {
		select {
		case out <- eventReply(ev):
		default:
			s.log.Warn("control outbox full, event dropped", zap.String("event", string(ev.Type)))
		}
	})
	defer unsubscribe()

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error { return s.readLoop(ctx, conn, out) })
	g.Go(func() error { return s.writeLoop(ctx, conn, out) })
	g.Go(func() error {
		<-ctx.Done()
		return conn.Close()
	})
	err = g.Wait()
	s.log.Info("control disconnected", zap.NamedError("reason", err))
}

// acceptConn ensures only one active control connection exists.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return errBusy
	}
	s.conn = conn
	return nil
}

// cleanupConn clears the active connection when closed.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
	_ = conn.Close()
}

// readLoop decodes messages and applies them. Message errors are reported
// to the client and do not end the connection.
func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, out chan<- Reply) error {
	gestures := NewGestureState(s.opts.MoveRate, s.opts.MoveBurst)
	gestures.SetNowFunc(s.now)
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}
		if err := s.handleMessage(ctx, gestures, msg, out); err != nil {
			s.log.Debug("control message failed", zap.String("t", msg.T), zap.Error(err))
			if err := send(ctx, out, Reply{T: ReplyError, Text: err.Error()}); err != nil {
				return err
			}
		}
	}
}

// writeLoop is the only writer on conn.
func (s *Server) writeLoop(ctx context.Context, conn *websocket.Conn, out <-chan Reply) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case reply := <-out:
			_ = conn.SetWriteDeadline(s.now().Add(writeWait))
			if err := conn.WriteJSON(reply); err != nil {
				return err
			}
		}
	}
}

// send queues a reply, waiting for room.
func send(ctx context.Context, out chan<- Reply, reply Reply) error {
	select {
	case out <- reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// handleMessage dispatches a single control message.
func (s *Server) handleMessage(ctx context.Context, gestures *GestureState, msg Message, out chan<- Reply) error {
	switch msg.T {
	case MsgDown:
		return s.handlePointer(gestures.HandleDown, pointer.Down, msg)
	case MsgMove:
		return s.handlePointer(gestures.HandleMove, pointer.Move, msg)
	case MsgUp:
		return s.handlePointer(gestures.HandleUp, pointer.Up, msg)
	case MsgSetProp:
		value, err := decodeValue(msg.Value)
		if err != nil {
			return fmt.Errorf("setProp %s: %w", msg.Name, err)
		}
		_, err = s.board.SetProp(msg.Box, msg.Name, value)
		return err
	case MsgAddBox:
		return s.handleAddBox(ctx, msg, out)
	case MsgRemoveBox:
		return s.board.Remove(msg.Box)
	case MsgResizeSurface:
		return s.board.ResizeSurface(msg.W, msg.H)
	case MsgSaveLayout:
		if s.opts.SaveLayout == nil {
			return errors.New("layout persistence is disabled")
		}
		if err := s.opts.SaveLayout(s.board.Layout()); err != nil {
			return fmt.Errorf("save layout: %w", err)
		}
		return send(ctx, out, Reply{T: ReplySaved})
	case MsgSnapshot:
		snap := s.board.Snapshot()
		return send(ctx, out, Reply{T: ReplySnapshot, Board: &snap})
	case MsgInputEnabled:
		if msg.Enabled != nil {
			s.session.SetInputEnabled(*msg.Enabled)
		}
		return nil
	default:
		return fmt.Errorf("unknown message type %q", msg.T)
	}
}

// handlePointer maps a pointer message onto the surface, filters it through
// the gesture state and dispatches what remains.
func (s *Server) handlePointer(filter func(pointer.Event) []pointer.Event, kind pointer.Kind, msg Message) error {
	if !s.session.InputEnabled() {
		return nil
	}
	for _, ev := range filter(PointerEvent(kind, msg, s.board.Size())) {
		target := ""
		if ev.Kind == pointer.Down {
			target = msg.Target
		}
		s.board.Dispatch(ev, target)
	}
	return nil
}

// handleAddBox creates a box and acknowledges its id.
func (s *Server) handleAddBox(ctx context.Context, msg Message, out chan<- Reply) error {
	opts, err := decodeOptions(msg.Options)
	if err != nil {
		return fmt.Errorf("addBox: %w", err)
	}
	id := msg.Box
	if id == "" {
		id, err = s.board.Add(opts)
	} else {
		err = s.board.AddWithID(id, opts)
	}
	if err != nil {
		return err
	}
	return send(ctx, out, Reply{T: ReplyAdded, Box: id})
}
