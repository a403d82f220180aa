package bridge

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/pathstack-dev/pathstack/pkg/route"
	"github.com/pathstack-dev/pathstack/pkg/router"
)

const (
	// writeTimeout bounds a single frame write.
	writeTimeout = 10 * time.Second

	// sendBuffer is the outbound queue depth per session. A client that
	// cannot keep up loses intermediate snapshots, never the stream.
	sendBuffer = 16
)

// session is one connected WebSocket client: a subscription on the
// router plus a command read loop and a buffered write loop.
type session struct {
	id      string
	server  *Server
	conn    *websocket.Conn
	limiter *rate.Limiter

	send  chan any
	done  chan struct{}
	once  sync.Once
	unsub func()
}

func newSession(s *Server, conn *websocket.Conn) *session {
	sess := &session{
		id:      uuid.NewString(),
		server:  s,
		conn:    conn,
		limiter: rate.NewLimiter(s.rateLimit, s.rateBurst),
		send:    make(chan any, sendBuffer),
		done:    make(chan struct{}),
	}

	sess.unsub = s.router.Subscribe(func(rt route.Route) {
		sess.enqueue(snapshotRoute(rt))
	})
	// Initial snapshot so the client renders before any navigation.
	sess.enqueue(snapshotRoute(s.router.Route()))
	return sess
}

// enqueue queues an outbound message, dropping it when the client's
// buffer is full. Each snapshot is complete, so a dropped one is
// superseded by the next.
func (s *session) enqueue(msg any) {
	select {
	case s.send <- msg:
	case <-s.done:
	default:
		s.server.logger.Warn("send buffer full, dropping message", "session", s.id)
	}
}

// readLoop consumes commands until the connection closes. It runs on
// the upgrade goroutine; returning tears the session down.
func (s *session) readLoop() {
	defer s.close()

	for {
		var cmd Command
		if err := s.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.server.logger.Error("read error", "session", s.id, "error", err)
			}
			return
		}

		switch cmd.Type {
		case CommandNavigate:
			if cmd.Path == "" {
				s.enqueue(ErrorMessage{Type: MessageError, Reason: "path is required"})
				continue
			}
			if !s.limiter.Allow() {
				s.enqueue(ErrorMessage{Type: MessageError, Reason: "rate limited"})
				continue
			}
			var opts []router.NavigateOption
			if cmd.Replace {
				opts = append(opts, router.WithReplace())
			}
			if err := s.server.router.Navigate(cmd.Path, opts...); err != nil {
				s.enqueue(ErrorMessage{Type: MessageError, Reason: err.Error()})
			}

		case CommandBack:
			s.server.router.Back()

		case CommandForward:
			s.server.router.Forward()

		default:
			s.enqueue(ErrorMessage{Type: MessageError, Reason: "unknown command type"})
		}
	}
}

// writeLoop drains the send queue onto the connection.
func (s *session) writeLoop() {
	for {
		select {
		case msg := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteJSON(msg); err != nil {
				s.server.logger.Error("write error", "session", s.id, "error", err)
				s.close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// close unsubscribes from the router and closes the connection. The
// unsubscribe is required, not cleanup: the router would keep pushing
// snapshots at a dead session forever.
func (s *session) close() {
	s.once.Do(func() {
		s.unsub()
		close(s.done)
		s.conn.Close()
	})
}
