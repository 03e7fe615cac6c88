package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/Suraj0791/stockcharts/internal/engine"
	"github.com/Suraj0791/stockcharts/internal/view"
)

// wsEvent is a gesture or settings message from the dashboard page. Type
// selects which of the remaining fields are meaningful.
type wsEvent struct {
	Type   string      `json:"type"`
	Factor float64     `json:"factor,omitempty"`
	X      float64     `json:"x,omitempty"`
	Y      float64     `json:"y,omitempty"`
	DX     float64     `json:"dx,omitempty"`
	DY     float64     `json:"dy,omitempty"`
	Width  float64     `json:"width,omitempty"`
	Height float64     `json:"height,omitempty"`
	Update view.Update `json:"update,omitempty"`
}

// handleWebSocket attaches a websocket to a session. Incoming messages are
// gestures dispatched into the session loop; every frame the session
// publishes is forwarded back as JSON. The session is released when the
// socket closes, so a page reload starts fresh.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket accept failed")
		return
	}

	session, opened := s.wsSession(r)
	if session == nil {
		conn.Close(websocket.StatusPolicyViolation, "unknown session")
		return
	}
	if opened {
		session.ApplyView(view.UpdateFromQuery(r.URL.Query()))
	}

	log := s.log.With().Str("session", session.ID()).Logger()
	log.Debug().Msg("websocket attached")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Writer: forward published frames until the session or socket dies.
	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-session.Updates():
				if !ok {
					conn.Close(websocket.StatusNormalClosure, "session closed")
					return
				}
				if err := wsjson.Write(ctx, conn, update); err != nil {
					return
				}
			}
		}
	}()

	// Reader: dispatch gestures until the peer disconnects.
	for {
		var ev wsEvent
		if err := wsjson.Read(ctx, conn, &ev); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure &&
				status != websocket.StatusGoingAway &&
				!errors.Is(err, context.Canceled) {
				log.Debug().Err(err).Msg("websocket read ended")
			}
			break
		}
		s.dispatch(session, ev, log)
	}

	s.sessions.Release(session.ID())
	conn.Close(websocket.StatusNormalClosure, "")
	log.Debug().Msg("websocket detached")
}

// wsSession resolves the session the socket should attach to. A session
// query parameter binds to the page's existing session; without one a new
// session is opened for headless clients. The second return reports whether
// a new session was created.
func (s *Server) wsSession(r *http.Request) (*engine.Session, bool) {
	if id := r.URL.Query().Get("session"); id != "" {
		return s.sessions.Get(id), false
	}
	return s.sessions.Open(), true
}

func (s *Server) dispatch(session *engine.Session, ev wsEvent, log zerolog.Logger) {
	switch ev.Type {
	case "wheel":
		session.Wheel(ev.Factor, ev.X, ev.Y)
	case "drag":
		session.Drag(ev.DX, ev.DY)
	case "hover":
		session.Hover(ev.X, ev.Y)
	case "leave":
		session.Leave()
	case "reset":
		session.Reset()
	case "view":
		session.ApplyView(ev.Update)
	case "resize":
		session.Resize(ev.Width, ev.Height)
	case "regenerate":
		session.Regenerate()
	default:
		log.Debug().Str("type", ev.Type).Msg("ignoring unknown websocket event")
	}
}
