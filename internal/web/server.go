package web

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	srnet "github.com/peterkuimelis/setrogue/internal/net"
)

// Server is the setrogue HTTP server: a catalog API plus a websocket round
// harness speaking the same JSON messages as the TCP server.
type Server struct {
	lobby *srnet.Lobby
	mux   *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(lobby *srnet.Lobby) *Server {
	s := &Server{
		lobby: lobby,
		mux:   http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/enemies", s.handleEnemies)
	s.mux.HandleFunc("GET /api/weapons", s.handleWeapons)
	s.mux.HandleFunc("GET /api/behaviors", s.handleBehaviors)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// ServeHTTP makes the server usable as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleWebSocket runs one round per socket. The first message must be
// "start"; every later message gets exactly one reply.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		slog.Warn("websocket accept", "error", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	var start srnet.ClientMessage
	if err := wsjson.Read(ctx, wsConn, &start); err != nil {
		slog.Warn("websocket read start", "error", err)
		return
	}
	sess, err := s.lobby.StartRound(start)
	if err != nil {
		wsjson.Write(ctx, wsConn, srnet.ServerMessage{Type: srnet.MsgError, Error: err.Error()})
		wsConn.Close(websocket.StatusPolicyViolation, "could not start round")
		return
	}
	slog.Info("websocket round started", "round", sess.ID(), "remote", r.RemoteAddr)

	reply := sess.Snapshot()
	for {
		if err := wsjson.Write(ctx, wsConn, reply); err != nil {
			slog.Warn("websocket write", "round", sess.ID(), "error", err)
			return
		}
		if reply.Type == srnet.MsgGameOver {
			slog.Info("websocket round over", "round", sess.ID(), "won", reply.Won, "reason", reply.Result)
			wsConn.Close(websocket.StatusNormalClosure, "round ended")
			return
		}
		var msg srnet.ClientMessage
		if err := wsjson.Read(ctx, wsConn, &msg); err != nil {
			if websocket.CloseStatus(err) == -1 {
				slog.Warn("websocket read", "round", sess.ID(), "error", err)
			}
			return
		}
		reply = sess.Handle(msg)
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
