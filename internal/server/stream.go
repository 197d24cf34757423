package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lox/handrank/internal/dealer"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second

	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// StreamMessage is one frame on the deal stream.
type StreamMessage struct {
	Type  string       `json:"type"`
	Deal  *dealer.Deal `json:"deal,omitempty"`
	Error string       `json:"error,omitempty"`
}

// handleStream upgrades to a websocket and sends a deal immediately, then one
// every stream interval until the client goes away or the server shuts down.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	players, err := playersParam(r, s.opts.Players)
	if err == nil && (players < 1 || players > dealer.MaxPlayers) {
		err = dealer.ErrPlayerCount
	}
	if err != nil {
		_ = JSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	s.mu.Lock()
	if s.ctx.Err() != nil {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.streams[conn] = struct{}{}
	s.wg.Add(1)
	total := len(s.streams)
	s.mu.Unlock()

	s.logger.Info("Stream connected", "remote", r.RemoteAddr, "players", players, "total", total)

	go func() {
		defer s.wg.Done()
		defer s.removeStream(conn)
		s.stream(conn, players)
	}()
}

func (s *Server) stream(conn *websocket.Conn, players int) {
	// The read loop only services control frames and notices the client leaving.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := s.clock.NewTicker(s.opts.StreamInterval, "stream")
	defer ticker.Stop()
	ping := s.clock.NewTicker(pingPeriod, "ping")
	defer ping.Stop()

	if !s.sendDeal(conn, players) {
		return
	}

	for {
		select {
		case <-ticker.C:
			if !s.sendDeal(conn, players) {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				s.logger.Debug("Stream ping failed", "error", err)
				return
			}
		case <-closed:
			return
		case <-s.ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		}
	}
}

// sendDeal writes one deal, or the error that prevented it. It reports whether
// the stream should continue.
func (s *Server) sendDeal(conn *websocket.Conn, players int) bool {
	deal, dealErr := s.deal(s.ctx, players)

	msg := StreamMessage{Type: "deal", Deal: deal}
	if dealErr != nil {
		s.logger.Error("Failed to deal", "error", dealErr)
		msg = StreamMessage{Type: "error", Error: dealErr.Error()}
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Debug("Stream write failed", "error", err)
		return false
	}
	return dealErr == nil
}

func (s *Server) removeStream(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.streams, conn)
	total := len(s.streams)
	s.mu.Unlock()

	_ = conn.Close()
	s.logger.Info("Stream disconnected", "total", total)
}
