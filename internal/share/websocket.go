package share

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/roseday/internal/logging"
)

const (
	// DefaultWordInterval matches the reveal speed of the terminal card
	DefaultWordInterval = 40 * time.Millisecond

	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second
)

// WordFrame is one revealed word on /ws
type WordFrame struct {
	Index int    `json:"index"`
	Word  string `json:"word"`
}

// DoneFrame ends the stream
type DoneFrame struct {
	Done bool `json:"done"`
}

// handleStream upgrades to websocket and reveals the note word by word
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if s.closing() {
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error
		logging.Warn("WebSocket upgrade failed", zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
		return
	}

	remoteAddr := r.RemoteAddr
	if !s.track(conn, remoteAddr) {
		// shutdown started during the upgrade
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server is shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	logging.LogShareEvent(remoteAddr, "stream_opened")

	defer func() {
		s.untrack(conn)
		_ = conn.Close()
		logging.LogShareEvent(remoteAddr, "stream_closed")
		s.wg.Done()
	}()

	if err := s.stream(conn); err != nil {
		logging.Debug("Stream ended early", zap.String("remote_addr", remoteAddr), zap.Error(err))
	}
}

func (s *Server) stream(conn *websocket.Conn) error {
	ticker := time.NewTicker(s.config.WordInterval)
	defer ticker.Stop()

	for i, word := range s.card.Words() {
		if i > 0 {
			select {
			case <-ticker.C:
			case <-s.done:
				return websocket.ErrCloseSent
			}
		}
		if err := writeJSON(conn, WordFrame{Index: i, Word: word}); err != nil {
			return err
		}
	}

	if err := writeJSON(conn, DoneFrame{Done: true}); err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "note complete"))
}

func writeJSON(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}
