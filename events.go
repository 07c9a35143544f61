package main

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"worldmap/server/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// handleEvents streams dirty-region notices over a websocket so connected
// clients can skip the poll interval when imagery changes. Each frame
// carries the same DirtySet shape the /data endpoints use, and the session
// advances its own since mark with every push.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.emit(logging.SeverityWarn, r.URL.Path, "websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	s.emit(logging.SeverityInfo, r.URL.Path, "event subscriber connected from %s", r.RemoteAddr)

	// Drain incoming frames so pings and close handshakes are processed.
	readerClosed := make(chan struct{})
	go func() {
		defer close(readerClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	interval := time.Duration(s.cfg.BrowserPollMillis) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	since := s.clock().UnixMilli()
	for {
		select {
		case <-readerClosed:
			s.emit(logging.SeverityInfo, r.URL.Path, "event subscriber disconnected")
			return
		case <-ticker.C:
			set := s.images.DirtySince(since)
			if len(set.Regions) == 0 {
				since = set.QueryTime
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(set); err != nil {
				if !isPeerDisconnect(err) {
					s.emit(logging.SeverityWarn, r.URL.Path, "event push failed: %v", err)
				}
				return
			}
			since = set.QueryTime
		}
	}
}
