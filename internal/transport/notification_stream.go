package transport

import (
	"net/http"
	"time"

	"delicassy/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is open for the whole API; the feed follows suit
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamNotifications upgrades to a WebSocket and pushes each new
// notification for the user as a JSON text frame
func (h *ContentHandler) StreamNotifications(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	ctx := r.Context()
	notes, cancel, err := h.contentService.SubscribeNotifications(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to subscribe to notifications", zap.String("user_id", userID), zap.Error(err))
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "notification feed unavailable")
		return
	}
	defer cancel()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		h.logger.Debug("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.logger.Debug("Notification stream opened", zap.String("user_id", userID))

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case note, ok := <-notes:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := conn.WriteJSON(note); err != nil {
				h.logger.Debug("Notification stream write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			h.logger.Debug("Notification stream closed", zap.String("user_id", userID))
			return
		}
	}
}
