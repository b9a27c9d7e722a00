package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"goquote/internal/common"
	"goquote/internal/quote"
)

const writeWait = 10 * time.Second

// quoteStream pushes the composer preview of one channel to a websocket
// client. It sends null when the channel has no pending quote.
type quoteStream struct {
	conn      *websocket.Conn
	channelID string
	userID    string
	quotes    *quote.Service
	log       *zap.Logger
	mu        sync.Mutex
}

func (s *quoteStream) push(ref *common.QuotedReference) {
	var view *quote.View
	if ref != nil {
		view = s.quotes.PreviewOf(s.channelID, ref, s.userID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(view); err != nil {
		s.log.Debug("quote_stream_write_failed", zap.String("channel_id", s.channelID), zap.Error(err))
	}
}

func (h *HTTPHandler) watchQuote(w http.ResponseWriter, r *http.Request) {
	channelID, ok := h.channelID(w, r)
	if !ok {
		return
	}
	userID, _ := common.UserIDFromContext(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket_upgrade_failed", zap.Error(err))
		return
	}
	defer conn.Close()

	stream := &quoteStream{
		conn:      conn,
		channelID: channelID,
		userID:    userID,
		quotes:    h.quotes,
		log:       h.log,
	}
	surface := h.quotes.Bridge().Observe(channelID, stream.push)
	defer surface.Close()

	h.log.Info("quote_watch_opened", zap.String("channel_id", channelID), zap.String("user_id", userID))
	for {
		// clients only send close frames; reading drives ping/close handling
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.log.Info("quote_watch_closed", zap.String("channel_id", channelID))
}
