package feed

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"barorder/internal/commons"
	"barorder/internal/dto"
	apperrors "barorder/internal/errors"
)

const (
	MessageOrders = "orders"
	MessageError  = "error"

	// NewOrderText is what dashboards show alongside the chime.
	NewOrderText = "New order received!"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades a staff dashboard to a websocket and streams the active
// orders to it. Each connection has its own Detector, so every dashboard
// gets its own one-shot new order signal.
type Handler struct {
	watcher *Watcher
	logger  *zap.Logger
}

func NewHandler(watcher *Watcher, logger *zap.Logger) *Handler {
	return &Handler{watcher: watcher, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sub := h.watcher.Subscribe()
	defer h.watcher.Unsubscribe(sub)

	logger.Info("dashboard connected", zap.Int("subscribers", h.watcher.Subscribers()))
	defer logger.Info("dashboard disconnected")

	go readPump(conn, cancel)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	var detector Detector
	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case snap := <-sub.C:
			if err := writeMessage(conn, toMessage(&detector, snap)); err != nil {
				logger.Debug("websocket write failed", zap.Error(err))
				return
			}
		}
	}
}

// readPump discards client messages and cancels once the client goes away.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func toMessage(detector *Detector, snap Snapshot) dto.FeedMessage {
	if snap.Err != nil {
		msg := "Failed to load orders"
		if rc, ok := apperrors.IsRemoteCallError(snap.Err); ok {
			msg = rc.Message
		}
		return dto.FeedMessage{Type: MessageError, Message: msg}
	}

	newIDs, notify := detector.Observe(snap.Orders)
	msg := dto.FeedMessage{
		Type:        MessageOrders,
		Orders:      dto.NewOrderListResponse(snap.Orders).Orders,
		NewOrderIDs: newIDs,
		Notify:      notify,
	}
	if notify {
		msg.Message = NewOrderText
	}
	return msg
}

func writeMessage(conn *websocket.Conn, msg dto.FeedMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}
