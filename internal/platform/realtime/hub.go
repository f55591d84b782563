package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"livepoll/contexts/engagement/poll-engine/domain/entities"
	httptransport "livepoll/contexts/engagement/poll-engine/transport/http"

	"github.com/gorilla/websocket"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = 54 * time.Second
	subscriberSlack = 8
)

// Hub fans post-vote snapshots out to websocket subscribers grouped by poll
// id. Publishing never blocks the vote path: a subscriber whose buffer is
// full is dropped with a warning rather than holding the transaction.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan []byte]struct{}
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

func NewHub(allowedOrigins []string, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}
	return &Hub{
		subscribers: make(map[string]map[chan []byte]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
		logger: logger,
	}
}

// PublishPollUpdate implements ports.UpdatePublisher. The frame is the same
// snapshot DTO the vote response carries, marshaled once per publish.
func (h *Hub) PublishPollUpdate(_ context.Context, snapshot entities.PollSnapshot) error {
	frame, err := json.Marshal(httptransport.NewPollSnapshotResponse(snapshot))
	if err != nil {
		return err
	}

	// Sends stay under the read lock: cancel closes a subscriber channel
	// under the write lock, so a close can never interleave with an
	// in-flight send. The sends are non-blocking, so the lock is never
	// held on a full buffer.
	h.mu.RLock()
	subscriberCount := len(h.subscribers[snapshot.Poll.PollID])
	for ch := range h.subscribers[snapshot.Poll.PollID] {
		select {
		case ch <- frame:
		default:
			h.logger.Warn("dropping poll update for slow subscriber",
				"event", "realtime_publish_drop",
				"module", "internal/platform/realtime",
				"layer", "platform",
				"poll_id", snapshot.Poll.PollID,
			)
		}
	}
	h.mu.RUnlock()

	h.logger.Info("poll update published",
		"event", "realtime_publish",
		"module", "internal/platform/realtime",
		"layer", "platform",
		"poll_id", snapshot.Poll.PollID,
		"subscriber_count", subscriberCount,
	)
	return nil
}

// Subscribe registers a new topic channel. The returned cancel func is safe
// to call more than once.
func (h *Hub) Subscribe(pollID string) (<-chan []byte, func()) {
	ch := make(chan []byte, subscriberSlack)

	h.mu.Lock()
	if h.subscribers[pollID] == nil {
		h.subscribers[pollID] = make(map[chan []byte]struct{})
	}
	h.subscribers[pollID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			// Close under the write lock; publishers send under the
			// read lock, so the channel is unreachable before it closes.
			h.mu.Lock()
			delete(h.subscribers[pollID], ch)
			if len(h.subscribers[pollID]) == 0 {
				delete(h.subscribers, pollID)
			}
			close(ch)
			h.mu.Unlock()
		})
	}
	return ch, cancel
}

// ServeWS upgrades the request and streams poll updates until the client
// disconnects. Unsubscription is implicit on disconnect.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, pollID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			"event", "realtime_upgrade_failed",
			"module", "internal/platform/realtime",
			"layer", "platform",
			"poll_id", pollID,
			"error", err.Error(),
		)
		return
	}

	updates, cancel := h.Subscribe(pollID)

	go h.writePump(conn, updates, cancel)
	go h.readPump(conn, cancel)
}

func (h *Hub) writePump(conn *websocket.Conn, updates <-chan []byte, cancel func()) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		_ = conn.Close()
	}()

	for {
		select {
		case frame, ok := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) readPump(conn *websocket.Conn, cancel func()) {
	defer func() {
		cancel()
		_ = conn.Close()
	}()
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
