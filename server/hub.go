package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	subscriberBuffer = 10
	writeWait        = time.Second
)

// Hub fans world states out to websocket subscribers. Broadcast never blocks:
// a subscriber that cannot keep up is dropped.
type Hub struct {
	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
}

type subscriber struct {
	conn     *websocket.Conn
	messages chan WorldMessage
	gone     bool // guarded by Hub.mu, set once the subscriber is removed
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[*subscriber]struct{})}
}

// add registers sub with first as its initial message. It reports false when
// sub was already removed, e.g. its handler gave up before registration ran.
func (h *Hub) add(sub *subscriber, first WorldMessage) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sub.gone {
		return false
	}
	h.subscribers[sub] = struct{}{}
	sub.messages <- first
	return true
}

// remove unregisters sub and closes its queue, which ends its write loop.
// A later add of the same subscriber is refused.
func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sub.gone = true
	if _, ok := h.subscribers[sub]; ok {
		delete(h.subscribers, sub)
		close(sub.messages)
	}
}

// Len returns the number of connected subscribers
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Broadcast queues msg for every subscriber
func (h *Hub) Broadcast(msg WorldMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		select {
		case sub.messages <- msg:
		default:
			log.Warn("Hub.Broadcast dropping subscriber, queue full")
			sub.gone = true
			delete(h.subscribers, sub)
			close(sub.messages)
		}
	}
}

// Close drops every subscriber
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		sub.gone = true
		delete(h.subscribers, sub)
		close(sub.messages)
	}
}

func (s *WorldServer) handlePlay() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("handlePlay connection received")
		con, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already replied to the client
			log.Warnf("handlePlay websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		sub := &subscriber{
			conn:     con,
			messages: make(chan WorldMessage, subscriberBuffer),
		}
		con.SetPingHandler(func(message string) error {
			err := con.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(writeWait))
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})

		// register on the world loop so the first message is the state the
		// subscriber's later updates build on
		_, err = s.submit(r.Context(), func() error {
			if !s.hub.add(sub, s.message()) {
				log.Info("handlePlay subscriber left before registration")
			}
			return nil
		}, false)
		if err != nil {
			log.Warnf("handlePlay cant register subscriber: %v", err)
			s.hub.remove(sub)
			return
		}

		go sub.loopWrite()
		sub.loopRead()
		s.hub.remove(sub)
		log.Info("handlePlay connection closed")
	}
}

// loopRead consumes client frames so control messages are processed; it
// returns once the connection fails or closes.
func (sub *subscriber) loopRead() {
	for {
		if _, _, err := sub.conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warnf("subscriber.loopRead err reading from conn %v", err)
			}
			return
		}
	}
}

// loopWrite only consumes, so a slow socket never backs up Broadcast
func (sub *subscriber) loopWrite() {
	for msg := range sub.messages {
		_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.conn.WriteJSON(msg); err != nil {
			log.Warnf("subscriber.loopWrite cant write %v", err)
			sub.conn.Close()
			return
		}
	}
	_ = sub.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	sub.conn.Close()
}
