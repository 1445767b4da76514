package httpinterface

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/ports"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	// time allowed to write an event to a client before it is dropped
	writeWait = 10 * time.Second
	// per-client buffered events; a client lagging behind this is dropped
	sendBufferSize = 32
)

type eventClient struct {
	conn *websocket.Conn
	send chan ports.Event
}

// EventHub broadcasts settlement events to connected websocket clients. It
// implements ports.Publisher so the escrow service can stay unaware of the
// transport.
type EventHub struct {
	locker  *sync.Mutex
	clients map[*eventClient]struct{}
}

// NewEventHub returns an empty hub.
func NewEventHub() *EventHub {
	return &EventHub{
		locker:  &sync.Mutex{},
		clients: map[*eventClient]struct{}{},
	}
}

// Publish implements ports.Publisher by fanning the event out to every
// connected client through its buffered channel. The call never blocks on
// client I/O: a client whose buffer is full has stopped reading and is
// dropped on the spot.
func (h *EventHub) Publish(event ports.Event) {
	h.locker.Lock()
	defer h.locker.Unlock()

	for client := range h.clients {
		select {
		case client.send <- event:
		default:
			log.Debug("dropping unresponsive event subscriber")
			h.removeClient(client)
		}
	}
}

func (h *EventHub) handleSubscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Debug("failed to upgrade events subscription")
		return
	}

	client := &eventClient{
		conn: conn,
		send: make(chan ports.Event, sendBufferSize),
	}

	h.locker.Lock()
	h.clients[client] = struct{}{}
	h.locker.Unlock()

	go h.writePump(client)
	go h.readPump(client)
}

// writePump delivers the buffered events to the peer, each write bounded by
// writeWait. It exits once the send channel is closed by removeClient.
func (h *EventHub) writePump(client *eventClient) {
	defer client.conn.Close()

	for event := range client.send {
		client.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.conn.WriteJSON(event); err != nil {
			log.WithError(err).Debug("dropping unresponsive event subscriber")
			h.unregister(client)
			return
		}
	}
}

// readPump drains incoming frames until the peer goes away.
func (h *EventHub) readPump(client *eventClient) {
	defer client.conn.Close()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			h.unregister(client)
			return
		}
	}
}

func (h *EventHub) unregister(client *eventClient) {
	h.locker.Lock()
	defer h.locker.Unlock()
	h.removeClient(client)
}

// removeClient must be called with the locker held. Closing the send channel
// terminates the client's writePump.
func (h *EventHub) removeClient(client *eventClient) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
}
