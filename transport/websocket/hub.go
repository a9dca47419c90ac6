package websocket

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-timed/internal/usecase"
)

const (
	sendBuffer = 16
	writeWait  = 5 * time.Second
)

type uSession interface {
	Snapshot() usecase.Snapshot
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (that *client) close() {
	that.once.Do(func() { close(that.send) })
}

// Hub - pushes every session snapshot to the connected observers.
type Hub struct {
	logger   *slog.Logger
	session  uSession
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*client
}

func NewHub(logger *slog.Logger, session uSession) *Hub {
	return &Hub{
		logger:  logger.With("component", "websocket"),
		session: session,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[string]*client),
	}
}

// Broadcast - queues the snapshot for every client. A client whose buffer is full is dropped.
func (that *Hub) Broadcast(snapshot usecase.Snapshot) {
	data, err := newStateMessage(snapshot)
	if err != nil {
		that.logger.Error("could not encode state", "error", err)
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	for id, c := range that.clients {
		select {
		case c.send <- data:
		default:
			that.logger.Warn("dropping slow client", "client_id", id)
			delete(that.clients, id)
			c.close()
		}
	}
}

// Clients - number of connected observers.
func (that *Hub) Clients() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.clients)
}

// Close - disconnects every client.
func (that *Hub) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for id, c := range that.clients {
		delete(that.clients, id)
		c.close()
	}
}

func (that *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		that.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	log := that.logger.With("client_id", c.id)

	initial, err := newStateMessage(that.session.Snapshot())
	if err != nil {
		log.Error("could not encode state", "error", err)
		conn.Close()
		return
	}

	that.mu.Lock()
	c.send <- initial
	that.clients[c.id] = c
	that.mu.Unlock()

	log.Info("WebSocket connection established")

	go that.writeLoop(c, log)
	that.readLoop(c, log)
}

func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if current, ok := that.clients[c.id]; ok && current == c {
		delete(that.clients, c.id)
		c.close()
	}
}

// readLoop - observers have nothing to say, incoming frames are discarded until the peer goes away.
func (that *Hub) readLoop(c *client, log *slog.Logger) {
	defer that.unregister(c)

	// clear the deadline inherited from the http server's ReadTimeout
	if err := c.conn.SetReadDeadline(time.Time{}); err != nil {
		log.Debug("could not reset read deadline", "error", err)
		return
	}

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}
	}
}

func (that *Hub) writeLoop(c *client, log *slog.Logger) {
	defer c.conn.Close()

	for data := range c.send {
		if err := that.write(c.conn, websocket.TextMessage, data); err != nil {
			log.Debug("write failed", "error", err)
			that.unregister(c)
			return
		}
	}

	_ = that.write(c.conn, websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (that *Hub) write(conn *websocket.Conn, messageType int, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("could not set write deadline: %w", err)
	}

	if err := conn.WriteMessage(messageType, data); err != nil {
		return fmt.Errorf("could not write message: %w", err)
	}

	return nil
}
