package main

import (
	"encoding/json"
	"log"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Conn manages a single WebSocket player connection
type Conn struct {
	ID     string
	ws     *websocket.Conn
	mu     sync.Mutex // protects ws writes and closed
	closed bool
}

// NewConn creates a new connection wrapper
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{
		ID: uuid.New().String(),
		ws: ws,
	}
}

// Send serializes msg to JSON and writes it as a text frame
func (c *Conn) Send(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.write(websocket.TextMessage, data)
}

// SendFrame encodes msg with codec and writes it with the codec's frame type
func (c *Conn) SendFrame(codec Codec, msg interface{}) error {
	mt, data, err := codec.Encode(msg)
	if err != nil {
		return err
	}
	return c.write(mt, data)
}

func (c *Conn) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	return c.ws.WriteMessage(messageType, data)
}

// Close marks connection closed
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.ws.Close()
}

// ConnManager manages all active connections
type ConnManager struct {
	mu    sync.RWMutex
	conns map[string]*Conn
}

// NewConnManager creates an empty connection manager
func NewConnManager() *ConnManager {
	return &ConnManager{conns: make(map[string]*Conn)}
}

// Add registers a connection
func (m *ConnManager) Add(c *Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[c.ID] = c
}

// Remove unregisters a connection
func (m *ConnManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, id)
}

// Get returns a connection by ID
func (m *ConnManager) Get(id string) (*Conn, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.conns[id]
	return c, ok
}

// Count returns the number of active connections
func (m *ConnManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// Snapshot returns a copy of all current connections
func (m *ConnManager) Snapshot() []*Conn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]*Conn, 0, len(m.conns))
	for _, c := range m.conns {
		list = append(list, c)
	}
	return list
}

// ReadLoop handles incoming messages for a connection until it disconnects.
// Join messages go to onJoin; everything else is input for the session the
// connection owns and only writes into that session's intent buffer.
func (c *Conn) ReadLoop(
	world *World,
	onJoin func(conn *Conn, msg ClientMessage),
	onDisconnect func(conn *Conn),
) {
	defer func() {
		onDisconnect(c)
		c.Close()
	}()

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error for %s: %v", c.ID, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("bad message from %s: %v", c.ID, err)
			continue
		}

		switch msg.Type {
		case MsgJoin:
			onJoin(c, msg)

		case MsgInput, MsgPointer, MsgReset:
			session, ok := world.Session(c.ID)
			if !ok {
				continue
			}
			if err := session.HandleInput(msg); err != nil {
				log.Printf("input from %s: %v", c.ID, err)
			}

		default:
			log.Printf("unknown message type %q from %s", msg.Type, c.ID)
		}
	}
}

// randomColor picks a random color from the palette
func randomColor() string {
	return PlayerColors[rand.Intn(len(PlayerColors))]
}
