package server

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"

	"scenecast/server/internal/scenetree"
)

const writeWait = 10 * time.Second

// defaultQueueSize bounds each connection's outbound queue. A viewer that
// falls this far behind is disconnected rather than allowed to block the
// producer.
const defaultQueueSize = 128

type connState int32

const (
	stateConnecting connState = iota
	stateOpen
	stateClosed
)

// subscriber is one live viewer connection. The hub enqueues encoded
// commands; a dedicated writer goroutine owns all socket writes, flushing
// the join-time replay before anything queued afterwards. Writes are
// refused unless the state is Open, so a close cuts the writer off even
// mid-replay.
type subscriber struct {
	id     string
	conn   *websocket.Conn
	replay [][]byte
	send   chan []byte
	state  atomic.Int32
	once   sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() {
		s.state.Store(int32(stateClosed))
		close(s.send)
		s.conn.Close()
	})
}

func (s *subscriber) write(data []byte) bool {
	if connState(s.state.Load()) != stateOpen {
		return false
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.BinaryMessage, data) == nil
}

func (s *subscriber) writeLoop(h *Hub) {
	for _, data := range s.replay {
		if !s.write(data) {
			h.Disconnect(s.id)
			return
		}
	}
	for data := range s.send {
		if !s.write(data) {
			h.Disconnect(s.id)
			return
		}
	}
}

// Hub owns one instance's scene tree and its live viewer connections. A
// single mutex guards both, so every mutation is fully applied to the tree
// and fully enqueued to every open connection before the call returns, and a
// joining connection's replay snapshot can never miss or duplicate a
// command.
type Hub struct {
	mu          sync.Mutex
	tree        *scenetree.Tree
	subscribers map[string]*subscriber
	queueSize   int
	logger      *log.Logger
}

func newHub(queueSize int, logger *log.Logger) *Hub {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		tree:        scenetree.New(),
		subscribers: make(map[string]*subscriber),
		queueSize:   queueSize,
		logger:      logger,
	}
}

// Subscribe registers a freshly upgraded connection. The full-state replay
// is snapshotted and the connection enters the broadcast set atomically, so
// the stream a viewer sees is indistinguishable from having watched every
// mutation live.
func (h *Hub) Subscribe(conn *websocket.Conn) string {
	sub := &subscriber{
		id:   ulid.Make().String(),
		conn: conn,
		send: make(chan []byte, h.queueSize),
	}
	sub.state.Store(int32(stateConnecting))

	h.mu.Lock()
	h.tree.Walk(func(data []byte) {
		sub.replay = append(sub.replay, data)
	})
	h.subscribers[sub.id] = sub
	sub.state.Store(int32(stateOpen))
	h.mu.Unlock()

	go sub.writeLoop(h)
	return sub.id
}

// Disconnect removes a connection from the broadcast set and closes it.
// Disconnecting an unknown or already-closed connection is a no-op.
func (h *Hub) Disconnect(id string) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()

	if ok {
		sub.close()
	}
}

// ConnectionCount reports the number of open connections.
func (h *Hub) ConnectionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// CloseAll tears down every live connection.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.subscribers = make(map[string]*subscriber)
	h.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
}

// broadcastLocked enqueues encoded bytes to every open connection without
// ever blocking. A connection whose queue is full is sacrificed.
func (h *Hub) broadcastLocked(data []byte) {
	var stalled []*subscriber
	for id, sub := range h.subscribers {
		select {
		case sub.send <- data:
		default:
			h.logger.Printf("dropping viewer %s: outbound queue full", id)
			delete(h.subscribers, id)
			stalled = append(stalled, sub)
		}
	}
	for _, sub := range stalled {
		sub.close()
	}
}

// SetObject persists the encoded command as the node's object command and
// broadcasts it.
func (h *Hub) SetObject(path string, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tree.FindOrCreate(path).SetObject(data)
	h.broadcastLocked(data)
}

// SetTransform persists the encoded command as the node's transform command
// and broadcasts it.
func (h *Hub) SetTransform(path string, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tree.FindOrCreate(path).SetTransform(data)
	h.broadcastLocked(data)
}

// SetProperty persists the encoded command under the property name and
// broadcasts it.
func (h *Hub) SetProperty(path, property string, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tree.FindOrCreate(path).SetProperty(property, data)
	h.broadcastLocked(data)
}

// Delete discards the subtree at the path and broadcasts the encoded delete
// command so live viewers drop the corresponding content.
func (h *Hub) Delete(path string, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tree.Delete(path)
	h.broadcastLocked(data)
}

// HasPath reports whether a node exists at the path.
func (h *Hub) HasPath(path string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tree.Has(path)
}

// PackedObject returns the node's persisted object command, or nil.
func (h *Hub) PackedObject(path string) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	node, ok := h.tree.Find(path)
	if !ok {
		return nil
	}
	return node.Object()
}

// PackedTransform returns the node's persisted transform command, or nil.
func (h *Hub) PackedTransform(path string) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	node, ok := h.tree.Find(path)
	if !ok {
		return nil
	}
	return node.Transform()
}

// PackedProperty returns the node's persisted command for the named
// property, or nil.
func (h *Hub) PackedProperty(path, property string) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	node, ok := h.tree.Find(path)
	if !ok {
		return nil
	}
	return node.Property(property)
}
