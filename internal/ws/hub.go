package ws

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// client is one subscribed connection, scoped to a single store's order feed.
type client struct {
	conn    *websocket.Conn
	storeID string
}

type storeMessage struct {
	storeID string
	data    []byte
}

// Hub fans order-change messages out to the connections watching each store.
type Hub struct {
	rooms      map[string]map[*websocket.Conn]bool
	register   chan client
	unregister chan *websocket.Conn
	send       chan storeMessage
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*websocket.Conn]bool),
		register:   make(chan client),
		unregister: make(chan *websocket.Conn),
		send:       make(chan storeMessage),
	}
}

// Register subscribes a connection to one store's feed.
func (h *Hub) Register(storeID string, conn *websocket.Conn) {
	h.register <- client{conn: conn, storeID: storeID}
}

// Unregister drops a connection from whichever room holds it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.unregister <- conn
}

// SendToStore delivers a message to every connection watching the store.
func (h *Hub) SendToStore(storeID string, message []byte) {
	h.send <- storeMessage{storeID: storeID, data: message}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mutex.Lock()
			if h.rooms[c.storeID] == nil {
				h.rooms[c.storeID] = make(map[*websocket.Conn]bool)
			}
			h.rooms[c.storeID][c.conn] = true
			h.mutex.Unlock()
			log.Println("New WS client connected for store", c.storeID)

		case conn := <-h.unregister:
			h.mutex.Lock()
			for storeID, room := range h.rooms {
				if _, ok := room[conn]; ok {
					delete(room, conn)
					conn.Close()
					if len(room) == 0 {
						delete(h.rooms, storeID)
					}
				}
			}
			h.mutex.Unlock()

		case msg := <-h.send:
			h.mutex.Lock()
			for conn := range h.rooms[msg.storeID] {
				if err := conn.WriteMessage(websocket.TextMessage, msg.data); err != nil {
					conn.Close()
					delete(h.rooms[msg.storeID], conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
