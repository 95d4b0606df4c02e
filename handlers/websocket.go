package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"keepsake/logger"
	"keepsake/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// StatusEvent is the admin status line, as pushed to every open admin socket
type StatusEvent struct {
	Status string `json:"status"`
	Error  bool   `json:"error"`
	User   string `json:"user"`
	Time   int64  `json:"time"`
}

// SendSocketFunc returns true if data was successfully sent
type SendSocketFunc func([]byte) bool
type ConnectedClient struct {
	fun SendSocketFunc
}

// ConnectedClients is needed as a user may be connected more than once
type ConnectedClients []*ConnectedClient

// StatusFeed keeps the latest status line and fans it out to connected admins
type StatusFeed struct {
	clients cmap.ConcurrentMap[string, ConnectedClients]
	now     func() time.Time

	mu   sync.RWMutex
	last StatusEvent
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func NewStatusFeed() *StatusFeed {
	return &StatusFeed{
		clients: cmap.New[ConnectedClients](),
		now:     time.Now,
	}
}

func socketID(userID uint64) string {
	return "admin:" + strconv.FormatUint(userID, 10)
}

func (f *StatusFeed) addClient(id string, c *ConnectedClient) {
	f.clients.Upsert(id, ConnectedClients{c}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if exist {
			return append(valueInMap, c)
		}
		return newValue
	})
}

func (f *StatusFeed) removeClient(id string, c *ConnectedClient) {
	f.clients.Upsert(id, ConnectedClients{}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if !exist {
			return newValue
		}
		for _, oc := range valueInMap {
			if oc == c {
				continue
			}
			newValue = append(newValue, oc)
		}
		return newValue
	})
	f.clients.RemoveCb(id, func(key string, v ConnectedClients, exists bool) bool {
		return exists && len(v) == 0
	})
}

// Last is the most recent status line, the zero event before anything happened
func (f *StatusFeed) Last() StatusEvent {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.last
}

// Publish replaces the status line and pushes it to every connected admin
func (f *StatusFeed) Publish(user *models.User, status string, isError bool) {
	event := StatusEvent{Status: status, Error: isError, Time: f.now().Unix()}
	if user != nil {
		event.User = user.Name
	}
	f.mu.Lock()
	f.last = event
	f.mu.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	for item := range f.clients.IterBuffered() {
		for _, client := range item.Val {
			client.fun(data)
		}
	}
}

// Connections counts open sockets over all users
func (f *StatusFeed) Connections() (count int) {
	for item := range f.clients.IterBuffered() {
		count += len(item.Val)
	}
	return
}

// WebSocket streams status events. The latest one is sent right after connecting
func (f *StatusFeed) WebSocket(c *gin.Context, user *models.User) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", logger.ErrorField(err))
		return
	}
	defer conn.Close()

	// Setup client, gorilla connections allow one writer at a time
	var writeMutex sync.Mutex
	isConnected := true
	write := func(mt int, data []byte) bool {
		writeMutex.Lock()
		defer writeMutex.Unlock()
		if !isConnected {
			return false
		}
		if err := conn.WriteMessage(mt, data); err != nil {
			logger.Debug("websocket write failed", logger.Uint64("user", user.ID), logger.ErrorField(err))
			isConnected = false
			return false
		}
		return true
	}
	id := socketID(user.ID)
	client := ConnectedClient{fun: func(data []byte) bool {
		return write(websocket.TextMessage, data)
	}}
	f.addClient(id, &client)
	defer f.removeClient(id, &client)

	if last, err := json.Marshal(f.Last()); err == nil {
		client.fun(last)
	}
	// Main read cycle
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			writeMutex.Lock()
			isConnected = false
			writeMutex.Unlock()
			break
		}
		if string(message) == "ping" {
			write(mt, []byte("pong"))
		}
	}
}
