package trackhub

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"gocart/backend/internal/config"
	"gocart/backend/internal/models"

	"github.com/gorilla/websocket"
)

// WebSocketClient implements the trackhub.Client interface over a gorilla
// WebSocket connection. One read pump parses join/leave frames and drives the
// session; one write pump drains the Send channel, which gives per-connection
// FIFO delivery of pushes.
type WebSocketClient struct {
	ConnID  string
	UserID  string
	Role    string
	Conn    *websocket.Conn
	Hub     *Hub
	Session *Session
	Send    chan models.ServerFrame

	cfg       config.Realtime
	done      chan struct{}
	closeOnce sync.Once
}

// NewWebSocketClient wraps an upgraded connection. The session is attached by
// the handler after Hub.Connect succeeds.
func NewWebSocketClient(conn *websocket.Conn, userID, role string, hub *Hub, cfg config.Realtime) *WebSocketClient {
	return &WebSocketClient{
		UserID: userID,
		Role:   role,
		Conn:   conn,
		Hub:    hub,
		Send:   make(chan models.ServerFrame, cfg.SendBuffer),
		cfg:    cfg,
		done:   make(chan struct{}),
	}
}

func (c *WebSocketClient) GetConnID() string                         { return c.ConnID }
func (c *WebSocketClient) SetConnID(id string)                       { c.ConnID = id }
func (c *WebSocketClient) GetUserID() string                         { return c.UserID }
func (c *WebSocketClient) GetRole() string                           { return c.Role }
func (c *WebSocketClient) GetSendChannel() chan<- models.ServerFrame { return c.Send }

// Run starts the pumps for the WebSocket.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close stops both pumps and the underlying socket. Safe to call more than
// once; the Send channel is never closed, so late broadcasts to a dying
// connection land in the buffer and are dropped with it.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.Conn.Close()
	})
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c.ConnID
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.cfg.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.cfg.IdleTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.cfg.IdleTimeout))
		c.Hub.Touch(c.ConnID)
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var frame models.ClientFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			log.Printf("Error decoding frame from connection %s: %v", c.ConnID, err)
			continue
		}

		c.Hub.Touch(c.ConnID)
		c.dispatch(frame)
	}
}

// dispatch applies one inbound frame to the session state machine.
func (c *WebSocketClient) dispatch(frame models.ClientFrame) {
	switch frame.Action {
	case "join":
		err := c.Session.Join(frame.OrderID)
		switch {
		case err == nil:
			c.enqueue(models.ServerFrame{Action: "joined", OrderID: frame.OrderID})
		case errors.Is(err, ErrUnauthorized):
			c.enqueue(models.ServerFrame{Action: "error", Code: "unauthorized", OrderID: frame.OrderID})
		case errors.Is(err, ErrResourceExhausted):
			c.enqueue(models.ServerFrame{Action: "error", Code: "limit_exceeded", OrderID: frame.OrderID})
		}

	case "leave":
		c.Session.Leave(frame.OrderID)
		c.enqueue(models.ServerFrame{Action: "left", OrderID: frame.OrderID})

	case "ping":
		// App-level heartbeat for clients whose transport swallows pongs.

	default:
		log.Printf("Unknown action %q from connection %s", frame.Action, c.ConnID)
	}
}

// enqueue pushes a control frame without blocking the read pump.
func (c *WebSocketClient) enqueue(frame models.ServerFrame) {
	select {
	case c.Send <- frame:
	default:
	}
}

// writePump drains the Send channel into the socket and keeps the connection
// alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(c.cfg.HeartbeatInterval)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case frame := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.cfg.SendTimeout))

			dataToWrite, err := json.Marshal(frame)
			if err != nil {
				log.Printf("Error encoding frame for connection %s: %v", c.ConnID, err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(dataToWrite)

			// Drain whatever already queued up into the same write.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				nextFrame := <-c.Send
				extraData, _ := json.Marshal(nextFrame)
				w.Write(extraData)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.cfg.SendTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.Conn.SetWriteDeadline(time.Now().Add(c.cfg.SendTimeout))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
