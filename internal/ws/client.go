package ws

import (
	"github.com/gorilla/websocket"
)

// Client represents a single WebSocket connection. ID is the transient
// connection handle; ClientID is the opaque device identity supplied by
// the browser, stable across reconnects.
type Client struct {
	ID       string
	ClientID string
	conn     *websocket.Conn
	send     chan []byte
	hub      *Hub
}

// readPump listens for messages from the browser and hands each raw frame
// to the hub's message handler. Separating read/write avoids head-of-line
// blocking when a browser is slow.
func (c *Client) readPump() {
	defer func() {
		c.hub.drop(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		c.hub.handler.HandleMessage(c.ID, c.ClientID, message)
	}
}

// writePump drains the client's send channel back to the browser
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
