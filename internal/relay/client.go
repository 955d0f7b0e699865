package relay

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"alerta360-backend/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
	sendBufferSize = 256
)

// Client adapts a gorilla websocket connection to the relay: it decodes
// inbound envelopes on the read pump and implements Conn for outbound
// delivery through the write pump.
type Client struct {
	conn      *websocket.Conn
	relay     *Relay
	session   *Session
	send      chan []byte
	log       *logger.Logger
	closeOnce sync.Once
}

func NewClient(conn *websocket.Conn, relay *Relay, log *logger.Logger) *Client {
	c := &Client{
		conn:  conn,
		relay: relay,
		send:  make(chan []byte, sendBufferSize),
		log:   log,
	}
	c.session = NewSession(c)
	return c
}

// Send marshals an envelope onto the write pump. Never blocks: when the
// buffer is full the frame is dropped, no acknowledgement, no retry.
func (c *Client) Send(event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.log.Errorf("ws: failed to marshal %s payload: %v", event, err)
		return
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		c.log.Errorf("ws: failed to marshal %s envelope: %v", event, err)
		return
	}

	select {
	case c.send <- frame:
	default:
		c.log.Warnf("ws: send buffer full, dropping %s for session %s", event, c.session.ID)
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// ReadPump decodes inbound frames and hands them to the relay. Events
// from this connection are processed serially, in arrival order. Runs
// on the caller's goroutine and returns on disconnect.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.relay.Disconnect(c.session)
		c.Close()
		c.conn.Close()
		c.log.Infof("ws: session %s disconnected", c.session.ID)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Errorf("ws: unexpected close on session %s: %v", c.session.ID, err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			c.log.Warnf("ws: malformed frame from session %s: %v", c.session.ID, err)
			continue
		}
		c.relay.Dispatch(ctx, c.session, env)
	}
}

// WritePump flushes outbound frames and keeps the connection alive with
// pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
