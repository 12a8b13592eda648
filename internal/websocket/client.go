package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"voice-journal-be/internal/pkg/logger"
	"voice-journal-be/internal/service"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// outbound is a queued frame for writePump.
type outbound struct {
	messageType int
	data        []byte
}

// Client is one live-chat connection. Each binary frame is a complete
// recorded question; the reply is a binary WAV frame, or a JSON text frame
// when nothing could be spoken.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn

	SessionID      uuid.UUID
	ConversationID string

	Send   chan outbound
	closed chan struct{}

	questions service.IQuestionService
	logger    logger.ILogger
	timeout   time.Duration
}

type errorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// readPump reads audio frames and answers them one at a time.
func (c *Client) readPump(ctx context.Context, maxMessageSize int64) {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("LiveChat", "Unexpected close", map[string]interface{}{
					"session_id": c.SessionID,
					"error":      err.Error(),
				})
			}
			return
		}
		if messageType != websocket.BinaryMessage {
			c.sendError("expected a binary audio frame")
			continue
		}
		if len(data) == 0 {
			c.sendError("empty audio payload")
			continue
		}

		// A long answer must not trip the idle deadline.
		c.Conn.SetReadDeadline(time.Time{})
		c.answer(ctx, data)
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

func (c *Client) answer(ctx context.Context, audio []byte) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	wav, err := c.questions.LiveChat(ctx, bytesReader(audio), "input.webm", c.ConversationID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			c.sendError("no speech detected")
			return
		}
		c.logger.Error("LiveChat", "Failed to answer", map[string]interface{}{
			"session_id": c.SessionID,
			"error":      err.Error(),
		})
		c.sendError("failed to answer question")
		return
	}
	c.enqueue(outbound{messageType: websocket.BinaryMessage, data: wav})
}

func (c *Client) sendError(message string) {
	data, _ := json.Marshal(errorFrame{Type: "error", Message: message})
	c.enqueue(outbound{messageType: websocket.TextMessage, data: data})
}

func (c *Client) enqueue(msg outbound) {
	select {
	case c.Send <- msg:
	case <-c.closed:
	default:
		c.logger.Warn("LiveChat", "Send buffer full, dropping frame", map[string]interface{}{"session_id": c.SessionID})
	}
}

// writePump writes queued frames and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case <-c.closed:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case msg := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(msg.messageType, msg.data); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
