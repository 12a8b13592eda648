package websocket

import (
	"bytes"
	"context"
	"io"
	"time"

	"voice-journal-be/internal/pkg/logger"
	"voice-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type LiveChatHandler struct {
	hub            *Hub
	questions      service.IQuestionService
	logger         logger.ILogger
	maxMessageSize int64
	timeout        time.Duration
}

func NewLiveChatHandler(hub *Hub, questions service.IQuestionService, log logger.ILogger, maxMessageSize int64, timeout time.Duration) *LiveChatHandler {
	return &LiveChatHandler{
		hub:            hub,
		questions:      questions,
		logger:         log,
		maxMessageSize: maxMessageSize,
		timeout:        timeout,
	}
}

// RegisterRoutes mounts the live-chat socket on r, which is expected to be
// the /ws group.
func (h *LiveChatHandler) RegisterRoutes(r fiber.Router) {
	r.Use(func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	r.Get("/live-chat", websocket.New(h.serve))
}

func (h *LiveChatHandler) serve(conn *websocket.Conn) {
	client := &Client{
		Hub:            h.hub,
		Conn:           conn,
		SessionID:      uuid.New(),
		ConversationID: conn.Query("conversation_id"),
		Send:           make(chan outbound, 8),
		closed:         make(chan struct{}),
		questions:      h.questions,
		logger:         h.logger,
		timeout:        h.timeout,
	}
	if client.ConversationID == "" {
		client.ConversationID = client.SessionID.String()
	}
	h.hub.Register(client)

	go client.writePump()
	// The fiber handler must block for the connection's lifetime.
	client.readPump(context.Background(), h.maxMessageSize)
}

func bytesReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}
