package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"messageboard/backend/internal/database"
	"messageboard/backend/internal/hub"
	"messageboard/backend/internal/models"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SampleSize is how many random messages the view page and the API return.
const SampleSize = 5

// MessageStore is the persistence the handlers need. *database.MessageStore satisfies it.
type MessageStore interface {
	Append(ctx context.Context, username, message string) (models.Message, error)
	Sample(ctx context.Context, n int) ([]models.Message, error)
	Count(ctx context.Context) (int64, error)
}

// MessageHandler serves the board pages and the JSON API on top of a MessageStore.
type MessageHandler struct {
	store MessageStore
	feed  *hub.Hub
	log   *zap.Logger
}

// NewMessageHandler wires the handler dependencies. feed may be nil to disable the live stream.
func NewMessageHandler(store MessageStore, feed *hub.Hub, log *zap.Logger) *MessageHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &MessageHandler{store: store, feed: feed, log: log}
}

// Register mounts the pages on r and the JSON API under /api/v1.
func (h *MessageHandler) Register(r gin.IRouter) {
	r.GET("/", h.ShowSubmitForm)
	r.POST("/", h.SubmitMessage)
	r.GET("/view/", h.ViewMessages)
	r.GET("/healthz", h.Health)

	messages := r.Group("/api/v1/messages")
	{
		messages.POST("", h.CreateMessage)
		messages.GET("/random", h.GetRandomMessages)
		messages.GET("/stream", h.StreamMessages)
	}
}

// region --- DTOs ---

// MessageInput defines the structure for posting a message through the API.
type MessageInput struct {
	User    string `json:"user" binding:"required" example:"alice"`
	Message string `json:"message" binding:"required" example:"hi"`
}

// MessageResponse is the public shape of a stored message.
type MessageResponse struct {
	ID        uint      `json:"id" example:"1"`
	User      string    `json:"user" example:"alice"`
	Message   string    `json:"message" example:"hi"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

func newMessageResponse(msg models.Message) MessageResponse {
	return MessageResponse{
		ID:        msg.ID,
		User:      msg.Username,
		Message:   msg.Body,
		CreatedAt: msg.CreatedAt,
	}
}

// endregion

// region --- API Handlers ---

// CreateMessage godoc
// @Summary      Post a message
// @Description  Stores a message under the given handle.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        input body MessageInput true "Message"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse "Store unavailable"
// @Router       /messages [post]
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var input MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	msg, err := h.store.Append(c.Request.Context(), input.User, input.Message)
	if err != nil {
		status, text := h.describe(c, err)
		c.JSON(status, ErrorResponse{Error: text})
		return
	}

	h.publish(msg)
	c.JSON(http.StatusCreated, newMessageResponse(msg))
}

// GetRandomMessages godoc
// @Summary      Random sample of messages
// @Description  Returns up to five messages chosen at random.
// @Tags         messages
// @Produce      json
// @Success      200  {array}   MessageResponse
// @Failure      404  {object}  ErrorResponse "No messages yet"
// @Failure      503  {object}  ErrorResponse "Store unavailable"
// @Router       /messages/random [get]
func (h *MessageHandler) GetRandomMessages(c *gin.Context) {
	msgs, err := h.store.Sample(c.Request.Context(), SampleSize)
	if err != nil {
		status, text := h.describe(c, err)
		c.JSON(status, ErrorResponse{Error: text})
		return
	}

	response := make([]MessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		response = append(response, newMessageResponse(msg))
	}
	c.JSON(http.StatusOK, response)
}

// StreamMessages godoc
// @Summary      Live message feed
// @Description  Server-Sent Events stream carrying every newly posted message.
// @Tags         messages
// @Produce      text/event-stream
// @Success      200  {string}  string "event stream"
// @Failure      503  {object}  ErrorResponse "Live feed disabled"
// @Router       /messages/stream [get]
func (h *MessageHandler) StreamMessages(c *gin.Context) {
	if h.feed == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Live feed is disabled"})
		return
	}

	client := h.feed.Subscribe()
	defer h.feed.Unsubscribe(client)

	c.Header("Content-Type", sse.ContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-client:
			if !ok {
				return
			}
			c.SSEvent("message", string(data))
			c.Writer.Flush()
		}
	}
}

// Health reports whether the store answers, with the number of stored messages.
func (h *MessageHandler) Health(c *gin.Context) {
	total, err := h.store.Count(c.Request.Context())
	if err != nil {
		h.log.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: errUnavailableText})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "messages": total})
}

// endregion

// region --- Helpers ---

const (
	errMissingFieldText = "Please provide both a handle and a message."
	errNoMessagesText   = "No messages have been posted yet."
	errUnavailableText  = "The message board is unavailable right now."
)

// describe maps a store error to a status code and a message safe to show visitors.
func (h *MessageHandler) describe(c *gin.Context, err error) (int, string) {
	switch {
	case errors.Is(err, database.ErrMissingField):
		return http.StatusBadRequest, errMissingFieldText
	case errors.Is(err, database.ErrNoMessages):
		return http.StatusNotFound, errNoMessagesText
	default:
		_ = c.Error(err)
		h.log.Error("message store failure", zap.String("path", c.Request.URL.Path), zap.Error(err))
		return http.StatusServiceUnavailable, errUnavailableText
	}
}

func (h *MessageHandler) publish(msg models.Message) {
	if h.feed == nil {
		return
	}
	event := hub.Event{Type: hub.EventMessageCreated, Payload: newMessageResponse(msg)}
	if _, err := h.feed.Broadcast(event); err != nil {
		h.log.Warn("failed to broadcast message", zap.Uint("id", msg.ID), zap.Error(err))
	}
}

// endregion
