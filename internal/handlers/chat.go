package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/expense-tracker/backend/internal/chat"
	"example.com/expense-tracker/backend/internal/models"
)

type ChatHandler struct {
	Session *chat.Session
}

// NewChatHandler creates the conversation intents handler.
func NewChatHandler(session *chat.Session) *ChatHandler {
	return &ChatHandler{Session: session}
}

type StartChatRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

type SubmitMessageRequest struct {
	Text string `json:"text" validate:"max=500"`
}

type ChatStateResponse struct {
	Screen  chat.Screen `json:"screen"`
	Pending bool        `json:"pending"`
}

type TranscriptResponse struct {
	Screen   chat.Screen      `json:"screen"`
	Pending  bool             `json:"pending"`
	Messages []models.Message `json:"messages"`
}

type SubmitMessageResponse struct {
	Message models.Message `json:"message"`
}

// Start enters the chat screen; the onboarding greeting follows after its
// fixed delay.
func (h *ChatHandler) Start(c echo.Context) error {
	h.Session.StartChat()
	return c.JSON(http.StatusOK, h.state())
}

// StartWithText enters the chat screen and schedules the example text for
// submission as if the user had typed it.
func (h *ChatHandler) StartWithText(c echo.Context) error {
	var req StartChatRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "text is required")
	}

	h.Session.StartChatWithText(req.Text)
	return c.JSON(http.StatusAccepted, h.state())
}

// Submit runs one intake. The user message is returned immediately; the bot
// reply lands in the transcript once the pipeline reaches a terminal outcome.
func (h *ChatHandler) Submit(c echo.Context) error {
	var req SubmitMessageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	message, err := h.Session.Submit(req.Text)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			return badRequest(c, "text is required")
		}
		if errors.Is(err, chat.ErrBusy) {
			return conflict(c, "a message is already being processed")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusAccepted, SubmitMessageResponse{Message: message})
}

// Transcript returns the screen state, the pending flag and the ordered
// message transcript.
func (h *ChatHandler) Transcript(c echo.Context) error {
	return c.JSON(http.StatusOK, TranscriptResponse{
		Screen:   h.Session.Screen(),
		Pending:  h.Session.Pending(),
		Messages: h.Session.Transcript(),
	})
}

func (h *ChatHandler) state() ChatStateResponse {
	return ChatStateResponse{
		Screen:  h.Session.Screen(),
		Pending: h.Session.Pending(),
	}
}
