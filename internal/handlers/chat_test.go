package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"example.com/expense-tracker/backend/internal/chat"
	"example.com/expense-tracker/backend/internal/parser"
)

type parseFunc func(ctx context.Context, text string) (parser.Result, error)

func (f parseFunc) Parse(ctx context.Context, text string) (parser.Result, error) {
	return f(ctx, text)
}

func newChatHandler(remote chat.Parser) *ChatHandler {
	session := chat.NewSession(chat.Config{
		GreetingDelay: time.Millisecond,
		ExampleDelay:  time.Millisecond,
		HelpDelay:     time.Millisecond,
	}, remote, nil, nil)
	return NewChatHandler(session)
}

// TestTranscriptStartsOnWelcome checks the initial state payload.
func TestTranscriptStartsOnWelcome(t *testing.T) {
	handler := newChatHandler(nil)

	c, recorder := newTestContext(t, http.MethodGet, "/api/v1/chat/transcript", "")
	if err := handler.Transcript(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var state TranscriptResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &state); err != nil {
		t.Fatalf("failed to decode transcript: %v", err)
	}
	if state.Screen != chat.ScreenWelcome || state.Pending || len(state.Messages) != 0 {
		t.Fatalf("unexpected initial state: %+v", state)
	}
}

// TestSubmitAccepted checks the 202 with the appended user message.
func TestSubmitAccepted(t *testing.T) {
	handler := newChatHandler(parseFunc(func(ctx context.Context, text string) (parser.Result, error) {
		return parser.Result{Success: true, Message: "added"}, nil
	}))

	c, recorder := newTestContext(t, http.MethodPost, "/api/v1/chat/messages", `{"text": "coffee food 50"}`)
	if err := handler.Submit(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if recorder.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", recorder.Code)
	}

	var response SubmitMessageResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Message.Text != "coffee food 50" {
		t.Fatalf("unexpected echoed message: %+v", response.Message)
	}
}

// TestSubmitEmptyTextIsBadRequest checks the 400 mapping.
func TestSubmitEmptyTextIsBadRequest(t *testing.T) {
	handler := newChatHandler(nil)

	c, recorder := newTestContext(t, http.MethodPost, "/api/v1/chat/messages", `{"text": "  "}`)
	if err := handler.Submit(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

// TestSubmitWhilePendingIsConflict checks the 409 mapping.
func TestSubmitWhilePendingIsConflict(t *testing.T) {
	release := make(chan struct{})
	handler := newChatHandler(parseFunc(func(ctx context.Context, text string) (parser.Result, error) {
		<-release
		return parser.Result{Success: true}, nil
	}))
	defer close(release)

	c, recorder := newTestContext(t, http.MethodPost, "/api/v1/chat/messages", `{"text": "coffee food 50"}`)
	if err := handler.Submit(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if recorder.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", recorder.Code)
	}

	c, recorder = newTestContext(t, http.MethodPost, "/api/v1/chat/messages", `{"text": "tea food 20"}`)
	if err := handler.Submit(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", recorder.Code)
	}
}

// TestStartEntersChatScreen checks the screen intent.
func TestStartEntersChatScreen(t *testing.T) {
	handler := newChatHandler(nil)

	c, recorder := newTestContext(t, http.MethodPost, "/api/v1/chat/start", "")
	if err := handler.Start(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var state ChatStateResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &state); err != nil {
		t.Fatalf("failed to decode state: %v", err)
	}
	if state.Screen != chat.ScreenChat {
		t.Fatalf("expected chat screen, got %s", state.Screen)
	}
}
