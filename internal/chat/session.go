package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/expense-tracker/backend/internal/models"
	"example.com/expense-tracker/backend/internal/notifications"
	"example.com/expense-tracker/backend/internal/parser"
)

type Screen string

const (
	ScreenWelcome Screen = "welcome"
	ScreenChat    Screen = "chat"
)

var (
	ErrEmptyMessage = errors.New("empty message")
	ErrBusy         = errors.New("intake already in progress")
)

const welcomeMessage = "👋 Hello! I'm your expense tracker assistant. You can:\n\n" +
	"• Type expenses like: \"coffee food 50 want today\"\n" +
	"• Say \"hello\" or \"help\" for instructions\n" +
	"• Use natural language to describe your expenses\n\n" +
	"What expense would you like to add?"

const helpMessage = "👋 Hello! I can help you track your expenses. Here's how:\n\n" +
	"📝 **Format**: item category amount importance date bank\n\n" +
	"🔍 **Examples**:\n" +
	"• \"coffee food 50 want today\"\n" +
	"• \"uber transport 200 essential yesterday hdfc cc\"\n" +
	"• \"groceries 1200 essential 15 july icici cc\"\n\n" +
	"📂 **Categories**: food, transport, general, entertainment, health, bills, groceries, meds, clothing, gadgets\n\n" +
	"⚡ **Importance**: essential, need, want, extra, investment\n\n" +
	"🏦 **Banks**: HDFC, ICICI CC 3009, INDUSIND CC 6421, HDFC CC 6409, IND\n\n" +
	"Just type your expense naturally!"

const parseFailureFormat = "❌ Sorry, I couldn't process that expense: %s\n\n" +
	"Please try again with a format like: \"coffee food 50 want today\""

var greetingKeywords = []string{"hello", "hi", "hey", "help", "start"}

// Parser is the remote parse contract consumed by the intake pipeline.
type Parser interface {
	Parse(ctx context.Context, text string) (parser.Result, error)
}

// Config holds the pacing delays of the conversation. They are UX devices,
// not timeouts: a scheduled continuation has no failure mode.
type Config struct {
	GreetingDelay time.Duration
	ExampleDelay  time.Duration
	HelpDelay     time.Duration
}

// Session is the conversation state machine: the welcome/chat screen, the
// append-only transcript and the single-outstanding-intake flag. All state is
// guarded by one lock; scheduled continuations carry the generation they were
// issued under and are dropped once a later reset advances it.
type Session struct {
	mu         sync.Mutex
	cfg        Config
	parser     Parser
	notifier   *notifications.Hub
	logger     *slog.Logger
	now        func() time.Time
	screen     Screen
	transcript []models.Message
	pending    bool
	generation int
}

// NewSession creates a session on the welcome screen with an empty transcript.
func NewSession(cfg Config, remote Parser, notifier *notifications.Hub, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		cfg:      cfg,
		parser:   remote,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		screen:   ScreenWelcome,
	}
}

// StartChat enters the chat screen and schedules the onboarding greeting.
// Starting again resets the transcript and replays the greeting; the screen
// never returns to welcome.
func (s *Session) StartChat() {
	s.startChat()
}

func (s *Session) startChat() int {
	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.screen = ScreenChat
	s.transcript = nil
	s.pending = false
	s.mu.Unlock()

	time.AfterFunc(s.cfg.GreetingDelay, func() {
		s.appendBot(generation, welcomeMessage, nil)
	})
	return generation
}

// StartChatWithText enters the chat screen and, after a second delay, submits
// the example text exactly as if the user had typed it.
func (s *Session) StartChatWithText(text string) {
	generation := s.startChat()

	time.AfterFunc(s.cfg.ExampleDelay, func() {
		if !s.sameGeneration(generation) {
			return
		}
		if _, err := s.Submit(text); err != nil {
			s.logger.Warn("example submission dropped", slog.String("error", err.Error()))
		}
	})
}

// Submit runs one intake: the trimmed text is appended as a user message
// immediately and the bot reply lands in the transcript once a terminal
// outcome is reached. Empty text and submissions while an intake is already
// outstanding are rejected without touching the transcript.
func (s *Session) Submit(text string) (models.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return models.Message{}, ErrBusy
	}

	generation := s.generation
	userMessage := models.Message{
		ID:        uuid.New(),
		Role:      models.MessageRoleUser,
		Text:      trimmed,
		Timestamp: s.now(),
	}
	s.transcript = append(s.transcript, userMessage)
	s.pending = true
	s.mu.Unlock()

	if isGreeting(trimmed) {
		time.AfterFunc(s.cfg.HelpDelay, func() {
			s.finish(generation, helpMessage, nil)
		})
		return userMessage, nil
	}

	go s.process(generation, trimmed)
	return userMessage, nil
}

// process issues the single remote parse request and resolves the terminal
// outcome. A transport failure is masked by the offline fallback and reported
// once as a transient notification; it never reaches the transcript raw.
func (s *Session) process(generation int, text string) {
	result, err := s.parser.Parse(context.Background(), text)
	if err != nil {
		s.logger.Warn("remote parser unreachable, using offline fallback", slog.String("error", err.Error()))
		if s.notifier != nil {
			s.notifier.Publish(notifications.Event{
				Type:    "parser_unreachable",
				Message: "Failed to connect to server: " + err.Error(),
			})
		}

		message, details := parser.ParseOffline(text)
		s.finish(generation, message, details)
		return
	}

	if !result.Success {
		s.finish(generation, fmt.Sprintf(parseFailureFormat, result.Error), nil)
		return
	}

	s.finish(generation, result.Message, result.Details)
}

// Screen returns the current screen state.
func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// Pending reports whether an intake request is outstanding.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Transcript returns a copy of the message transcript in insertion order.
func (s *Session) Transcript() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

func (s *Session) appendBot(generation int, text string, details *models.ParsedExpenseDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return
	}
	s.transcript = append(s.transcript, models.Message{
		ID:             uuid.New(),
		Role:           models.MessageRoleBot,
		Text:           text,
		Timestamp:      s.now(),
		ExpenseDetails: details,
	})
}

// finish appends the terminal bot message and clears the pending flag.
func (s *Session) finish(generation int, text string, details *models.ParsedExpenseDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return
	}
	s.transcript = append(s.transcript, models.Message{
		ID:             uuid.New(),
		Role:           models.MessageRoleBot,
		Text:           text,
		Timestamp:      s.now(),
		ExpenseDetails: details,
	})
	s.pending = false
}

func (s *Session) sameGeneration(generation int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return generation == s.generation
}

// isGreeting reports whether the first token of the normalized text is a
// help or greeting keyword. Matching the whole line would misfire on expense
// names that merely contain one ("chips" contains "hi").
func isGreeting(text string) bool {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return false
	}
	for _, keyword := range greetingKeywords {
		if fields[0] == keyword {
			return true
		}
	}
	return false
}
