// Package assistant manages help-assistant conversations: one active session
// with a single outstanding request at a time, and a bounded persisted
// history of past sessions.
package assistant

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
	"github.com/kapilcyber/bank.ai-sub001/internal/logger"
	"github.com/kapilcyber/bank.ai-sub001/internal/store"
)

// FallbackReply is recorded as the bot turn when the backend fails and
// provides no detail.
const FallbackReply = "Sorry, I could not process that request. Please try again."

// Querier sends one message to the assistant backend.
type Querier interface {
	QueryAssistant(ctx context.Context, message string) (string, error)
}

// Manager drives the active chat session and its persistence.
type Manager struct {
	api     Querier
	history store.Store
	now     func() time.Time

	mu       sync.Mutex
	active   domain.ChatSession
	awaiting bool
}

// NewManager creates a chat manager with an empty active session.
func NewManager(api Querier, history store.Store) *Manager {
	return &Manager{api: api, history: history, now: time.Now}
}

// Active returns a copy of the active session.
func (m *Manager) Active() domain.ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copySession(m.active)
}

// Awaiting reports whether a send is outstanding. The UI disables the send
// action while this is true.
func (m *Manager) Awaiting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.awaiting
}

// Send submits one user message. While a previous send is awaiting its reply
// the call returns domain.ErrSendInFlight and issues no request. On success
// the user message and bot reply are appended and the session is persisted.
// On failure the user message and an error-flagged bot message are appended
// and persisted all the same, so the failed turn remains visible.
func (m *Manager) Send(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	if m.awaiting {
		m.mu.Unlock()
		return "", domain.ErrSendInFlight
	}
	m.awaiting = true
	m.ensureActiveLocked()
	m.mu.Unlock()

	reply, err := m.api.QueryAssistant(ctx, text)

	m.mu.Lock()
	m.awaiting = false
	m.active.Messages = append(m.active.Messages, domain.ChatMessage{
		Role: domain.MessageRoleUser,
		Text: text,
	})
	if m.active.Title == "" {
		m.active.Title = domain.DeriveTitle(m.active.FirstUserMessage())
	}

	var sendErr error
	if err != nil {
		botText := FallbackReply
		var fe *domain.FetchError
		if errors.As(err, &fe) && fe.Message != "" {
			botText = fe.Message
		}
		m.active.Messages = append(m.active.Messages, domain.ChatMessage{
			Role:  domain.MessageRoleBot,
			Text:  botText,
			Error: true,
		})
		sendErr = &domain.AssistantError{Message: botText, Err: err}
	} else {
		m.active.Messages = append(m.active.Messages, domain.ChatMessage{
			Role: domain.MessageRoleBot,
			Text: reply,
		})
	}
	session := copySession(m.active)
	m.mu.Unlock()

	if perr := m.history.UpsertChatSession(ctx, &session); perr != nil {
		logger.Error("assistant.persist_failed", "session", session.ID, "err", perr)
		if sendErr == nil {
			sendErr = perr
		}
	}

	if sendErr != nil {
		return "", sendErr
	}
	return reply, nil
}

// StartNewChat flushes the current session to history when it has at least
// one user message, then resets to a fresh empty session. A session without
// a user message leaves no persisted entry.
func (m *Manager) StartNewChat(ctx context.Context) error {
	m.mu.Lock()
	var flush *domain.ChatSession
	if m.active.HasUserMessage() {
		s := copySession(m.active)
		flush = &s
	}
	m.active = domain.ChatSession{}
	m.mu.Unlock()

	if flush == nil {
		return nil
	}
	return m.history.UpsertChatSession(ctx, flush)
}

// OpenPastChat swaps the active session to a persisted one. The persisted
// store is not touched until the next send or new-chat action.
func (m *Manager) OpenPastChat(ctx context.Context, id string) (domain.ChatSession, error) {
	session, err := m.history.GetChatSession(ctx, id)
	if err != nil {
		return domain.ChatSession{}, err
	}
	if session == nil {
		return domain.ChatSession{}, &domain.AssistantError{Message: "chat session not found"}
	}

	m.mu.Lock()
	m.active = copySession(*session)
	m.awaiting = false
	m.mu.Unlock()
	return copySession(*session), nil
}

// History returns persisted sessions most-recent-first.
func (m *Manager) History(ctx context.Context) ([]domain.ChatSession, error) {
	return m.history.ListChatSessions(ctx)
}

// ensureActiveLocked lazily creates the active session on first send.
func (m *Manager) ensureActiveLocked() {
	if m.active.ID == "" {
		m.active.ID = "chat_" + uuid.New().String()[:8]
		m.active.CreatedAt = m.now()
	}
}

func copySession(s domain.ChatSession) domain.ChatSession {
	out := s
	out.Messages = append([]domain.ChatMessage(nil), s.Messages...)
	return out
}
