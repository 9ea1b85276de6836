// Package store provides the client-local persistence layer: saved
// credentials and the bounded assistant chat history. All operations return
// explicit errors; nothing is swallowed.
package store

import (
	"context"

	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
)

// Store is the local persistence contract.
type Store interface {
	// SaveCredentials persists the bearer token and profile. An existing
	// record is overwritten; there is at most one.
	SaveCredentials(ctx context.Context, token string, profile domain.Profile) error

	// LoadCredentials returns the persisted token and profile. An empty
	// token and nil profile mean no credentials are stored, which is the
	// unauthenticated state.
	LoadCredentials(ctx context.Context) (string, *domain.Profile, error)

	// ClearCredentials removes any persisted credentials.
	ClearCredentials(ctx context.Context) error

	// UpsertChatSession inserts or updates a chat session. Insertion beyond
	// domain.MaxChatSessions evicts the oldest persisted session.
	UpsertChatSession(ctx context.Context, session *domain.ChatSession) error

	// GetChatSession returns a persisted session, or nil when absent.
	GetChatSession(ctx context.Context, id string) (*domain.ChatSession, error)

	// ListChatSessions returns persisted sessions most-recent-first.
	ListChatSessions(ctx context.Context) ([]domain.ChatSession, error)

	// CountChatSessions returns the number of persisted sessions.
	CountChatSessions(ctx context.Context) (int, error)

	Close() error
}
