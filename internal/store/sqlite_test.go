package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestCredentialsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	token, profile, err := s.LoadCredentials(ctx)
	if err != nil {
		t.Fatalf("LoadCredentials failed: %v", err)
	}
	if token != "" || profile != nil {
		t.Fatalf("expected empty credentials, got %q %+v", token, profile)
	}

	want := domain.Profile{ID: "u1", Name: "Dana", Email: "dana@example.com", Role: domain.RoleAdmin}
	if err := s.SaveCredentials(ctx, "tok123", want); err != nil {
		t.Fatalf("SaveCredentials failed: %v", err)
	}

	token, profile, err = s.LoadCredentials(ctx)
	if err != nil {
		t.Fatalf("LoadCredentials failed: %v", err)
	}
	if token != "tok123" || profile == nil || profile.Email != "dana@example.com" {
		t.Fatalf("unexpected credentials: %q %+v", token, profile)
	}

	if err := s.ClearCredentials(ctx); err != nil {
		t.Fatalf("ClearCredentials failed: %v", err)
	}
	token, profile, err = s.LoadCredentials(ctx)
	if err != nil {
		t.Fatalf("LoadCredentials failed: %v", err)
	}
	if token != "" || profile != nil {
		t.Fatalf("expected cleared credentials, got %q %+v", token, profile)
	}
}

func TestChatSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	session := &domain.ChatSession{
		ID:        "chat_1",
		Title:     "hello",
		CreatedAt: time.Now(),
		Messages: []domain.ChatMessage{
			{Role: domain.MessageRoleUser, Text: "hello"},
			{Role: domain.MessageRoleBot, Text: "hi there"},
		},
	}
	if err := s.UpsertChatSession(ctx, session); err != nil {
		t.Fatalf("UpsertChatSession failed: %v", err)
	}

	got, err := s.GetChatSession(ctx, "chat_1")
	if err != nil {
		t.Fatalf("GetChatSession failed: %v", err)
	}
	if got == nil || got.Title != "hello" || len(got.Messages) != 2 {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.Messages[1].Role != domain.MessageRoleBot || got.Messages[1].Text != "hi there" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}

	// Update in place appends messages and keeps its history position.
	session.Messages = append(session.Messages, domain.ChatMessage{
		Role: domain.MessageRoleBot, Text: "anything else?", Error: true,
	})
	if err := s.UpsertChatSession(ctx, session); err != nil {
		t.Fatalf("UpsertChatSession update failed: %v", err)
	}
	got, err = s.GetChatSession(ctx, "chat_1")
	if err != nil {
		t.Fatalf("GetChatSession failed: %v", err)
	}
	if len(got.Messages) != 3 || !got.Messages[2].Error {
		t.Fatalf("unexpected updated session: %+v", got)
	}

	missing, err := s.GetChatSession(ctx, "nope")
	if err != nil {
		t.Fatalf("GetChatSession failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing session, got %+v", missing)
	}
}

func TestListChatSessionsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 3; i++ {
		session := &domain.ChatSession{
			ID:        fmt.Sprintf("chat_%d", i),
			Title:     fmt.Sprintf("title %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Messages:  []domain.ChatMessage{{Role: domain.MessageRoleUser, Text: "hi"}},
		}
		if err := s.UpsertChatSession(ctx, session); err != nil {
			t.Fatalf("UpsertChatSession failed: %v", err)
		}
	}

	sessions, err := s.ListChatSessions(ctx)
	if err != nil {
		t.Fatalf("ListChatSessions failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "chat_2" || sessions[2].ID != "chat_0" {
		t.Fatalf("unexpected order: %v %v %v", sessions[0].ID, sessions[1].ID, sessions[2].ID)
	}
	if len(sessions[0].Messages) != 1 {
		t.Fatalf("expected messages loaded, got %+v", sessions[0])
	}
}

func TestChatSessionCapEvictsOldest(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Now().Add(-24 * time.Hour)

	for i := 0; i < domain.MaxChatSessions+1; i++ {
		session := &domain.ChatSession{
			ID:        fmt.Sprintf("chat_%03d", i),
			Title:     fmt.Sprintf("title %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Messages:  []domain.ChatMessage{{Role: domain.MessageRoleUser, Text: "hi"}},
		}
		if err := s.UpsertChatSession(ctx, session); err != nil {
			t.Fatalf("UpsertChatSession failed: %v", err)
		}
	}

	n, err := s.CountChatSessions(ctx)
	if err != nil {
		t.Fatalf("CountChatSessions failed: %v", err)
	}
	if n != domain.MaxChatSessions {
		t.Fatalf("expected %d sessions, got %d", domain.MaxChatSessions, n)
	}

	// The oldest session was evicted.
	evicted, err := s.GetChatSession(ctx, "chat_000")
	if err != nil {
		t.Fatalf("GetChatSession failed: %v", err)
	}
	if evicted != nil {
		t.Fatalf("expected chat_000 evicted, got %+v", evicted)
	}

	newest, err := s.GetChatSession(ctx, fmt.Sprintf("chat_%03d", domain.MaxChatSessions))
	if err != nil {
		t.Fatalf("GetChatSession failed: %v", err)
	}
	if newest == nil {
		t.Fatal("expected newest session present")
	}

	// Evicted session's messages are gone too.
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM chat_messages WHERE session_id = 'chat_000'`).Scan(&count); err != nil {
		t.Fatalf("count messages failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cascade delete of messages, got %d", count)
	}
}
