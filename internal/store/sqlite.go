package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
)

const (
	credentialToken   = "token"
	credentialProfile = "profile"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the local database at dsn.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS credentials (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chat_sessions (
			session_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			session_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			is_error INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (session_id, position),
			FOREIGN KEY (session_id) REFERENCES chat_sessions(session_id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_sessions_created ON chat_sessions(created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveCredentials persists the token and profile, replacing any prior record.
func (s *SQLiteStore) SaveCredentials(ctx context.Context, token string, profile domain.Profile) error {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, value := range map[string]string{
		credentialToken:   token,
		credentialProfile: string(profileJSON),
	} {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO credentials (key, value) VALUES (?, ?)`, key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadCredentials returns the persisted token and profile, if any.
func (s *SQLiteStore) LoadCredentials(ctx context.Context) (string, *domain.Profile, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM credentials WHERE key = ?`, credentialToken).Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}

	var profileJSON string
	err = s.db.QueryRowContext(ctx,
		`SELECT value FROM credentials WHERE key = ?`, credentialProfile).Scan(&profileJSON)
	if err == sql.ErrNoRows {
		return token, nil, nil
	}
	if err != nil {
		return "", nil, err
	}

	var profile domain.Profile
	if err := json.Unmarshal([]byte(profileJSON), &profile); err != nil {
		return "", nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return token, &profile, nil
}

// ClearCredentials removes any persisted credentials.
func (s *SQLiteStore) ClearCredentials(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials`)
	return err
}

// UpsertChatSession inserts or updates a session and its messages. When the
// insert pushes the session count past domain.MaxChatSessions, the oldest
// sessions are evicted.
func (s *SQLiteStore) UpsertChatSession(ctx context.Context, session *domain.ChatSession) error {
	if session.ID == "" {
		return fmt.Errorf("chat session id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO chat_sessions (session_id, title, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET title = excluded.title`,
		session.ID, session.Title, session.CreatedAt); err != nil {
		return err
	}

	// Rewrite the message list; sessions only ever grow by appends so a
	// full rewrite keeps positions dense.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM chat_messages WHERE session_id = ?`, session.ID); err != nil {
		return err
	}
	for i, msg := range session.Messages {
		isError := 0
		if msg.Error {
			isError = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chat_messages (session_id, position, role, content, is_error) VALUES (?, ?, ?, ?, ?)`,
			session.ID, i, string(msg.Role), msg.Text, isError); err != nil {
			return err
		}
	}

	// Evict the oldest sessions beyond the cap.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM chat_sessions WHERE session_id IN (
			SELECT session_id FROM chat_sessions
			ORDER BY created_at DESC, session_id DESC
			LIMIT -1 OFFSET ?
		)`, domain.MaxChatSessions); err != nil {
		return err
	}

	return tx.Commit()
}

// GetChatSession returns a persisted session by id, or nil when absent.
func (s *SQLiteStore) GetChatSession(ctx context.Context, id string) (*domain.ChatSession, error) {
	var session domain.ChatSession
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, title, created_at FROM chat_sessions WHERE session_id = ?`,
		id).Scan(&session.ID, &session.Title, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	messages, err := s.sessionMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Messages = messages
	return &session, nil
}

// ListChatSessions returns persisted sessions most-recent-first.
func (s *SQLiteStore) ListChatSessions(ctx context.Context) ([]domain.ChatSession, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, title, created_at FROM chat_sessions
		 ORDER BY created_at DESC, session_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.ChatSession
	for rows.Next() {
		var session domain.ChatSession
		if err := rows.Scan(&session.ID, &session.Title, &session.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sessions {
		messages, err := s.sessionMessages(ctx, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].Messages = messages
	}
	return sessions, nil
}

// CountChatSessions returns the number of persisted sessions.
func (s *SQLiteStore) CountChatSessions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_sessions`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) sessionMessages(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content, is_error FROM chat_messages WHERE session_id = ? ORDER BY position ASC`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		var role string
		var isError int
		if err := rows.Scan(&role, &msg.Text, &isError); err != nil {
			return nil, err
		}
		msg.Role = domain.MessageRole(role)
		msg.Error = isError != 0
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
