package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/internal/repository"
)

type chatRepository struct {
	db *sqlx.DB
}

// NewChatRepository creates a new PostgreSQL chat repository
func NewChatRepository(db *sqlx.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateSession(ctx context.Context, session *domain.ChatSession) error {
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	query := `
		INSERT INTO chat_sessions (id, user_id, title, created_at, updated_at)
		VALUES (:id, :user_id, :title, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, session); err != nil {
		return translate(err, "failed to create chat session")
	}
	return nil
}

func (r *chatRepository) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.ChatSession, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM chat_sessions
		WHERE id = $1 AND user_id = $2`

	var session domain.ChatSession
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &session, query, sessionID, userID); err != nil {
		return nil, translate(err, "failed to get chat session")
	}
	return &session, nil
}

func (r *chatRepository) ListSessions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.ChatSession, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM chat_sessions WHERE user_id = $1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &total, countQuery, userID); err != nil {
		return nil, 0, translate(err, "failed to count chat sessions")
	}

	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM chat_sessions
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3`

	sessions := []*domain.ChatSession{}
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &sessions, query, userID, limit, offset); err != nil {
		return nil, 0, translate(err, "failed to list chat sessions")
	}
	return sessions, total, nil
}

// DeleteSession removes a session; messages cascade via foreign key.
func (r *chatRepository) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	result, err := ext(ctx, r.db).ExecContext(ctx,
		`DELETE FROM chat_sessions WHERE id = $1 AND user_id = $2`, sessionID, userID)
	if err != nil {
		return translate(err, "failed to delete chat session")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translate(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *domain.ChatMessage) error {
	msg.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO chat_messages (id, session_id, content, role, created_at)
		VALUES (:id, :session_id, :content, :role, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, msg); err != nil {
		return translate(err, "failed to create chat message")
	}

	// Appending bumps the session so recently active conversations sort
	// first.
	touch := `UPDATE chat_sessions SET updated_at = $1 WHERE id = $2`
	if _, err := ext(ctx, r.db).ExecContext(ctx, touch, time.Now().UTC(), msg.SessionID); err != nil {
		return translate(err, "failed to touch chat session")
	}
	return nil
}

func (r *chatRepository) ListMessages(ctx context.Context, sessionID uuid.UUID, limit, offset int) ([]*domain.ChatMessage, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM chat_messages WHERE session_id = $1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &total, countQuery, sessionID); err != nil {
		return nil, 0, translate(err, "failed to count chat messages")
	}

	query := `
		SELECT id, session_id, content, role, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`

	messages := []*domain.ChatMessage{}
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &messages, query, sessionID, limit, offset); err != nil {
		return nil, 0, translate(err, "failed to list chat messages")
	}
	return messages, total, nil
}
