package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tenantkit/backend/internal/domain"
)

// ChatRepository persists chat sessions and their messages. All session
// operations are scoped to the owning user; messages are reached through an
// owned session only.
type ChatRepository interface {
	CreateSession(ctx context.Context, session *domain.ChatSession) error
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.ChatSession, error)
	ListSessions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.ChatSession, int, error)
	DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error

	CreateMessage(ctx context.Context, msg *domain.ChatMessage) error
	ListMessages(ctx context.Context, sessionID uuid.UUID, limit, offset int) ([]*domain.ChatMessage, int, error)
}
