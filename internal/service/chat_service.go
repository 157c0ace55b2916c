package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/internal/repository"
	"github.com/tenantkit/backend/pkg/validator"
)

const (
	chatTitleMaxLength = 80
	defaultChatTitle   = "New chat"
)

// ChatService manages per-user chat sessions and their message history.
// Sessions are owned by a user, not shared within the tenant, so every
// operation is keyed on the caller's user id.
type ChatService struct {
	chatRepo repository.ChatRepository
	validate *validator.Validator
	logger   *zap.Logger
}

func NewChatService(
	chatRepo repository.ChatRepository,
	validate *validator.Validator,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		validate: validate,
		logger:   logger,
	}
}

type CreateSessionRequest struct {
	Title string `json:"title" validate:"max=255"`
}

type AppendMessageRequest struct {
	Content string `json:"content" validate:"required"`
	Role    string `json:"role" validate:"omitempty,oneof=user assistant"`
}

func (s *ChatService) CreateSession(ctx context.Context, user *domain.User, req CreateSessionRequest) (*domain.ChatSession, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = defaultChatTitle
	}

	session := &domain.ChatSession{
		ID:     uuid.New(),
		UserID: user.ID,
		Title:  domain.ClampTitle(title, chatTitleMaxLength),
	}

	if err := s.chatRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ChatService) GetSession(ctx context.Context, user *domain.User, sessionID uuid.UUID) (*domain.ChatSession, error) {
	return s.chatRepo.GetSession(ctx, user.ID, sessionID)
}

func (s *ChatService) ListSessions(ctx context.Context, user *domain.User, limit, offset int) ([]*domain.ChatSession, int, error) {
	return s.chatRepo.ListSessions(ctx, user.ID, limit, offset)
}

func (s *ChatService) DeleteSession(ctx context.Context, user *domain.User, sessionID uuid.UUID) error {
	return s.chatRepo.DeleteSession(ctx, user.ID, sessionID)
}

// AppendMessage adds a message to one of the caller's sessions. The
// ownership check doubles as the existence check: a foreign session looks
// exactly like a missing one.
func (s *ChatService) AppendMessage(ctx context.Context, user *domain.User, sessionID uuid.UUID, req AppendMessageRequest) (*domain.ChatMessage, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.chatRepo.GetSession(ctx, user.ID, sessionID); err != nil {
		return nil, err
	}

	role := domain.MessageRole(req.Role)
	if req.Role == "" {
		role = domain.MessageRoleUser
	}

	msg := &domain.ChatMessage{
		ID:        uuid.New(),
		SessionID: sessionID,
		Content:   req.Content,
		Role:      role,
	}

	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ChatService) ListMessages(ctx context.Context, user *domain.User, sessionID uuid.UUID, limit, offset int) ([]*domain.ChatMessage, int, error) {
	if _, err := s.chatRepo.GetSession(ctx, user.ID, sessionID); err != nil {
		return nil, 0, err
	}
	return s.chatRepo.ListMessages(ctx, sessionID, limit, offset)
}
