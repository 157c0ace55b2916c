package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/pkg/validator"
)

type chatFixture struct {
	service *ChatService
	alice   *domain.User
	bob     *domain.User
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	tenantID := uuid.New()
	return &chatFixture{
		service: NewChatService(newFakeChatRepo(), validator.NewValidator(), zap.NewNop()),
		alice:   &domain.User{ID: uuid.New(), TenantID: &tenantID, Email: "alice@example.com", Role: domain.RoleUser},
		bob:     &domain.User{ID: uuid.New(), TenantID: &tenantID, Email: "bob@example.com", Role: domain.RoleUser},
	}
}

func TestCreateSessionDefaultTitle(t *testing.T) {
	f := newChatFixture(t)

	session, err := f.service.CreateSession(context.Background(), f.alice, CreateSessionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "New chat", session.Title)
	assert.Equal(t, f.alice.ID, session.UserID)
}

func TestCreateSessionClampsTitle(t *testing.T) {
	f := newChatFixture(t)

	session, err := f.service.CreateSession(context.Background(), f.alice, CreateSessionRequest{
		Title: strings.Repeat("x", 200),
	})
	require.NoError(t, err)
	assert.Equal(t, 80, len([]rune(session.Title)))
	assert.True(t, strings.HasSuffix(session.Title, "..."))
}

func TestSessionsAreOwnerPrivate(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	session, err := f.service.CreateSession(ctx, f.alice, CreateSessionRequest{Title: "Mine"})
	require.NoError(t, err)

	// Another user cannot see, delete or post into it; it looks missing.
	_, err = f.service.GetSession(ctx, f.bob, session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = f.service.DeleteSession(ctx, f.bob, session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.service.AppendMessage(ctx, f.bob, session.ID, AppendMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, _, err = f.service.ListMessages(ctx, f.bob, session.ID, 50, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAppendAndListMessages(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	session, err := f.service.CreateSession(ctx, f.alice, CreateSessionRequest{Title: "Questions"})
	require.NoError(t, err)

	first, err := f.service.AppendMessage(ctx, f.alice, session.ID, AppendMessageRequest{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageRoleUser, first.Role)

	second, err := f.service.AppendMessage(ctx, f.alice, session.ID, AppendMessageRequest{
		Content: "hi there",
		Role:    "assistant",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageRoleAssistant, second.Role)

	messages, total, err := f.service.ListMessages(ctx, f.alice, session.ID, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, messages, 2)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, "hi there", messages[1].Content)
}

func TestAppendMessageInvalidRole(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	session, err := f.service.CreateSession(ctx, f.alice, CreateSessionRequest{})
	require.NoError(t, err)

	_, err = f.service.AppendMessage(ctx, f.alice, session.ID, AppendMessageRequest{
		Content: "hello",
		Role:    "system",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteSessionRemovesMessages(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	session, err := f.service.CreateSession(ctx, f.alice, CreateSessionRequest{})
	require.NoError(t, err)
	_, err = f.service.AppendMessage(ctx, f.alice, session.ID, AppendMessageRequest{Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteSession(ctx, f.alice, session.ID))

	_, _, err = f.service.ListMessages(ctx, f.alice, session.ID, 50, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
