package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageRole distinguishes user-authored messages from assistant replies.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Valid reports whether the message role is a known one.
func (r MessageRole) Valid() bool {
	return r == MessageRoleUser || r == MessageRoleAssistant
}

// ChatSession is a conversation owned by a single user. Deleting a session
// cascades to its messages.
type ChatSession struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ChatMessage is a single message inside a session.
type ChatMessage struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	SessionID uuid.UUID   `json:"session_id" db:"session_id"`
	Content   string      `json:"content" db:"content"`
	Role      MessageRole `json:"role" db:"role"`
	CreatedAt time.Time   `json:"timestamp" db:"created_at"`
}

// ClampTitle shortens a string to at most max runes for use as a session
// title, appending an ellipsis when truncated.
func ClampTitle(s string, max int) string {
	if max <= 3 {
		max = 3
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
