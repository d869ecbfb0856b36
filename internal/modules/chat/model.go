// README: Saved assistant conversations.
package chat

import (
	"errors"
	"time"

	"skycab/internal/types"
)

var ErrBadRequest = errors.New("invalid request data")

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Chat struct {
	ID        types.ID  `json:"id"`
	UserID    types.ID  `json:"user_id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
