// README: Chat service saves and lists a user's assistant conversations.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"skycab/internal/types"
)

type Service struct {
	store *Store
	now   func() time.Time
}

func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Save persists a conversation. A nil messages slice or blank title is
// rejected; an empty slice is a valid, empty conversation.
func (s *Service) Save(ctx context.Context, userID types.ID, title string, messages []Message) (*Chat, error) {
	title = strings.TrimSpace(title)
	if userID == "" || title == "" || messages == nil {
		return nil, ErrBadRequest
	}

	now := s.now().UTC()
	c := &Chat{
		ID:        types.ID(uuid.NewString()),
		UserID:    userID,
		Title:     title,
		Messages:  make([]Message, 0, len(messages)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, m := range messages {
		if m.Timestamp.IsZero() {
			m.Timestamp = now
		}
		m.ID = uuid.NewString()
		c.Messages = append(c.Messages, m)
	}

	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, userID types.ID) ([]Chat, error) {
	if userID == "" {
		return nil, ErrBadRequest
	}
	return s.store.ListByUser(ctx, userID)
}
