// README: Chat store backed by PostgreSQL; a chat and its messages are written in one transaction.
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skycab/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, c *Chat) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO chats (id, user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		string(c.ID), string(c.UserID), c.Title, c.CreatedAt, c.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert chat: %w", err)
	}

	if len(c.Messages) > 0 {
		batch := &pgx.Batch{}
		for _, m := range c.Messages {
			batch.Queue(`
				INSERT INTO chat_messages (id, chat_id, role, content, timestamp)
				VALUES ($1, $2, $3, $4, $5)`,
				m.ID, string(c.ID), m.Role, m.Content, m.Timestamp,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert chat messages: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// ListByUser returns chats newest-updated first, each with messages in time order.
func (s *Store) ListByUser(ctx context.Context, userID types.ID) ([]Chat, error) {
	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.user_id, c.title, c.created_at, c.updated_at,
		       m.id, m.role, m.content, m.timestamp
		FROM chats c
		LEFT JOIN chat_messages m ON m.chat_id = c.id
		WHERE c.user_id = $1
		ORDER BY c.updated_at DESC, c.id, m.timestamp ASC`, string(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Chat{}
	for rows.Next() {
		var c Chat
		var msgID, role, content *string
		var ts *time.Time
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt,
			&msgID, &role, &content, &ts,
		); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].ID != c.ID {
			c.Messages = []Message{}
			out = append(out, c)
		}
		if msgID != nil {
			last := &out[len(out)-1]
			last.Messages = append(last.Messages, Message{ID: *msgID, Role: *role, Content: *content, Timestamp: *ts})
		}
	}
	return out, rows.Err()
}
