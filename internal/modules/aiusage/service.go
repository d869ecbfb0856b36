package aiusage

import (
	"context"
	"strings"
	"time"

	"skycab/internal/ai"
)

// Service guards the assistant with a monthly token quota.
type Service struct {
	store     *Store
	assistant ai.Assistant
	now       func() time.Time
}

// NewService creates a Service backed by the given Store and Assistant.
func NewService(store *Store, assistant ai.Assistant) *Service {
	return &Service{store: store, assistant: assistant, now: time.Now}
}

func (s *Service) month() string {
	return s.now().UTC().Format("2006-01")
}

// UseToken deducts one token from the user's monthly allowance.
// If the user row does not exist yet it is initialised and the token is immediately consumed.
// Returns ErrInsufficientTokens when the quota for the current month is exhausted.
func (s *Service) UseToken(ctx context.Context, uid string) error {
	month := s.month()
	err := s.store.UseToken(ctx, uid, month)
	if err != ErrInsufficientTokens {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureUser(ctx, uid, month); initErr != nil {
		return initErr
	}
	return s.store.UseToken(ctx, uid, month)
}

// Chat spends one token and asks the assistant. A failed completion still
// costs the token.
func (s *Service) Chat(ctx context.Context, uid, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	if err := s.UseToken(ctx, uid); err != nil {
		return "", err
	}
	return s.assistant.Reply(ctx, message)
}

// Remaining reports the allowance left this month, applying the lazy reset.
func (s *Service) Remaining(ctx context.Context, uid string) (Usage, error) {
	month := s.month()
	u, ok, err := s.store.Get(ctx, uid)
	if err != nil {
		return Usage{}, err
	}
	if !ok || u.Month < month {
		return Usage{UID: uid, TokensRemaining: DefaultTokens, Month: month}, nil
	}
	return u, nil
}
