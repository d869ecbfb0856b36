package aiusage

import "errors"

// ErrInsufficientTokens is returned when a user has no tokens remaining for the current month.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// ErrEmptyMessage is returned for a blank prompt; no token is consumed.
var ErrEmptyMessage = errors.New("empty message")

// DefaultTokens is the number of assistant messages granted per month.
const DefaultTokens = 100

// Usage is a user's allowance for one month.
type Usage struct {
	UID             string `json:"uid"`
	TokensRemaining int    `json:"tokens_remaining"`
	Month           string `json:"month"`
}
