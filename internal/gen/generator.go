// Package gen provides the text generation backend for assistant replies.
package gen

import (
	"context"
	"errors"

	"github.com/ashvale/coach-labs/internal/domain"
)

// ErrEmptyCompletion is returned when the backend answers without usable text.
var ErrEmptyCompletion = errors.New("empty completion from generation backend")

// Params are the sampling parameters for a generation call.
type Params struct {
	MaxTokens   int32
	Temperature float32
	TopP        float32
}

// DefaultParams returns the fixed sampling parameters used for coaching replies.
func DefaultParams() Params {
	return Params{
		MaxTokens:   400,
		Temperature: 0.7,
		TopP:        0.9,
	}
}

// Generator produces assistant text from an ordered list of role-tagged
// messages. Implementations may fail or time out; callers are expected to
// substitute fallback text rather than surface the error to the user.
type Generator interface {
	Generate(ctx context.Context, messages []domain.Message, params Params) (string, error)
}

// Disabled is a Generator that always fails. It is wired when no backend is
// configured so the conversation degrades to fallback replies instead of
// refusing to start.
type Disabled struct{}

// Generate implements Generator.
func (Disabled) Generate(ctx context.Context, messages []domain.Message, params Params) (string, error) {
	return "", errors.New("generation backend not configured")
}
