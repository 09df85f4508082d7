package llm

import (
	"context"

	"github.com/m4xw311/duolog/errors"
)

// Message is one entry in the role-tagged history handed to a backend.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Client is the interface for a reply-generation backend. It receives the
// persona (system instruction) of the replying participant and the dialogue
// history from that participant's perspective, and returns the generated
// reply text.
type Client interface {
	Chat(ctx context.Context, persona string, history []Message) (string, error)
}

// New constructs the named backend. An empty provider name resolves to
// ErrConfigurationMissing so the caller can decide how to degrade.
func New(ctx context.Context, provider, model string) (Client, error) {
	switch provider {
	case "anthropic":
		return NewAnthropicClient(ctx, model)
	case "openai":
		return NewOpenAIClient(ctx, model)
	case "gemini":
		return NewGeminiClient(ctx, model)
	case "bedrock":
		return NewBedrockClient(ctx, model)
	case "":
		return nil, errors.Tagf(errors.ErrConfigurationMissing, "no llm provider configured")
	default:
		return nil, errors.New("unknown llm provider '%s'", provider)
	}
}

// providerFailure tags a failed provider call as a generation failure so
// callers can branch on the kind instead of the provider's error shape.
func providerFailure(provider string, err error) error {
	return errors.Tagf(errors.ErrGenerationFailure, "failed to send message to %s: %v", provider, err)
}

// Unavailable is the backend installed when no provider credentials resolve.
// Every call fails, so the dialogue layer substitutes its templated fallback
// lines and the whole transcript stays tagged as placeholder output.
type Unavailable struct{}

func (u *Unavailable) Chat(ctx context.Context, persona string, history []Message) (string, error) {
	return "", errors.Tagf(errors.ErrConfigurationMissing, "no reply-generation backend available")
}
