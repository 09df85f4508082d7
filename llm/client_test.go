package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/m4xw311/duolog/errors"
)

func TestNewWithUnknownProvider(t *testing.T) {
	if _, err := New(context.Background(), "carrier-pigeon", "v1"); err == nil {
		t.Error("Expected an error for an unknown provider")
	}
}

func TestNewWithoutProviderIsConfigurationMissing(t *testing.T) {
	_, err := New(context.Background(), "", "")
	if !errors.Is(err, errors.ErrConfigurationMissing) {
		t.Errorf("Expected ErrConfigurationMissing, got %v", err)
	}
}

func TestNewWithoutCredentialsIsConfigurationMissing(t *testing.T) {
	cases := []struct {
		provider string
		envVar   string
	}{
		{"anthropic", "ANTHROPIC_API_KEY"},
		{"openai", "OPENAI_API_KEY"},
		{"gemini", "GEMINI_API_KEY"},
	}

	for _, tc := range cases {
		t.Setenv(tc.envVar, "")
		_, err := New(context.Background(), tc.provider, "some-model")
		if !errors.Is(err, errors.ErrConfigurationMissing) {
			t.Errorf("%s: expected ErrConfigurationMissing, got %v", tc.provider, err)
		}
	}
}

func TestProviderFailureIsTaggedGenerationFailure(t *testing.T) {
	err := providerFailure("Anthropic", errors.New("connection reset"))
	if !errors.Is(err, errors.ErrGenerationFailure) {
		t.Errorf("Expected ErrGenerationFailure, got %v", err)
	}
	if !strings.Contains(err.Error(), "Anthropic") {
		t.Errorf("Expected the provider name in the message, got %q", err.Error())
	}
}

func TestUnavailableAlwaysFails(t *testing.T) {
	client := &Unavailable{}
	_, err := client.Chat(context.Background(), "persona", []Message{{Role: "user", Content: "hi"}})
	if !errors.Is(err, errors.ErrConfigurationMissing) {
		t.Errorf("Expected ErrConfigurationMissing, got %v", err)
	}
}
