package llm

import (
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestConvertHistoryToAnthropicMessages(t *testing.T) {
	history := []Message{
		{Role: "user", Content: "Hello."},
		{Role: "assistant", Content: "Hi!"},
		{Role: "user", Content: "How are you?"},
	}

	result := convertHistoryToAnthropicMessages(history)
	if len(result) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(result))
	}
	wantRoles := []anthropic.MessageParamRole{
		anthropic.MessageParamRoleUser,
		anthropic.MessageParamRoleAssistant,
		anthropic.MessageParamRoleUser,
	}
	for i, want := range wantRoles {
		if result[i].Role != want {
			t.Errorf("Message %d: expected role %q, got %q", i, want, result[i].Role)
		}
	}
}

func TestConvertHistoryToOpenAIMessages(t *testing.T) {
	history := []Message{
		{Role: "user", Content: "Hello."},
		{Role: "assistant", Content: "Hi!"},
	}

	result := convertHistoryToOpenAIMessages("You are a barista.", history)
	if len(result) != 3 {
		t.Fatalf("Expected persona + 2 messages, got %d", len(result))
	}
	if result[0].OfSystem == nil {
		t.Error("Expected the persona as the leading system message")
	}
	if result[1].OfUser == nil {
		t.Error("Expected a user message second")
	}
	if result[2].OfAssistant == nil {
		t.Error("Expected an assistant message third")
	}
}

func TestConvertHistoryToOpenAIMessagesWithoutPersona(t *testing.T) {
	result := convertHistoryToOpenAIMessages("", []Message{{Role: "user", Content: "hi"}})
	if len(result) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(result))
	}
	if result[0].OfUser == nil {
		t.Error("Expected a user message when no persona is given")
	}
}

func TestConvertHistoryToGeminiContent(t *testing.T) {
	history := []Message{
		{Role: "user", Content: "Hello."},
		{Role: "assistant", Content: "Hi!"},
	}

	contents := convertHistoryToGeminiContent(history)
	if len(contents) != 2 {
		t.Fatalf("Expected 2 contents, got %d", len(contents))
	}
	if contents[0].Role != "user" {
		t.Errorf("Expected role 'user', got %q", contents[0].Role)
	}
	if contents[1].Role != "model" {
		t.Errorf("Expected role 'model', got %q", contents[1].Role)
	}
}
