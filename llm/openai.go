package llm

import (
	"context"
	"os"
	"strings"

	"github.com/m4xw311/duolog/errors"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// OpenAIClient is a client for the OpenAI Chat Completion API. Through
// OPENAI_BASE_URL it also serves OpenAI-compatible endpoints such as Groq.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAIClient. It requires the OPENAI_API_KEY
// environment variable to be set. It also supports OPENAI_BASE_URL for custom
// API endpoints.
func NewOpenAIClient(ctx context.Context, modelName string) (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.Tagf(errors.ErrConfigurationMissing, "OPENAI_API_KEY environment variable not set")
	}

	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	// The v2 SDK uses functional options for configuration.
	c := openai.NewClient(options...)
	return &OpenAIClient{client: &c, model: modelName}, nil
}

// Chat sends the persona and dialogue history to OpenAI and returns the
// generated reply text.
func (o *OpenAIClient) Chat(ctx context.Context, persona string, history []Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: convertHistoryToOpenAIMessages(persona, history),
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", providerFailure("OpenAI", err)
	}

	return processOpenAIResponse(resp)
}

// convertHistoryToOpenAIMessages converts our internal message format to
// OpenAI's. The persona is prepended as the system message.
func convertHistoryToOpenAIMessages(persona string, history []Message) []openai.ChatCompletionMessageParamUnion {
	chatMessages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	if persona != "" {
		chatMessages = append(chatMessages, openai.SystemMessage(persona))
	}
	for _, msg := range history {
		switch msg.Role {
		case "assistant":
			chatMessages = append(chatMessages, openai.AssistantMessage(msg.Content))
		default:
			chatMessages = append(chatMessages, openai.UserMessage(msg.Content))
		}
	}
	return chatMessages
}

// processOpenAIResponse extracts the reply text from an OpenAI API response.
func processOpenAIResponse(resp *openai.ChatCompletion) (string, error) {
	if len(resp.Choices) == 0 {
		return "", errors.Tagf(errors.ErrMalformedReply, "OpenAI returned no choices")
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", errors.Tagf(errors.ErrMalformedReply, "OpenAI returned an empty reply")
	}
	return content, nil
}
