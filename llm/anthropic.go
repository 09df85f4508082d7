package llm

import (
	"context"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/m4xw311/duolog/errors"
)

// AnthropicClient is a client for the Anthropic API.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicClient creates a new AnthropicClient.
// It requires the ANTHROPIC_API_KEY environment variable to be set.
func NewAnthropicClient(ctx context.Context, modelName string) (*AnthropicClient, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, errors.Tagf(errors.ErrConfigurationMissing, "ANTHROPIC_API_KEY environment variable not set")
	}

	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &AnthropicClient{
		client: &client,
		model:  modelName,
	}, nil
}

// Chat sends the persona and dialogue history to the Anthropic API and
// returns the generated reply text.
func (a *AnthropicClient) Chat(ctx context.Context, persona string, history []Message) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 1024,
		Messages:  convertHistoryToAnthropicMessages(history),
	}

	if persona != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: persona},
		}
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", providerFailure("Anthropic", err)
	}

	return processAnthropicResponse(resp)
}

// convertHistoryToAnthropicMessages converts our internal message format to Anthropic's format.
func convertHistoryToAnthropicMessages(history []Message) []anthropic.MessageParam {
	var anthropicMessages []anthropic.MessageParam
	for _, msg := range history {
		switch msg.Role {
		case "assistant":
			anthropicMessages = append(anthropicMessages, anthropic.NewAssistantMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		default:
			anthropicMessages = append(anthropicMessages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		}
	}
	return anthropicMessages
}

// processAnthropicResponse extracts the reply text from an Anthropic API response.
func processAnthropicResponse(resp *anthropic.Message) (string, error) {
	var responseContent string
	for _, content := range resp.Content {
		if block, ok := content.AsAny().(anthropic.TextBlock); ok {
			responseContent += block.Text
		}
	}

	if strings.TrimSpace(responseContent) == "" {
		return "", errors.Tagf(errors.ErrMalformedReply, "Anthropic returned no text content")
	}
	return responseContent, nil
}
