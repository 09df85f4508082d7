package llm

import (
	"context"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/m4xw311/duolog/errors"
	"google.golang.org/api/option"
)

// GeminiClient is a client for the Google Gemini API.
type GeminiClient struct {
	model *genai.GenerativeModel
}

// NewGeminiClient creates a new GeminiClient.
// It requires the GEMINI_API_KEY environment variable to be set.
func NewGeminiClient(ctx context.Context, modelName string) (*GeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.Tagf(errors.ErrConfigurationMissing, "GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create genai client")
	}

	model := client.GenerativeModel(modelName)

	return &GeminiClient{
		model: model,
	}, nil
}

// Chat sends the persona and dialogue history to the Gemini API and returns
// the generated reply text.
func (g *GeminiClient) Chat(ctx context.Context, persona string, history []Message) (string, error) {
	if len(history) == 0 {
		return "", errors.New("gemini requires at least one message in the history")
	}

	if persona != "" {
		g.model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(persona)},
		}
	}

	contents := convertHistoryToGeminiContent(history)

	// The last message is the new prompt.
	lastMessage := contents[len(contents)-1]

	chatSession := g.model.StartChat()
	chatSession.History = contents[:len(contents)-1]
	resp, err := chatSession.SendMessage(ctx, lastMessage.Parts...)
	if err != nil {
		return "", providerFailure("Gemini", err)
	}

	return processGeminiResponse(resp)
}

// convertHistoryToGeminiContent converts our internal message format to Gemini's.
func convertHistoryToGeminiContent(history []Message) []*genai.Content {
	var contents []*genai.Content
	for _, msg := range history {
		role := "user" // Default to user
		if msg.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return contents
}

// processGeminiResponse extracts the reply text from a Gemini API response.
func processGeminiResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.Tagf(errors.ErrMalformedReply, "received an empty response from Gemini")
	}

	var responseContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseContent += string(text)
		}
	}

	if strings.TrimSpace(responseContent) == "" {
		return "", errors.Tagf(errors.ErrMalformedReply, "Gemini returned no text content")
	}
	return responseContent, nil
}
