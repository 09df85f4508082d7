package llm

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/m4xw311/duolog/errors"
)

// BedrockClient is a client for the Anthropic models on AWS Bedrock.
type BedrockClient struct {
	client  *bedrockruntime.Client
	modelID string
	region  string
}

// NewBedrockClient creates a new BedrockClient.
// It requires AWS credentials to be configured in the environment.
func NewBedrockClient(ctx context.Context, modelID string) (*BedrockClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load AWS config")
	}

	client := bedrockruntime.NewFromConfig(cfg)

	// Get region from config or environment
	region := cfg.Region
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = "us-east-1" // Default region
	}

	return &BedrockClient{
		client:  client,
		modelID: modelID,
		region:  region,
	}, nil
}

// Chat sends the persona and dialogue history to the Anthropic model via AWS
// Bedrock and returns the generated reply text.
func (b *BedrockClient) Chat(ctx context.Context, persona string, history []Message) (string, error) {
	requestBody, err := createBedrockRequest(persona, history)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create Bedrock request")
	}

	resp, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Body:        requestBody,
	})
	if err != nil {
		return "", providerFailure("Bedrock", err)
	}

	return processBedrockResponse(resp.Body)
}

// createBedrockRequest creates the request body for Anthropic models on Bedrock.
func createBedrockRequest(persona string, history []Message) ([]byte, error) {
	var messages []map[string]interface{}
	for _, msg := range history {
		role := "user"
		if msg.Role == "assistant" {
			role = "assistant"
		}
		messages = append(messages, map[string]interface{}{
			"role": role,
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": msg.Content,
				},
			},
		})
	}

	request := map[string]interface{}{
		"anthropic_version": "bedrock-2023-05-31",
		"max_tokens":        1024,
		"messages":          messages,
	}

	if persona != "" {
		request["system"] = persona
	}

	return json.Marshal(request)
}

// processBedrockResponse extracts the reply text from a Bedrock API response.
func processBedrockResponse(body []byte) (string, error) {
	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", errors.Wrapf(err, "failed to unmarshal Bedrock response")
	}

	if errMsg, ok := response["error"]; ok {
		return "", errors.New("Bedrock API error: %v", errMsg)
	}

	content, ok := response["content"]
	if !ok {
		return "", errors.Tagf(errors.ErrMalformedReply, "Bedrock response has no content")
	}

	contentArray, ok := content.([]interface{})
	if !ok {
		return "", errors.Tagf(errors.ErrMalformedReply, "Bedrock content is not an array")
	}

	var responseContent string
	for _, item := range contentArray {
		block, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if block["type"] == "text" {
			if text, ok := block["text"].(string); ok {
				responseContent += text
			}
		}
	}

	if strings.TrimSpace(responseContent) == "" {
		return "", errors.Tagf(errors.ErrMalformedReply, "Bedrock returned no text content")
	}
	return responseContent, nil
}
