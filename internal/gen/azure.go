package gen

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/ashvale/coach-labs/internal/domain"
)

// AzureClient is a Generator backed by an Azure OpenAI chat deployment.
type AzureClient struct {
	client     *azopenai.Client
	deployment string
}

// NewAzureClient creates a Generator using the provided Azure OpenAI
// credentials. The deployment name is used for all subsequent calls.
func NewAzureClient(endpoint, apiKey, deployment string) (*AzureClient, error) {
	keyCredential := azcore.NewKeyCredential(apiKey)
	client, err := azopenai.NewClientWithKeyCredential(endpoint, keyCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("create Azure OpenAI client: %w", err)
	}
	return &AzureClient{
		client:     client,
		deployment: deployment,
	}, nil
}

// Generate implements Generator.
func (c *AzureClient) Generate(ctx context.Context, messages []domain.Message, params Params) (string, error) {
	resp, err := c.client.GetChatCompletions(
		ctx,
		azopenai.ChatCompletionsOptions{
			DeploymentName: to.Ptr(c.deployment),
			Messages:       toChatMessages(messages),
			MaxTokens:      to.Ptr(params.MaxTokens),
			Temperature:    to.Ptr(params.Temperature),
			TopP:           to.Ptr(params.TopP),
		},
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == nil {
		return "", ErrEmptyCompletion
	}
	text := *resp.Choices[0].Message.Content
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func toChatMessages(messages []domain.Message) []azopenai.ChatRequestMessageClassification {
	out := make([]azopenai.ChatRequestMessageClassification, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			out = append(out, &azopenai.ChatRequestSystemMessage{
				Content: azopenai.NewChatRequestSystemMessageContent(m.Content),
			})
		case domain.RoleAssistant:
			out = append(out, &azopenai.ChatRequestAssistantMessage{
				Content: azopenai.NewChatRequestAssistantMessageContent(m.Content),
			})
		default:
			out = append(out, &azopenai.ChatRequestUserMessage{
				Content: azopenai.NewChatRequestUserMessageContent(m.Content),
			})
		}
	}
	return out
}
