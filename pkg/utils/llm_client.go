package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	LLMRoleUser      = openai.ChatMessageRoleUser
	LLMRoleAssistant = openai.ChatMessageRoleAssistant
	LLMRoleSystem    = openai.ChatMessageRoleSystem
)

type LLMMessage struct {
	Role    string
	Content string
}

type LLMRequest struct {
	System      string
	Messages    []LLMMessage
	Temperature float32
	MaxTokens   int
}

// LLMClientInterface is a single-shot chat completion against any OpenAI-compatible endpoint.
type LLMClientInterface interface {
	Complete(ctx context.Context, req LLMRequest) (string, error)
}

type OpenAICompatibleClient struct {
	client *openai.Client
	model  string
}

// NewOpenAICompatibleClient points go-openai at baseURL, e.g. Groq's /openai/v1.
func NewOpenAICompatibleClient(apiKey, baseURL, model string) *OpenAICompatibleClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAICompatibleClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *OpenAICompatibleClient) Complete(ctx context.Context, req LLMRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("chat completion: empty content")
	}
	return content, nil
}
