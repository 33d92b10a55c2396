package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// VisionClientInterface answers a prompt about a single binary document (image or PDF).
type VisionClientInterface interface {
	AnalyzeDocument(ctx context.Context, prompt, mimeType string, data []byte) (string, error)
}

type GeminiVisionClient struct {
	client *genai.Client
	model  string
}

func NewGeminiVisionClient(ctx context.Context, apiKey, model string) (*GeminiVisionClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiVisionClient{client: client, model: model}, nil
}

func (c *GeminiVisionClient) AnalyzeDocument(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.2)

	resp, err := m.GenerateContent(ctx, genai.Blob{MIMEType: mimeType, Data: data}, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("gemini: empty text")
	}
	return sb.String(), nil
}

func (c *GeminiVisionClient) Close() error {
	return c.client.Close()
}
