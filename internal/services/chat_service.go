package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"apnadoctor/internal/models/request_models"
	resp "apnadoctor/internal/models/response_models"
	"apnadoctor/pkg/utils"
)

const (
	chatHistoryTurns = 10

	chatSystemPrompt = `You are Apna Doctor, a friendly medical information assistant for an educational health app in India.
Answer health questions clearly and briefly. Never diagnose or prescribe. Suggest over-the-counter options only in general terms.
For chest pain, trouble breathing, heavy bleeding, fainting or stroke signs, tell the user to call 112 immediately.
Always remind the user to consult a qualified doctor.`

	ChatUnavailableReply = "I'm sorry, the AI assistant is temporarily unavailable. Please try again later, and consult a qualified doctor for any health concerns. In an emergency, call 112."
)

type ChatServiceInterface interface {
	Reply(ctx context.Context, request request_models.ChatRequest) (*resp.ChatResponse, error)
}

type ChatService struct {
	llm utils.LLMClientInterface
	log *zap.Logger
}

// NewChatService accepts a nil llm; every reply is then the unavailable message.
func NewChatService(llm utils.LLMClientInterface, log *zap.Logger) ChatServiceInterface {
	return &ChatService{llm: llm, log: log.Named("chat")}
}

// ChatMessages keeps the last ten history turns and appends the new user message.
func ChatMessages(request request_models.ChatRequest) []utils.LLMMessage {
	history := request.History
	if len(history) > chatHistoryTurns {
		history = history[len(history)-chatHistoryTurns:]
	}

	msgs := make([]utils.LLMMessage, 0, len(history)+1)
	for _, turn := range history {
		role := utils.LLMRoleUser
		if turn.Role == "assistant" {
			role = utils.LLMRoleAssistant
		}
		msgs = append(msgs, utils.LLMMessage{Role: role, Content: turn.Content})
	}
	return append(msgs, utils.LLMMessage{Role: utils.LLMRoleUser, Content: request.Message})
}

func (c *ChatService) Reply(ctx context.Context, request request_models.ChatRequest) (*resp.ChatResponse, error) {
	if c.llm == nil {
		return &resp.ChatResponse{Reply: ChatUnavailableReply}, nil
	}

	reply, err := c.llm.Complete(ctx, utils.LLMRequest{
		System:      chatSystemPrompt,
		Messages:    ChatMessages(request),
		Temperature: 0.7,
		MaxTokens:   1024,
	})
	if err != nil || strings.TrimSpace(reply) == "" {
		c.log.Warn("chat completion failed", zap.Error(err))
		return &resp.ChatResponse{Reply: ChatUnavailableReply}, nil
	}
	return &resp.ChatResponse{Reply: strings.TrimSpace(reply)}, nil
}
