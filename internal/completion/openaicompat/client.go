package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spigell/hr-screener/internal/completion"
	"github.com/spigell/hr-screener/internal/logger"

	openai "github.com/meguminnnnnnnnn/go-openai"
	"go.uber.org/zap"
)

// Client implements completion.Provider against any OpenAI-compatible
// chat-completions endpoint (Together, OpenRouter, litellm proxies and the
// OpenAI API itself). The base URL selects the service.
type Client struct {
	client    *openai.Client
	model     string
	logger    *zap.Logger
	maxLogLen int
}

// New creates a Client for the given endpoint. An empty baseURL means the
// OpenAI API.
func New(apiKey, baseURL, model string, maxLogLength int, log *zap.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("api key is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		return nil, errors.New("model is required")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		config.BaseURL = baseURL
	}

	return &Client{
		client:    openai.NewClientWithConfig(config),
		model:     model,
		logger:    logger.WithCommonFields(log, "openai-compatible", model),
		maxLogLen: maxLogLength,
	}, nil
}

// Complete sends the ordered message history and returns the first choice.
func (c *Client) Complete(ctx context.Context, messages []completion.Message, maxTokens int) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("openai-compatible client is not initialized")
	}

	if len(messages) == 0 {
		return "", errors.New("messages must not be empty")
	}

	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: toChatMessages(messages),
	}
	if maxTokens > 0 {
		req.MaxTokens = maxTokens
	}

	last := messages[len(messages)-1]
	c.logger.Debug("chat completion request",
		zap.Int("history_length", len(messages)),
		zap.Int("last_message_length", utf8.RuneCountInString(last.Content)),
		zap.String("last_message_preview", logger.TruncateForLog(last.Content, c.maxLogLen)),
	)

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned by model")
	}

	output := strings.TrimSpace(resp.Choices[0].Message.Content)
	if output == "" {
		return "", errors.New("model returned empty content")
	}

	c.logger.Debug("chat completion response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", logger.TruncateForLog(output, c.maxLogLen)),
	)

	return output, nil
}

func toChatMessages(messages []completion.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		role := openai.ChatMessageRoleUser
		if msg.Role == completion.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}

		out = append(out, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	return out
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}
