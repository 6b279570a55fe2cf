package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// OpenAI is the Completer for OpenAI-compatible gateways, including
// self-hosted Ollama instances exposing the chat-completions dialect.
type OpenAI struct {
	llm     llms.Model
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func NewOpenAI(baseURL, token, model string, timeout time.Duration, logger *zap.Logger) (*OpenAI, error) {
	llm, err := openai.New(
		openai.WithToken(token),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}

	return &OpenAI{
		llm:     llm,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	reply, err := completeWithRetry(ctx, func(ctx context.Context) (string, error) {
		completion, err := llms.GenerateFromSinglePrompt(ctx, o.llm, prompt)
		if err != nil {
			return "", err
		}
		text := strings.TrimSpace(completion)
		if text == "" {
			return "", fmt.Errorf("empty response from model %s", o.model)
		}
		return text, nil
	})
	if err != nil {
		o.logger.Error("completion failed", zap.String("model", o.model), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return reply, nil
}
