package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/guide/internal/domain"
	"github.com/kailas-cloud/guide/internal/metrics"
)

const systemPrompt = "You are a city guide assistant. Answer only from the provided context. " +
	"If the context does not contain the answer, say so. Reply in the language given by the tag %q."

// Answerer answers follow-up questions with an OpenAI-compatible chat completion API.
type Answerer struct {
	client *openai.Client
	model  string
	user   string
	logger *zap.Logger
}

// NewAnswerer creates a chat completion client.
func NewAnswerer(cfg *Config) *Answerer {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Answerer{
		client: newClient(cfg),
		model:  cfg.Model,
		user:   cfg.User,
		logger: logger,
	}
}

// Answer implements domain.Answerer.
func (a *Answerer) Answer(ctx context.Context, req domain.AnswerRequest) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: a.model,
		User:  a.user,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(systemPrompt, req.Lang)},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(req)},
		},
	}

	start := time.Now()

	resp, err := a.client.CreateChatCompletion(ctx, chatReq)

	duration := time.Since(start)

	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues(a.model, "error").Inc()
		return "", parseAPIError("chat", err, domain.ErrAnswerProviderError)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		metrics.ChatRequestsTotal.WithLabelValues(a.model, "error").Inc()
		return "", fmt.Errorf("empty chat response: %w", domain.ErrAnswerProviderError)
	}

	metrics.ChatRequestsTotal.WithLabelValues(a.model, "success").Inc()
	metrics.ChatRequestDuration.WithLabelValues(a.model).Observe(duration.Seconds())

	a.logger.Debug("Chat completion finished",
		zap.String("model", a.model),
		zap.Duration("duration", duration),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (a *Answerer) HealthCheck(ctx context.Context) error {
	if _, err := a.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func userPrompt(req domain.AnswerRequest) string {
	var b strings.Builder
	b.WriteString("Name: ")
	b.WriteString(req.Subject)
	b.WriteString("\nContext:\n")
	b.WriteString(req.Knowledge)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(req.Question)
	return b.String()
}
