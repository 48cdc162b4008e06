// Package openai implements the AI assistant collaborator on an
// OpenAI-compatible chat-completion API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/erpworks/tablescout/internal/domain"
	"github.com/erpworks/tablescout/internal/metrics"
)

// extractSystemPrompt is the fixed instruction for keyword extraction.
// The response must be a JSON array; anything else trips the caller's
// deterministic fallback.
const extractSystemPrompt = `You are an SAP expert extracting keywords for table search with migration awareness.

CONTEXT: SAP ECC end of life is 2027. Prioritize migration-related terms.

Extract 2-5 keywords prioritizing:
1. Migration terms (ecc, s4hana, deprecated, acdoca)
2. Business processes (vendor, payment, invoice, material)
3. SAP modules (FI, MM, SD, HR, etc.)
4. Technical terms (document, master, transaction)

Return ONLY a JSON array of keywords.
Example: ["vendor", "payment", "migration", "FI"]`

// Assistant is a best-effort chat-completion client. Both operations are
// bounded by a per-call timeout; failures come back wrapped in
// domain.ErrAssistantUnavailable and callers degrade to their fallback.
type Assistant struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// Config holds the assistant provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewAssistant creates an OpenAI-compatible assistant client.
func NewAssistant(cfg *Config) *Assistant {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Assistant{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
}

// ExtractKeywords asks the assistant for SAP keywords relevant to the
// query and returns the raw response text (expected to be a JSON array).
func (a *Assistant) ExtractKeywords(ctx context.Context, query string) (string, error) {
	return a.complete(ctx, "extract_keywords", openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Extract SAP keywords from: %q", query)},
		},
		MaxTokens:   100,
		Temperature: 0.3,
	})
}

// Explain asks the assistant for a free-form explanation under the given
// context-specific system prompt.
func (a *Assistant) Explain(ctx context.Context, systemPrompt, query string) (string, error) {
	return a.complete(ctx, "explain", openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Provide a helpful explanation for: %q", query)},
		},
		MaxTokens:   300,
		Temperature: 0.7,
	})
}

func (a *Assistant) complete(ctx context.Context, op string, req openai.ChatCompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues(op, "error").Inc()
		return "", parseAPIError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		metrics.AssistantRequestsTotal.WithLabelValues(op, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrAssistantUnavailable)
	}

	metrics.AssistantRequestsTotal.WithLabelValues(op, "success").Inc()
	metrics.AssistantRequestDuration.WithLabelValues(op).Observe(duration.Seconds())

	return resp.Choices[0].Message.Content, nil
}

// parseAPIError extracts a readable error from the API response. All errors
// are wrapped with domain.ErrAssistantUnavailable so callers can degrade
// without inspecting provider details.
func parseAPIError(err error) error {
	wrap := domain.ErrAssistantUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("assistant API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("assistant API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("assistant request failed: %w", wrap)
}
