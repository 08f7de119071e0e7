// Package classifier adapts the Anthropic Messages API to the topic
// extraction and governance triage contracts.
package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"github.com/heartmarshall/civic-topics-backend/internal/config"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
	"github.com/heartmarshall/civic-topics-backend/pkg/llmjson"
)

// Client calls the classifier model. Requests are throttled to the
// configured rate and bounded by the configured timeout.
type Client struct {
	api       anthropic.Client
	model     string
	maxTokens int64
	timeout   time.Duration
	limiter   *rate.Limiter
	log       *slog.Logger
}

// New creates a classifier client from configuration. Extra request options
// are appended after the configured ones.
func New(cfg config.ClassifierConfig, log *slog.Logger, opts ...option.RequestOption) *Client {
	base := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}

	perMinute := cfg.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 1
	}

	return &Client{
		api:       anthropic.NewClient(append(base, opts...)...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		log:       log.With("adapter", "classifier"),
	}
}

// ExtractTopics tags each agenda item of a meeting with topic names.
func (c *Client) ExtractTopics(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResponse, error) {
	payload, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal extraction request: %w", err)
	}

	text, err := c.complete(ctx, extractionSystemPrompt, buildExtractionPrompt(string(payload)))
	if err != nil {
		return nil, fmt.Errorf("extract topics: %w", err)
	}

	var resp domain.ExtractionResponse
	if err := decode(text, &resp); err != nil {
		return nil, fmt.Errorf("extract topics: %w", err)
	}
	return &resp, nil
}

// Triage asks for merge, approve and block decisions on proposed topics.
func (c *Client) Triage(ctx context.Context, req domain.TriageRequest) (*domain.TriageResponse, error) {
	payload, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal triage request: %w", err)
	}

	text, err := c.complete(ctx, triageSystemPrompt, buildTriagePrompt(string(payload)))
	if err != nil {
		return nil, fmt.Errorf("triage: %w", err)
	}

	var resp domain.TriageResponse
	if err := decode(text, &resp); err != nil {
		return nil, fmt.Errorf("triage: %w", err)
	}
	if err := resp.Validate(); err != nil {
		return nil, fmt.Errorf("triage: %w", err)
	}
	return &resp, nil
}

func (c *Client) complete(ctx context.Context, system, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("messages api: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	c.log.DebugContext(ctx, "classifier call",
		slog.String("model", c.model),
		slog.Duration("elapsed", time.Since(start)),
		slog.Int64("input_tokens", msg.Usage.InputTokens),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)

	if b.Len() == 0 {
		return "", fmt.Errorf("%w: empty response", domain.ErrMalformedResponse)
	}
	return b.String(), nil
}

func decode(text string, dst any) error {
	if err := llmjson.Decode(text, dst); err != nil {
		if errors.Is(err, llmjson.ErrNoJSON) {
			return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
		}
		return err
	}
	return nil
}
