// Package feedback asks an OpenAI-compatible chat endpoint for study advice
// based on a user's per-topic accuracy.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Manirmaths/Naijaprep/internal/domain/quiz"
	"github.com/Manirmaths/Naijaprep/internal/infrastructure/config"
)

type Advisor interface {
	Advise(ctx context.Context, stats []quiz.TopicSummary) (string, error)
}

// AdviceError is returned when the provider could not produce advice, as
// opposed to the feature being unconfigured.
type AdviceError struct {
	Reason  string
	Wrapped error
}

func (e *AdviceError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("feedback failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("feedback failed: %s", e.Reason)
}

func (e *AdviceError) Unwrap() error {
	return e.Wrapped
}

const (
	systemPrompt = "You are a helpful math tutor. Keep feedback concise and use LaTeX where appropriate."
	maxTokens    = 200
	temperature  = 0.7
	maxRetries   = 2
)

// OpenAIAdvisor calls /v1/chat/completions on an OpenAI-compatible server.
type OpenAIAdvisor struct {
	url    string
	model  string
	apiKey string
	client *http.Client
}

// Compile-time check: *OpenAIAdvisor satisfies the Advisor interface.
var _ Advisor = (*OpenAIAdvisor)(nil)

// FromConfig builds the advisor configured by cfg. It fails with
// *config.MissingError when no API key is set.
func FromConfig(cfg *config.Config) (*OpenAIAdvisor, error) {
	if err := cfg.RequireOpenAIKey(); err != nil {
		return nil, err
	}
	return NewOpenAIAdvisor(cfg.OpenAIURL, cfg.OpenAIModel, cfg.OpenAIKey)
}

// NewOpenAIAdvisor fails with *config.MissingError when apiKey is empty.
func NewOpenAIAdvisor(url, model, apiKey string) (*OpenAIAdvisor, error) {
	if apiKey == "" {
		return nil, &config.MissingError{Key: "OPENAI_API_KEY", Feature: "AI feedback"}
	}
	return &OpenAIAdvisor{
		url:    strings.TrimRight(url, "/"),
		model:  model,
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (a *OpenAIAdvisor) Advise(ctx context.Context, stats []quiz.TopicSummary) (string, error) {
	prompt := buildPrompt(stats)

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		content, err := a.complete(ctx, prompt)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	return "", &AdviceError{
		Reason:  fmt.Sprintf("failed after %d attempts", maxRetries),
		Wrapped: lastErr,
	}
}

// buildPrompt lists each topic as "topic: correct/total (pct%)".
func buildPrompt(stats []quiz.TopicSummary) string {
	var b strings.Builder
	b.WriteString("Based on the following topic statistics, provide concise feedback and study ")
	b.WriteString("recommendations in LaTeX-friendly format (use \\( \\) for equations):\n")
	for i, s := range stats {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s: %d/%d (%.1f%%)", s.Topic, s.Correct, s.Total, s.Percentage)
	}
	return b.String()
}

// ── Wire types ──────────────────────────────────────────────────────

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (a *OpenAIAdvisor) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat endpoint returned status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("chat endpoint returned no choices")
	}

	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("chat endpoint returned empty content")
	}
	return content, nil
}

// Disabled is an Advisor that always fails with the configuration error
// that prevented the real one from being built.
type Disabled struct {
	Err error
}

func (d Disabled) Advise(context.Context, []quiz.TopicSummary) (string, error) {
	return "", d.Err
}
