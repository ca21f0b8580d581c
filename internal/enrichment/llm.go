// internal/enrichment/llm.go
package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	commonhttp "leadscout-workers/internal/common/http"
	"leadscout-workers/internal/common/logger"
	"leadscout-workers/internal/common/metrics"
)

var (
	ErrCompletionTimeout = errors.New("LLM_TIMEOUT")
	ErrCompletionFailed  = errors.New("LLM_COMPLETION_FAILED")
)

// CompletionClient runs a single prompt through a language model and
// returns the raw text response.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type GenAIConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	MaxRetries  int
	Timeout     time.Duration
}

// GenAIClient calls the GenAI gateway's generate endpoint with exponential
// backoff on transient failures.
type GenAIClient struct {
	config *GenAIConfig
	client *commonhttp.Client
	logger logger.Logger
}

func NewGenAIClient(config *GenAIConfig, log logger.Logger) *GenAIClient {
	return &GenAIClient{
		config: config,
		client: commonhttp.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{
			"component": "genai-client",
		}),
	}
}

func (c *GenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"model":           c.config.Model,
		"prompt":          prompt,
		"max_tokens":      c.config.MaxTokens,
		"temperature":     c.config.Temperature,
		"response_format": "json_object",
	}
	headers := map[string]string{}
	if c.config.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.config.APIKey
	}

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				metrics.LLMCalls.WithLabelValues("complete", "timeout").Inc()
				return "", ErrCompletionTimeout
			}
		}

		// PostJSON builds a fresh request per attempt so the body
		// reader is never reused across retries.
		resp, lastErr = c.client.PostJSON(ctx, c.config.BaseURL+"/api/ai/generate", headers, requestBody)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			metrics.LLMCalls.WithLabelValues("complete", "timeout").Inc()
			return "", ErrCompletionTimeout
		}
	}

	if lastErr != nil {
		metrics.LLMCalls.WithLabelValues("complete", "error").Inc()
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrCompletionTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrCompletionFailed, lastErr)
	}

	if resp == nil {
		metrics.LLMCalls.WithLabelValues("complete", "error").Inc()
		return "", fmt.Errorf("%w: no successful response after retries", ErrCompletionFailed)
	}
	defer resp.Body.Close()

	var apiResponse struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		metrics.LLMCalls.WithLabelValues("complete", "error").Inc()
		return "", fmt.Errorf("%w: decode error: %v", ErrCompletionFailed, err)
	}

	if strings.TrimSpace(apiResponse.Text) == "" {
		metrics.LLMCalls.WithLabelValues("complete", "error").Inc()
		return "", fmt.Errorf("%w: empty completion", ErrCompletionFailed)
	}

	metrics.LLMCalls.WithLabelValues("complete", "ok").Inc()
	return apiResponse.Text, nil
}
