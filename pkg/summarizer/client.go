// Package summarizer provides a client for Hugging Face hosted summarization models.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"curalink-go/internal/config"
	"curalink-go/pkg/log"
	"curalink-go/pkg/metrics"
)

// ErrEmptySummary 表示模型返回了成功状态但没有可用的摘要文本。
var ErrEmptySummary = errors.New("summarizer returned no summary text")

// Client defines the interface for a summarization client.
type Client interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type huggingFaceClient struct {
	cfg    config.SummarizerConfig
	client *http.Client
}

// NewClient creates a new summarization client for the Hugging Face Inference API.
func NewClient(cfg config.SummarizerConfig) Client {
	return &huggingFaceClient{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

type summarizeRequest struct {
	Inputs string `json:"inputs"`
}

type summarizeResponse []struct {
	SummaryText string `json:"summary_text"`
}

type errorResponse struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}

// Summarize 对一段长文本生成摘要。
func (c *huggingFaceClient) Summarize(ctx context.Context, text string) (string, error) {
	log.Infof("[Summarizer] 开始调用摘要模型, model: %s, input_len: %d", c.cfg.Model, len(text))
	reqBytes, err := json.Marshal(summarizeRequest{Inputs: text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal summarize request: %w", err)
	}

	defer metrics.ObserveUpstream("huggingface", "summarize", time.Now())

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + c.cfg.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create summarize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send summarize request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read summarize response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var er errorResponse
		if json.Unmarshal(body, &er) == nil && er.Error != "" {
			return "", fmt.Errorf("summarize API returned status %d: %s", resp.StatusCode, er.Error)
		}
		return "", fmt.Errorf("summarize API returned non-200 status: %d", resp.StatusCode)
	}

	var sr summarizeResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return "", fmt.Errorf("failed to decode summarize response: %w", err)
	}
	if len(sr) == 0 || strings.TrimSpace(sr[0].SummaryText) == "" {
		return "", ErrEmptySummary
	}
	return strings.TrimSpace(sr[0].SummaryText), nil
}
