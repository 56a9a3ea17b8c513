// Package assist talks to the external AI assist service over plain
// JSON HTTP. Every call degrades gracefully: rubric drafting returns
// no suggestions, feedback analysis returns a neutral result, and
// chat summaries fall back to a stock line. The workflow never
// depends on an answer arriving.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Fallback strings shown when the service is unavailable.
const (
	FallbackAnalysis = "Could not analyze feedback at this time. Please review manually."
	FallbackSummary  = "Summary unavailable."
	EmptyChatSummary = "No discussion yet."
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

// New builds a client for the assist service at baseURL. An empty
// baseURL disables the client; every call then returns its fallback
// immediately.
func New(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{},
		log:     logger,
	}
}

// Enabled reports whether an assist endpoint is configured.
func (c *Client) Enabled() bool { return c.baseURL != "" }

// RubricSuggestion is one proposed criterion from rubric drafting.
type RubricSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	MaxPoints   int    `json:"maxPoints"`
}

// DraftRubric asks the service to propose grading criteria for an
// assignment. Returns three to five suggestions with point values
// between 5 and 20, or nothing when the service fails; the teacher
// edits or writes criteria by hand either way.
func (c *Client) DraftRubric(ctx context.Context, title, description string) []RubricSuggestion {
	if !c.Enabled() {
		return nil
	}

	var out struct {
		Criteria []RubricSuggestion `json:"criteria"`
	}
	err := c.post(ctx, "/v1/rubric/draft", map[string]string{
		"title":       title,
		"description": description,
	}, &out)
	if err != nil {
		c.log.Warn("rubric draft failed", zap.Error(err))
		return nil
	}

	// Drop malformed entries rather than letting a bad point range
	// into the form.
	valid := out.Criteria[:0]
	for _, s := range out.Criteria {
		if s.Title == "" || s.MaxPoints < 5 || s.MaxPoints > 20 {
			continue
		}
		valid = append(valid, s)
	}
	if len(valid) > 5 {
		valid = valid[:5]
	}
	return valid
}

// FeedbackAnalysis is the service's read on a draft of written
// feedback.
type FeedbackAnalysis struct {
	Constructive bool   `json:"constructive"`
	Score        int    `json:"score"` // 0..100
	Suggestions  string `json:"suggestions"`
}

// AnalyzeFeedback rates a feedback draft for tone and usefulness
// against the rubric context. On any failure it returns a neutral
// pass so review submission is never blocked.
func (c *Client) AnalyzeFeedback(ctx context.Context, feedback, rubricContext string) FeedbackAnalysis {
	neutral := FeedbackAnalysis{Constructive: true, Score: 50, Suggestions: FallbackAnalysis}
	if !c.Enabled() {
		return neutral
	}

	var out FeedbackAnalysis
	err := c.post(ctx, "/v1/feedback/analyze", map[string]string{
		"feedback": feedback,
		"rubric":   rubricContext,
	}, &out)
	if err != nil {
		c.log.Warn("feedback analysis failed", zap.Error(err))
		return neutral
	}
	if out.Score < 0 || out.Score > 100 {
		return neutral
	}
	return out
}

// SummarizeChat condenses a discussion thread into a short digest.
func (c *Client) SummarizeChat(ctx context.Context, lines []string) string {
	if len(lines) == 0 {
		return EmptyChatSummary
	}
	if !c.Enabled() {
		return FallbackSummary
	}

	var out struct {
		Summary string `json:"summary"`
	}
	err := c.post(ctx, "/v1/chat/summarize", map[string]any{
		"messages": lines,
	}, &out)
	if err != nil || strings.TrimSpace(out.Summary) == "" {
		if err != nil {
			c.log.Warn("chat summary failed", zap.Error(err))
		}
		return FallbackSummary
	}
	return out.Summary
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, respBody)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
