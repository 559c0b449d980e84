package remote

import (
	"context"
	"fmt"
	"strings"

	"github.com/mishrasarthak227/ai-interview-agent/internal/model/interview"
)

type evaluateRequest struct {
	JobTitle string            `json:"job_title"`
	History  []interview.Entry `json:"history"`
	Model    string            `json:"model,omitempty"`
}

type evaluateResponse struct {
	Evaluation string `json:"evaluation"`
}

// Evaluate sends the full session history to the external evaluator and
// returns the narrative report.
func (c *Client) Evaluate(ctx context.Context, jobRole string, history []interview.Entry) (string, error) {
	if history == nil {
		history = []interview.Entry{}
	}

	var out evaluateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(evaluateRequest{JobTitle: jobRole, History: history, Model: c.evalModel}).
		SetResult(&out).
		Post("/evaluate")
	if err != nil {
		return "", fmt.Errorf("evaluator: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("evaluator returned %s", resp.Status())
	}

	return strings.TrimSpace(out.Evaluation), nil
}
