package remote

import (
	"context"
	"fmt"
	"strings"

	"github.com/mishrasarthak227/ai-interview-agent/internal/model/interview"
)

type questionRequest struct {
	JobTitle    string            `json:"job_title"`
	QuestionNum int               `json:"question_num"`
	History     []interview.Entry `json:"history"`
}

type questionResponse struct {
	Question string `json:"question"`
}

// GenerateQuestion asks the remote generator for the next question given the
// session so far. An empty question in a well-formed response is returned as
// an empty string; the caller decides how to present it.
func (c *Client) GenerateQuestion(ctx context.Context, jobRole string, questionNum int, history []interview.Entry) (string, error) {
	if history == nil {
		history = []interview.Entry{}
	}

	var out questionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(questionRequest{JobTitle: jobRole, QuestionNum: questionNum, History: history}).
		SetResult(&out).
		Post("/generate_question")
	if err != nil {
		return "", fmt.Errorf("question generator: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("question generator returned %s", resp.Status())
	}

	return strings.TrimSpace(out.Question), nil
}
