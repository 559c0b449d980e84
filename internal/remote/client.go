// Package remote holds the clients for the three external collaborators:
// the question generator, the answer scoring service and the final
// evaluator. Each call is plain request/response; retry policy belongs to
// the caller.
package remote

import (
	"math"
	"time"

	"github.com/go-resty/resty/v2"
)

// Config locates the interview backend.
type Config struct {
	// BaseURL is the root of the remote API, e.g. "http://localhost:8000".
	BaseURL string
	// Timeout bounds each request; a hung request past this point surfaces
	// as a transport error.
	Timeout time.Duration
	// EvalModel optionally overrides the model the evaluator runs on.
	EvalModel string
}

// Client talks to the remote interview backend.
type Client struct {
	http      *resty.Client
	evalModel string
}

// NewClient builds a client for the configured backend.
func NewClient(cfg Config) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}
	return &Client{http: httpClient, evalModel: cfg.EvalModel}
}

// roundScore applies round-half-up and clamps into the 0-100 score range.
func roundScore(v float64) int {
	n := int(math.Floor(v + 0.5))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
