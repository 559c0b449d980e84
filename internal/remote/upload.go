package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mishrasarthak227/ai-interview-agent/internal/model/interview"
)

// uploadFieldName is the multipart field the scoring service expects.
const uploadFieldName = "file"

type rawUploadResponse struct {
	Transcript   string          `json:"transcript"`
	AudioMetrics json.RawMessage `json:"audio_metrics"`
}

type rawMetrics struct {
	Error           json.RawMessage `json:"error"`
	PaceScore       float64         `json:"pace_score"`
	ConfidenceScore float64         `json:"confidence_score"`
	ToneScore       float64         `json:"tone_score"`
	AnalysisSummary string          `json:"analysis_summary"`
}

// Upload sends the finished clip as a single multipart payload and maps the
// response into the session's vocabulary. It never retries; a failed upload
// leaves the artifact with the recorder for resubmission.
func (c *Client) Upload(ctx context.Context, artifact interview.RecordingArtifact) (interview.UploadResult, error) {
	var out rawUploadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader(uploadFieldName, artifact.Filename(), bytes.NewReader(artifact.Data)).
		SetResult(&out).
		Post("/upload_audio")
	if err != nil {
		return interview.UploadResult{}, fmt.Errorf("scoring service: %w", err)
	}
	if resp.IsError() {
		return interview.UploadResult{}, fmt.Errorf("scoring service returned %s", resp.Status())
	}

	return interview.UploadResult{
		Transcript: strings.TrimSpace(out.Transcript),
		Metrics:    normalizeMetrics(out.AudioMetrics),
	}, nil
}

// normalizeMetrics converts the raw audio_metrics object into Metrics,
// substituting the ErrorMetrics sentinel when the field is missing, flagged
// erroneous or malformed. Malformed data never reaches the ledger.
func normalizeMetrics(raw json.RawMessage) interview.Metrics {
	if len(raw) == 0 || string(raw) == "null" {
		return interview.ErrorMetrics()
	}

	var m rawMetrics
	if err := json.Unmarshal(raw, &m); err != nil {
		return interview.ErrorMetrics()
	}
	if len(m.Error) > 0 && string(m.Error) != "null" && string(m.Error) != "false" {
		return interview.ErrorMetrics()
	}

	return interview.Metrics{
		Pace:       roundScore(m.PaceScore),
		Confidence: roundScore(m.ConfidenceScore),
		Tone:       roundScore(m.ToneScore),
		Summary:    strings.TrimSpace(m.AnalysisSummary),
	}
}
