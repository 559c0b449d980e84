package interview_test

import (
	"encoding/json"
	"testing"

	"github.com/mishrasarthak227/ai-interview-agent/internal/model/interview"
)

func TestMetricsScored(t *testing.T) {
	if !(interview.Metrics{Pace: 50}).Scored() {
		t.Fatal("metrics without the error flag are scored")
	}
	if interview.ErrorMetrics().Scored() {
		t.Fatal("the sentinel must not count as scored")
	}
}

func TestEntryHistoryFieldNames(t *testing.T) {
	entry := interview.Entry{
		Question: "q",
		Answer:   "a",
		Metrics:  interview.Metrics{Pace: 80, Confidence: 70, Tone: 60, Summary: "s"},
	}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal entry: %v", err)
	}

	// The remote backend consumes these exact names.
	var raw map[string]any
	json.Unmarshal(data, &raw)
	for _, key := range []string{"question", "answer", "audio_metrics", "timestamp"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("missing history field %q in %s", key, data)
		}
	}
	metrics := raw["audio_metrics"].(map[string]any)
	for _, key := range []string{"pace_score", "confidence_score", "tone_score", "analysis_summary"} {
		if _, ok := metrics[key]; !ok {
			t.Fatalf("missing metrics field %q in %s", key, data)
		}
	}
	if _, ok := metrics["error"]; ok {
		t.Fatal("error flag must be omitted for scored metrics")
	}
}

func TestArtifactFilename(t *testing.T) {
	cases := []struct {
		mime string
		want string
	}{
		{"audio/wav", "answer_ab12cd34.wav"},
		{"audio/webm", "answer_ab12cd34.webm"},
		{"audio/mpeg", "answer_ab12cd34.mp3"},
		{"", "answer_ab12cd34.wav"},
	}
	for _, tc := range cases {
		a := interview.RecordingArtifact{ID: "ab12cd34", MIMEType: tc.mime}
		if got := a.Filename(); got != tc.want {
			t.Fatalf("mime %q: got %q want %q", tc.mime, got, tc.want)
		}
	}
}
