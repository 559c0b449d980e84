package remote_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mishrasarthak227/ai-interview-agent/internal/model/interview"
	"github.com/mishrasarthak227/ai-interview-agent/internal/remote"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *remote.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return remote.NewClient(remote.Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func TestGenerateQuestion(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate_question" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"question": "  Tell me about yourself.  "}`)
	})

	question, err := client.GenerateQuestion(context.Background(), "AI Engineer", 3, nil)
	if err != nil {
		t.Fatalf("GenerateQuestion err: %v", err)
	}
	if question != "Tell me about yourself." {
		t.Fatalf("unexpected question: %q", question)
	}

	if got["job_title"] != "AI Engineer" {
		t.Fatalf("unexpected job_title: %v", got["job_title"])
	}
	if got["question_num"] != float64(3) {
		t.Fatalf("unexpected question_num: %v", got["question_num"])
	}
	// nil history must serialize as an empty array, not null.
	if history, ok := got["history"].([]any); !ok || history == nil {
		t.Fatalf("history must be an array: %v", got["history"])
	}
}

func TestGenerateQuestionServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := client.GenerateQuestion(context.Background(), "AI Engineer", 1, nil); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestGenerateQuestionEmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	})

	question, err := client.GenerateQuestion(context.Background(), "AI Engineer", 1, nil)
	if err != nil {
		t.Fatalf("GenerateQuestion err: %v", err)
	}
	if question != "" {
		t.Fatalf("expected empty question, got %q", question)
	}
}

func clip() interview.RecordingArtifact {
	return interview.RecordingArtifact{
		ID:       "abc12345",
		Data:     []byte("RIFFfakewav"),
		MIMEType: "audio/wav",
		Duration: 2 * time.Second,
	}
}

func TestUploadScoredAnswer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload_audio" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("multipart field file: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "answer_abc12345.wav" {
			t.Errorf("unexpected filename: %s", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "RIFFfakewav" {
			t.Errorf("clip bytes corrupted in transit")
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"transcript": " I led the migration project. ",
			"audio_metrics": {
				"pace_score": 82.5,
				"confidence_score": 74.4,
				"tone_score": 69.5,
				"analysis_summary": "good pacing, confident delivery."
			}
		}`)
	})

	result, err := client.Upload(context.Background(), clip())
	if err != nil {
		t.Fatalf("Upload err: %v", err)
	}
	if result.Transcript != "I led the migration project." {
		t.Fatalf("unexpected transcript: %q", result.Transcript)
	}
	m := result.Metrics
	if !m.Scored() {
		t.Fatal("expected scored metrics")
	}
	// Fractional scores round half-up.
	if m.Pace != 83 || m.Confidence != 74 || m.Tone != 70 {
		t.Fatalf("unexpected scores: %+v", m)
	}
	if m.Summary != "good pacing, confident delivery." {
		t.Fatalf("unexpected summary: %q", m.Summary)
	}
}

func TestUploadMetricsNormalization(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing metrics", `{"transcript": "hello"}`},
		{"null metrics", `{"transcript": "hello", "audio_metrics": null}`},
		{"error flagged", `{"transcript": "hello", "audio_metrics": {"error": "could not analyze audio"}}`},
		{"malformed metrics", `{"transcript": "hello", "audio_metrics": {"pace_score": "fast"}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, tc.body)
			})

			result, err := client.Upload(context.Background(), clip())
			if err != nil {
				t.Fatalf("Upload err: %v", err)
			}
			if result.Transcript != "hello" {
				t.Fatalf("transcript lost: %q", result.Transcript)
			}
			if result.Metrics.Scored() {
				t.Fatalf("expected the error sentinel, got %+v", result.Metrics)
			}
		})
	}
}

func TestUploadServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "storage full", http.StatusBadGateway)
	})

	if _, err := client.Upload(context.Background(), clip()); err == nil {
		t.Fatal("expected error for 502 response")
	}
}

func TestEvaluate(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/evaluate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"evaluation": "Solid answers with room to grow."}`)
	})

	history := []interview.Entry{{Question: "q1", Answer: "a1"}}
	narrative, err := client.Evaluate(context.Background(), "Data Analyst", history)
	if err != nil {
		t.Fatalf("Evaluate err: %v", err)
	}
	if narrative != "Solid answers with room to grow." {
		t.Fatalf("unexpected narrative: %q", narrative)
	}

	if got["job_title"] != "Data Analyst" {
		t.Fatalf("unexpected job_title: %v", got["job_title"])
	}
	if _, present := got["model"]; present {
		t.Fatal("model must be omitted when not configured")
	}
	entries, ok := got["history"].([]any)
	if !ok || len(entries) != 1 {
		t.Fatalf("unexpected history payload: %v", got["history"])
	}
}

func TestEvaluateSendsConfiguredModel(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"evaluation": "ok"}`)
	}))
	defer srv.Close()

	client := remote.NewClient(remote.Config{BaseURL: srv.URL, EvalModel: "gpt-4o-mini"})
	if _, err := client.Evaluate(context.Background(), "Data Analyst", nil); err != nil {
		t.Fatalf("Evaluate err: %v", err)
	}
	if got["model"] != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %v", got["model"])
	}
}

func TestClientUnreachableBackend(t *testing.T) {
	client := remote.NewClient(remote.Config{
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	})

	if _, err := client.GenerateQuestion(context.Background(), "AI Engineer", 1, nil); err == nil {
		t.Fatal("expected transport error")
	}
	if _, err := client.Evaluate(context.Background(), "AI Engineer", nil); err == nil {
		t.Fatal("expected transport error")
	}
	if _, err := client.Upload(context.Background(), clip()); err == nil ||
		!strings.Contains(err.Error(), "scoring service") {
		t.Fatalf("expected wrapped scoring service error, got %v", err)
	}
}
