// Command rehearse runs a voice interview rehearsal in the terminal: it
// fetches questions from the remote backend, records answers from the
// microphone and prints the scored feedback and final evaluation.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mishrasarthak227/ai-interview-agent/internal/analysis/delivery"
	"github.com/mishrasarthak227/ai-interview-agent/internal/capture"
	"github.com/mishrasarthak227/ai-interview-agent/internal/config"
	"github.com/mishrasarthak227/ai-interview-agent/internal/model/role"
	"github.com/mishrasarthak227/ai-interview-agent/internal/recorder"
	"github.com/mishrasarthak227/ai-interview-agent/internal/remote"
	"github.com/mishrasarthak227/ai-interview-agent/internal/report"
	"github.com/mishrasarthak227/ai-interview-agent/internal/service/session"
)

func main() {
	roleFlag := flag.String("role", "", "job role to rehearse for (defaults to INTERVIEW_JOB_ROLE)")
	outFlag := flag.String("out", "", "write the session export as JSON to this file")
	listRoles := flag.Bool("roles", false, "list the suggested job roles and exit")
	flag.Parse()

	if *listRoles {
		for _, r := range role.Seed() {
			fmt.Printf("  %-22s %s\n", r.ID, r.Title)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Keep structured logs out of the interview transcript.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	jobRole := strings.TrimSpace(*roleFlag)
	if jobRole == "" {
		jobRole = cfg.Session.DefaultRole
	}
	if r, ok := role.NewMemoryStore(role.Seed()).FindByID(jobRole); ok {
		jobRole = r.Title
	}

	client := remote.NewClient(remote.Config{
		BaseURL:   cfg.Remote.BaseURL,
		Timeout:   cfg.Remote.Timeout,
		EvalModel: cfg.Remote.EvalModel,
	})

	controller := session.NewController(client, client, session.Config{
		QuestionCap:   cfg.Session.QuestionCap,
		FollowupDelay: cfg.Session.FollowupDelay,
		AutoAdvance:   false,
	}, slog.Default())
	if err := controller.SetJobRole(jobRole); err != nil {
		log.Fatalf("invalid job role: %v", err)
	}

	mic := capture.NewMicDevice(capture.MicConfig{
		SampleRate:      cfg.Capture.SampleRate,
		Channels:        cfg.Capture.Channels,
		FramesPerBuffer: cfg.Capture.FramesPerBuffer,
	})
	rec := recorder.New(mic, client, recorder.Config{
		SampleRate: cfg.Capture.SampleRate,
		Channels:   cfg.Capture.Channels,
	}, slog.Default())

	fmt.Printf("Interview rehearsal for: %s (%d questions)\n", jobRole, cfg.Session.QuestionCap)
	fmt.Println("Press Ctrl+C at any time to stop early and get your evaluation.")

	in := bufio.NewScanner(os.Stdin)
	runInterview(ctx, in, controller, rec, cfg.Session.QuestionCap)

	finishSession(ctx, controller, *outFlag)
}

func runInterview(ctx context.Context, in *bufio.Scanner, controller *session.Controller, rec *recorder.Recorder, questionCap int) {
	for num := 1; num <= questionCap; num++ {
		if ctx.Err() != nil {
			return
		}

		question, err := controller.RequestNextQuestion(ctx)
		if err != nil {
			slog.Warn("question request failed", "error", err)
			return
		}
		fmt.Printf("\nQuestion %d/%d:\n  %s\n", num, questionCap, question)

		if !answerQuestion(ctx, in, controller, rec) {
			return
		}
	}
}

// answerQuestion records, submits and scores one answer. Returns false when
// the user quits or input ends.
func answerQuestion(ctx context.Context, in *bufio.Scanner, controller *session.Controller, rec *recorder.Recorder) bool {
	for {
		if !prompt(in, "\n[ENTER] record  [q] finish early: ") {
			return false
		}

		if err := rec.Start(ctx); err != nil {
			if errors.Is(err, capture.ErrDeviceUnavailable) {
				fmt.Println("Microphone unavailable:", err)
				continue
			}
			slog.Warn("recording failed to start", "error", err)
			return false
		}

		if !prompt(in, "Recording... [ENTER] stop: ") {
			rec.Stop()
			return false
		}

		artifact, err := rec.Stop()
		if err != nil {
			slog.Warn("recording failed to stop", "error", err)
			return false
		}
		fmt.Printf("Captured %.1fs of audio.\n", artifact.Duration.Seconds())

		switch action := promptLine(in, "[ENTER] submit  [r] retake  [q] finish early: "); action {
		case "q", "quit":
			return false
		case "r", "retake":
			rec.Reset()
			continue
		}

		if submitAnswer(ctx, in, controller, rec, artifact.Duration) {
			return true
		}
		return false
	}
}

// submitAnswer uploads the retained clip, retrying on upload failure as long
// as the user wants to. A successful upload completes the current answer.
func submitAnswer(ctx context.Context, in *bufio.Scanner, controller *session.Controller, rec *recorder.Recorder, clipLen time.Duration) bool {
	for {
		result, err := rec.Submit(ctx)
		if err != nil {
			if errors.Is(err, recorder.ErrUploadFailed) {
				fmt.Println("Upload failed; your recording is kept.")
				switch promptLine(in, "[ENTER] retry upload  [d] discard answer: ") {
				case "d", "discard":
					rec.Reset()
					return true
				default:
					continue
				}
			}
			slog.Warn("submit failed", "error", err)
			return false
		}

		entry, err := controller.CompleteAnswer(result)
		if err != nil {
			slog.Warn("answer could not be recorded", "error", err)
			return false
		}

		fmt.Printf("\nTranscript: %s\n", entry.Answer)
		m := entry.Metrics
		if m.Err {
			fmt.Println("Scores: unavailable for this answer.")
		} else {
			fmt.Printf("Scores: pace %d, confidence %d, tone %d\n", m.Pace, m.Confidence, m.Tone)
			if m.Summary != "" {
				fmt.Printf("  %s\n", m.Summary)
			}
		}

		local := delivery.Analyze(entry.Answer, clipLen)
		fmt.Printf("Delivery read-out: %s\n", local.Summary)
		return true
	}
}

func finishSession(ctx context.Context, controller *session.Controller, outPath string) {
	// Shutdown may already have cancelled ctx; evaluation still deserves a
	// bounded attempt.
	if ctx.Err() != nil {
		ctx = context.Background()
	}

	narrative, err := controller.Finalize(ctx)
	switch {
	case errors.Is(err, session.ErrEmptySession):
		fmt.Println("\nNo answers recorded; nothing to evaluate.")
		return
	case err != nil:
		slog.Warn("evaluation degraded", "error", err)
	}

	fmt.Println("\n=== Evaluation ===")
	for _, block := range report.Split(narrative) {
		if block.Bullet {
			fmt.Printf("  - %s\n", block.Text)
		} else {
			fmt.Printf("%s\n", block.Text)
		}
	}

	if summary, ok := controller.Performance(); ok {
		fmt.Printf("\nOverall: %d (pace %d, confidence %d, tone %d)\n",
			summary.Overall, summary.Pace, summary.Confidence, summary.Tone)
	}

	if outPath != "" {
		data, err := json.MarshalIndent(controller.Export(), "", "  ")
		if err != nil {
			slog.Warn("export encoding failed", "error", err)
			return
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			slog.Warn("export write failed", "error", err)
			return
		}
		fmt.Printf("Results written to %s\n", outPath)
	}
}

// prompt prints a message and waits for a line; returns false on EOF or when
// the user types q.
func prompt(in *bufio.Scanner, msg string) bool {
	line := promptLine(in, msg)
	return line != "q" && line != "quit" && in.Err() == nil
}

func promptLine(in *bufio.Scanner, msg string) string {
	fmt.Print(msg)
	if !in.Scan() {
		return "q"
	}
	return strings.ToLower(strings.TrimSpace(in.Text()))
}
