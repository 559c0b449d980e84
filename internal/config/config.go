package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every tunable for the interview agent.
type Config struct {
	Server  ServerConfig
	Remote  RemoteConfig
	Session SessionConfig
	Capture CaptureConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	remote, err := loadRemoteConfig()
	if err != nil {
		return nil, err
	}

	session, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	capture, err := loadCaptureConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Remote: remote, Session: session, Capture: capture}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept a full address such as ":8080" or "127.0.0.1:8080".
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// RemoteConfig locates the external question/scoring/evaluation backend.
type RemoteConfig struct {
	BaseURL   string
	Timeout   time.Duration
	EvalModel string
}

func loadRemoteConfig() (RemoteConfig, error) {
	timeoutSeconds := 60
	if override, err := parseOptionalIntEnv("INTERVIEW_REMOTE_TIMEOUT"); err != nil {
		return RemoteConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return RemoteConfig{}, fmt.Errorf("INTERVIEW_REMOTE_TIMEOUT must be at least 1 second")
		}
		timeoutSeconds = *override
	}

	return RemoteConfig{
		BaseURL:   getEnvOrDefault("INTERVIEW_API_BASE_URL", "http://localhost:8000"),
		Timeout:   time.Duration(timeoutSeconds) * time.Second,
		EvalModel: strings.TrimSpace(os.Getenv("INTERVIEW_EVAL_MODEL")),
	}, nil
}

// SessionConfig tunes the flow controller.
type SessionConfig struct {
	DefaultRole   string
	QuestionCap   int
	FollowupDelay time.Duration
}

func loadSessionConfig() (SessionConfig, error) {
	questionCap := 10
	if override, err := parseOptionalIntEnv("INTERVIEW_QUESTION_CAP"); err != nil {
		return SessionConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return SessionConfig{}, fmt.Errorf("INTERVIEW_QUESTION_CAP must be at least 1")
		}
		questionCap = *override
	}

	delayMillis := 600
	if override, err := parseOptionalIntEnv("INTERVIEW_FOLLOWUP_DELAY_MS"); err != nil {
		return SessionConfig{}, err
	} else if override != nil {
		if *override < 0 {
			return SessionConfig{}, fmt.Errorf("INTERVIEW_FOLLOWUP_DELAY_MS cannot be negative")
		}
		delayMillis = *override
	}

	return SessionConfig{
		DefaultRole:   getEnvOrDefault("INTERVIEW_JOB_ROLE", "Content Creator"),
		QuestionCap:   questionCap,
		FollowupDelay: time.Duration(delayMillis) * time.Millisecond,
	}, nil
}

// CaptureConfig describes the microphone stream.
type CaptureConfig struct {
	SampleRate      int
	Channels        int
	FramesPerBuffer int
}

func loadCaptureConfig() (CaptureConfig, error) {
	sampleRate := 44100
	if override, err := parseOptionalIntEnv("CAPTURE_SAMPLE_RATE"); err != nil {
		return CaptureConfig{}, err
	} else if override != nil {
		if *override < 8000 {
			return CaptureConfig{}, fmt.Errorf("CAPTURE_SAMPLE_RATE must be at least 8000")
		}
		sampleRate = *override
	}

	channels := 1
	if override, err := parseOptionalIntEnv("CAPTURE_CHANNELS"); err != nil {
		return CaptureConfig{}, err
	} else if override != nil {
		if *override != 1 && *override != 2 {
			return CaptureConfig{}, fmt.Errorf("CAPTURE_CHANNELS must be 1 or 2")
		}
		channels = *override
	}

	framesPerBuffer := 1024
	if override, err := parseOptionalIntEnv("CAPTURE_FRAMES_PER_BUFFER"); err != nil {
		return CaptureConfig{}, err
	} else if override != nil {
		if *override < 64 {
			return CaptureConfig{}, fmt.Errorf("CAPTURE_FRAMES_PER_BUFFER must be at least 64")
		}
		framesPerBuffer = *override
	}

	return CaptureConfig{
		SampleRate:      sampleRate,
		Channels:        channels,
		FramesPerBuffer: framesPerBuffer,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
