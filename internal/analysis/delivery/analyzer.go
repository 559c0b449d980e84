// Package delivery scores how an answer was delivered from its transcript
// and duration alone: speaking pace, apparent confidence and tone. It is a
// lightweight local read-out shown next to the authoritative remote scores,
// not a replacement for them.
package delivery

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mishrasarthak227/ai-interview-agent/internal/model/interview"
)

// Optimal speaking range for interview answers, words per minute.
const (
	optimalWPM = 160.0
)

var fillerPhrases = []string{
	"um", "uh", "like", "you know", "sort of", "kind of",
}

var positiveWords = []string{
	"excited", "passionate", "confident", "experienced", "skilled", "accomplished",
}

var professionalWords = []string{
	"experience", "skills", "team", "project", "challenge", "solution", "result",
}

var enthusiasticWords = []string{
	"love", "passionate", "excited", "enjoy", "amazing", "great",
}

var negativeWords = []string{
	"difficult", "hard", "problem", "can't", "unable", "confused",
}

// Analyze derives delivery metrics from a transcript and the clip duration.
// An empty transcript yields low but defined scores rather than an error.
func Analyze(transcript string, duration time.Duration) interview.Metrics {
	transcript = strings.TrimSpace(transcript)
	words := 0
	if transcript != "" {
		words = len(strings.Fields(transcript))
	}

	wpm := 0.0
	if duration > 0 && words > 0 {
		wpm = float64(words) / duration.Minutes()
	}

	pace := paceScore(wpm)
	confidence := confidenceScore(transcript, words, duration)
	tone := toneScore(transcript)

	return interview.Metrics{
		Pace:       pace,
		Confidence: confidence,
		Tone:       tone,
		Summary:    summarize(pace, confidence, tone),
	}
}

// paceScore peaks at the optimal rate and falls off in widening bands.
func paceScore(wpm float64) int {
	if wpm == 0 {
		return 30
	}
	dist := math.Abs(wpm - optimalWPM)
	var score float64
	switch {
	case wpm >= 140 && wpm <= 180:
		score = 90 + 10*(1-dist/20)
	case wpm >= 100 && wpm <= 200:
		score = 70 + 20*(1-dist/40)
	case wpm >= 80 && wpm <= 220:
		score = 50 + 20*(1-dist/60)
	default:
		score = math.Max(20, 50-dist/4)
	}
	return clampScore(score)
}

// confidenceScore starts from a base and adjusts for answer length, filler
// density and assertive language.
func confidenceScore(transcript string, words int, duration time.Duration) int {
	if transcript == "" || duration == 0 {
		return 30
	}
	lower := strings.ToLower(transcript)
	score := 50.0

	switch {
	case words > 30:
		score += 20
	case words > 15:
		score += 10
	case words < 5:
		score -= 20
	}

	fillers := 0
	for _, phrase := range fillerPhrases {
		fillers += strings.Count(lower, phrase)
	}
	switch {
	case float64(fillers) > float64(words)*0.10:
		score -= 15
	case float64(fillers) > float64(words)*0.05:
		score -= 8
	}

	if containsAny(lower, positiveWords) {
		score += 10
	}

	return clampScoreFloor(score, 10)
}

// toneScore rewards professional and enthusiastic vocabulary and penalizes
// hedging language.
func toneScore(transcript string) int {
	if transcript == "" {
		return 40
	}
	lower := strings.ToLower(transcript)
	score := 60.0

	professional := 0
	for _, w := range professionalWords {
		if strings.Contains(lower, w) {
			professional++
		}
	}
	switch {
	case professional > 2:
		score += 15
	case professional > 0:
		score += 8
	}

	if containsAny(lower, enthusiasticWords) {
		score += 10
	}
	if containsAny(lower, negativeWords) {
		score -= 10
	}

	return clampScoreFloor(score, 20)
}

func summarize(pace, confidence, tone int) string {
	parts := make([]string, 0, 3)

	switch {
	case pace > 80:
		parts = append(parts, "excellent pacing")
	case pace > 60:
		parts = append(parts, "good pacing")
	default:
		parts = append(parts, "work on pacing")
	}

	switch {
	case confidence > 75:
		parts = append(parts, "confident delivery")
	case confidence > 60:
		parts = append(parts, "fairly confident")
	default:
		parts = append(parts, "build more confidence")
	}

	if tone > 75 {
		parts = append(parts, "professional tone")
	} else if tone > 60 {
		parts = append(parts, "good tone")
	}

	return fmt.Sprintf("%s.", strings.Join(parts, ", "))
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func clampScore(v float64) int {
	return clampScoreFloor(v, 0)
}

func clampScoreFloor(v float64, floor int) int {
	n := int(math.Floor(v + 0.5))
	if n < floor {
		return floor
	}
	if n > 100 {
		return 100
	}
	return n
}
