package session

import (
	"math"

	"github.com/mishrasarthak227/ai-interview-agent/internal/model/interview"
)

// Aggregate recomputes running performance from the ledger. Entries carrying
// the ErrorMetrics sentinel are excluded rather than counted as zero. The
// second return is false when nothing scorable exists yet.
//
// The overall score is computed from pooled sums, not from the already
// rounded per-metric means, so rounding error does not compound.
func Aggregate(entries []interview.Entry) (interview.PerformanceSummary, bool) {
	var paceSum, confidenceSum, toneSum, count int
	for _, e := range entries {
		if !e.Metrics.Scored() {
			continue
		}
		paceSum += e.Metrics.Pace
		confidenceSum += e.Metrics.Confidence
		toneSum += e.Metrics.Tone
		count++
	}
	if count == 0 {
		return interview.PerformanceSummary{}, false
	}

	n := float64(count)
	return interview.PerformanceSummary{
		Pace:       roundHalfUp(float64(paceSum) / n),
		Confidence: roundHalfUp(float64(confidenceSum) / n),
		Tone:       roundHalfUp(float64(toneSum) / n),
		Overall:    roundHalfUp(float64(paceSum+confidenceSum+toneSum) / (3 * n)),
	}, true
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
