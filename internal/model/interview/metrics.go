package interview

// Metrics holds the per-answer delivery scores returned by the scoring
// service. When Err is set the service could not score the answer; such
// entries stay in the ledger for progress counting but are excluded from
// performance aggregation.
type Metrics struct {
	Pace       int    `json:"pace_score"`
	Confidence int    `json:"confidence_score"`
	Tone       int    `json:"tone_score"`
	Summary    string `json:"analysis_summary,omitempty"`
	Err        bool   `json:"error,omitempty"`
}

// ErrorMetrics returns the sentinel value marking an unscored answer.
func ErrorMetrics() Metrics {
	return Metrics{Err: true}
}

// Scored reports whether the metrics carry real scores.
func (m Metrics) Scored() bool {
	return !m.Err
}

// PerformanceSummary is derived from the ledger on demand, never stored.
// Each value is a rounded 0-100 score.
type PerformanceSummary struct {
	Pace       int `json:"pace"`
	Confidence int `json:"confidence"`
	Tone       int `json:"tone"`
	Overall    int `json:"overall"`
}
