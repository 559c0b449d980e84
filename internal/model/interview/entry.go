package interview

import "time"

// Entry is one completed question/answer/metrics record. Entries are
// immutable once appended to the session ledger. The JSON field names match
// the history format the remote generator and evaluator consume.
type Entry struct {
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Metrics    Metrics   `json:"audio_metrics"`
	AnsweredAt time.Time `json:"timestamp"`
}

// UploadResult is the normalized outcome of uploading one recording to the
// scoring service. An empty Transcript means no speech was recognized.
type UploadResult struct {
	Transcript string  `json:"transcript"`
	Metrics    Metrics `json:"audio_metrics"`
}
