package interview

import "time"

// Snapshot is a read-only view of the session for HTTP handlers and the
// terminal client. It is produced under the controller lock and safe to
// serialize concurrently with further session activity.
type Snapshot struct {
	ID              string `json:"id"`
	JobRole         string `json:"jobRole"`
	QuestionIndex   int    `json:"questionIndex"`
	QuestionCap     int    `json:"questionCap"`
	CurrentQuestion string `json:"currentQuestion,omitempty"`
	Answered        int    `json:"answered"`
	QuestionLoading bool   `json:"questionLoading"`
	Complete        bool   `json:"complete"`
	FinalEvaluation string `json:"finalEvaluation,omitempty"`
}

// Export is the downloadable result payload for a finished (or in-progress)
// session.
type Export struct {
	JobRole    string    `json:"job_title"`
	History    []Entry   `json:"interview_history"`
	Evaluation string    `json:"evaluation,omitempty"`
	ExportedAt time.Time `json:"timestamp"`
}
