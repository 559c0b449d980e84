package interview

import (
	"fmt"
	"time"
)

// RecordingArtifact is a single finished, encoded audio clip awaiting upload
// or discard. At most one artifact exists per session at a time.
type RecordingArtifact struct {
	ID         string
	Data       []byte
	MIMEType   string
	Duration   time.Duration
	CapturedAt time.Time
}

// Filename derives the upload filename; the extension tells the scoring
// service which container the bytes use.
func (a RecordingArtifact) Filename() string {
	ext := "wav"
	switch a.MIMEType {
	case "audio/webm":
		ext = "webm"
	case "audio/mpeg":
		ext = "mp3"
	}
	return fmt.Sprintf("answer_%s.%s", a.ID, ext)
}
