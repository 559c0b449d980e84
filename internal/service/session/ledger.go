package session

import "github.com/mishrasarthak227/ai-interview-agent/internal/model/interview"

// Ledger is the append-only record of completed answers and the source of
// truth for session progress and performance aggregation. It is not
// self-locking; the controller serializes access.
type Ledger struct {
	entries []interview.Entry
}

// Append records one completed answer. The only mutator besides Reset.
func (l *Ledger) Append(e interview.Entry) {
	l.entries = append(l.entries, e)
}

// Len reports how many questions have been answered, scored or not.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy so callers can serialize or aggregate without
// racing later appends.
func (l *Ledger) Entries() []interview.Entry {
	out := make([]interview.Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Reset discards everything.
func (l *Ledger) Reset() {
	l.entries = nil
}
