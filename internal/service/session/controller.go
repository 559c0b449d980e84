// Package session implements the interview flow controller: the state
// machine that sequences question generation, answer completion, running
// performance aggregation and session finalization.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mishrasarthak227/ai-interview-agent/internal/model/interview"
)

const (
	// DefaultQuestionCap is the number of questions per session.
	DefaultQuestionCap = 10
	// DefaultFollowupDelay debounces the auto-fetch of the next question so
	// the UI can show the just-submitted answer first.
	DefaultFollowupDelay = 600 * time.Millisecond

	// noQuestionText stands in for a well-formed generator response that
	// carried no question; it flows through as ordinary content.
	noQuestionText = "No question received"
	// fallbackQuestion keeps the session moving when the generator cannot
	// be reached.
	fallbackQuestion = "We couldn't reach the interviewer just now. In the meantime: walk me through your most relevant experience for this role."
	// fallbackEvaluation is stored when the evaluator cannot be reached;
	// Finalize may be retried.
	fallbackEvaluation = "The evaluation service is temporarily unavailable. Your answers are saved; please try finalizing again."
)

var (
	// ErrRoleRequired guards session creation with an empty job role.
	ErrRoleRequired = errors.New("job role is required")
	// ErrAlreadyLoading rejects a duplicate in-flight request of the same
	// kind; the session state is unchanged.
	ErrAlreadyLoading = errors.New("a request is already in flight")
	// ErrEmptySession guards finalization before any answer exists. No
	// network call is made.
	ErrEmptySession = errors.New("session has no answers to evaluate")
	// ErrNoActiveQuestion reports an answer completed while no question was
	// pending; nothing is appended.
	ErrNoActiveQuestion = errors.New("no active question to answer")
	// ErrSessionComplete rejects a question request after the question cap is
	// reached; the session only continues through finalization or a reset.
	ErrSessionComplete = errors.New("session has reached its question cap")
	// ErrEvaluationFailed wraps evaluator failures. A placeholder narrative
	// is stored and the session is otherwise unchanged.
	ErrEvaluationFailed = errors.New("evaluation failed")
)

// QuestionGenerator produces the next question from the session so far.
type QuestionGenerator interface {
	GenerateQuestion(ctx context.Context, jobRole string, questionNum int, history []interview.Entry) (string, error)
}

// Evaluator turns the full session history into a narrative report.
type Evaluator interface {
	Evaluate(ctx context.Context, jobRole string, history []interview.Entry) (string, error)
}

// Config tunes the controller.
type Config struct {
	QuestionCap   int
	FollowupDelay time.Duration
	// AutoAdvance fetches the next question automatically after an answer
	// is completed, while under the question cap. The terminal client
	// drives the loop itself and disables this.
	AutoAdvance bool
}

// Controller owns all session state. Every mutation happens under one lock;
// the external calls (question fetch, evaluation) run outside it with at
// most one in flight per kind.
type Controller struct {
	generator QuestionGenerator
	evaluator Evaluator
	cfg       Config
	logger    *slog.Logger
	clock     func() time.Time

	mu              sync.Mutex
	id              string
	jobRole         string
	questionIndex   int
	currentQuestion string
	ledger          Ledger
	finalEvaluation string
	questionLoading bool
	evaluating      bool
	// epoch invalidates in-flight results across resets and role changes.
	epoch int
}

// NewController returns a controller in the Setup state: no role, question
// index 1, empty ledger.
func NewController(generator QuestionGenerator, evaluator Evaluator, cfg Config, logger *slog.Logger) *Controller {
	if cfg.QuestionCap <= 0 {
		cfg.QuestionCap = DefaultQuestionCap
	}
	if cfg.FollowupDelay <= 0 {
		cfg.FollowupDelay = DefaultFollowupDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		generator:     generator,
		evaluator:     evaluator,
		cfg:           cfg,
		logger:        logger,
		clock:         time.Now,
		id:            uuid.NewString(),
		questionIndex: 1,
	}
}

// SetJobRole replaces the job role and performs a full session reset. This
// is destructive: ledger, current question and final evaluation are gone.
func (c *Controller) SetJobRole(role string) error {
	if role == "" {
		return ErrRoleRequired
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobRole = role
	c.resetLocked()
	c.logger.Info("session reset for new role", "role", role, "session", c.id)
	return nil
}

// ResetSession clears the ledger, evaluation and current question and
// rewinds the question counter. The job role is preserved.
func (c *Controller) ResetSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	c.logger.Info("session reset", "role", c.jobRole, "session", c.id)
}

func (c *Controller) resetLocked() {
	c.id = uuid.NewString()
	c.questionIndex = 1
	c.currentQuestion = ""
	c.ledger.Reset()
	c.finalEvaluation = ""
	c.epoch++
}

// Snapshot returns a consistent read-only view of the session.
func (c *Controller) Snapshot() interview.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return interview.Snapshot{
		ID:              c.id,
		JobRole:         c.jobRole,
		QuestionIndex:   c.questionIndex,
		QuestionCap:     c.cfg.QuestionCap,
		CurrentQuestion: c.currentQuestion,
		Answered:        c.ledger.Len(),
		QuestionLoading: c.questionLoading,
		Complete:        c.questionIndex > c.cfg.QuestionCap,
		FinalEvaluation: c.finalEvaluation,
	}
}

// History returns a copy of the ledger.
func (c *Controller) History() []interview.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Entries()
}

// Performance recomputes the running summary from the ledger. The second
// return is false while no scored answers exist.
func (c *Controller) Performance() (interview.PerformanceSummary, bool) {
	c.mu.Lock()
	entries := c.ledger.Entries()
	c.mu.Unlock()
	return Aggregate(entries)
}

// Export assembles the downloadable results payload.
func (c *Controller) Export() interview.Export {
	c.mu.Lock()
	defer c.mu.Unlock()
	return interview.Export{
		JobRole:    c.jobRole,
		History:    c.ledger.Entries(),
		Evaluation: c.finalEvaluation,
		ExportedAt: c.clock(),
	}
}

// RequestNextQuestion fetches the next question from the generator and
// stores it as the current question. Fails fast with ErrAlreadyLoading when
// a fetch is already in flight and with ErrSessionComplete once the question
// cap is reached, so the question counter can never run past the cap. A
// generator failure degrades to a fallback question so the session is never
// stuck waiting for content.
func (c *Controller) RequestNextQuestion(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.questionIndex > c.cfg.QuestionCap {
		c.mu.Unlock()
		return "", ErrSessionComplete
	}
	if c.questionLoading {
		c.mu.Unlock()
		return "", ErrAlreadyLoading
	}
	c.questionLoading = true
	epoch := c.epoch
	jobRole := c.jobRole
	questionNum := c.questionIndex
	history := c.ledger.Entries()
	c.mu.Unlock()

	text, err := c.generator.GenerateQuestion(ctx, jobRole, questionNum, history)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.questionLoading = false
	if epoch != c.epoch {
		// The session was reset while the fetch was in flight; the result
		// belongs to a session that no longer exists.
		return "", nil
	}
	switch {
	case err != nil:
		c.logger.Warn("question fetch failed, using fallback", "error", err, "questionNum", questionNum)
		c.currentQuestion = fallbackQuestion
	case text == "":
		c.currentQuestion = noQuestionText
	default:
		c.currentQuestion = text
	}
	return c.currentQuestion, nil
}

// CompleteAnswer appends a ledger entry for the current question from a
// successful upload, clears the question and advances the counter. Under
// the question cap and with AutoAdvance enabled, the next question is
// fetched after a short delay.
func (c *Controller) CompleteAnswer(result interview.UploadResult) (interview.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentQuestion == "" {
		return interview.Entry{}, ErrNoActiveQuestion
	}

	entry := interview.Entry{
		Question:   c.currentQuestion,
		Answer:     result.Transcript,
		Metrics:    result.Metrics,
		AnsweredAt: c.clock(),
	}
	c.ledger.Append(entry)
	c.currentQuestion = ""
	c.questionIndex++
	c.logger.Info("answer recorded", "questionNum", c.questionIndex-1, "scored", entry.Metrics.Scored(), "session", c.id)

	if c.cfg.AutoAdvance && c.questionIndex <= c.cfg.QuestionCap {
		epoch := c.epoch
		time.AfterFunc(c.cfg.FollowupDelay, func() {
			c.mu.Lock()
			stale := epoch != c.epoch
			c.mu.Unlock()
			if stale {
				return
			}
			if _, err := c.RequestNextQuestion(context.Background()); err != nil && !errors.Is(err, ErrAlreadyLoading) {
				c.logger.Warn("auto question fetch failed", "error", err)
			}
		})
	}
	return entry, nil
}

// Finalize sends the full ledger to the evaluator and stores the returned
// narrative. An empty ledger fails with ErrEmptySession before any network
// call. On evaluator failure a placeholder narrative is stored and the
// returned error wraps ErrEvaluationFailed; the session is otherwise
// unchanged so Finalize may be retried.
func (c *Controller) Finalize(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.ledger.Len() == 0 {
		c.mu.Unlock()
		return "", ErrEmptySession
	}
	if c.evaluating {
		c.mu.Unlock()
		return "", ErrAlreadyLoading
	}
	c.evaluating = true
	epoch := c.epoch
	jobRole := c.jobRole
	history := c.ledger.Entries()
	c.mu.Unlock()

	narrative, err := c.evaluator.Evaluate(ctx, jobRole, history)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.evaluating = false
	if epoch != c.epoch {
		return "", nil
	}
	if err != nil {
		c.finalEvaluation = fallbackEvaluation
		c.logger.Warn("evaluation failed, placeholder stored", "error", err)
		return fallbackEvaluation, errors.Join(ErrEvaluationFailed, err)
	}
	c.finalEvaluation = narrative
	c.logger.Info("session finalized", "answers", c.ledger.Len(), "session", c.id)
	return narrative, nil
}
