// Package session runs an adaptive assessment: it picks questions, grades
// answers, moves skill estimates and decides when enough has been asked.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/skillpath/internal/evaluator"
	"github.com/abhisek/skillpath/internal/mastery"
	"github.com/abhisek/skillpath/internal/questionbank"
	"github.com/abhisek/skillpath/internal/store"
)

// Errors returned by Submit.
var (
	ErrNoActiveQuestion = errors.New("no active question")
	ErrQuestionMismatch = errors.New("answer does not match the active question")
)

// Config holds the tunable parameters of a session.
type Config struct {
	MaxQuestions        int
	ConfidenceThreshold float64
	LearningRate        float64

	// TargetSkills restricts skill-driven selection. Empty means every
	// tracked skill.
	TargetSkills []string

	// KeepSnapshots bounds stored estimate snapshots. 0 keeps all.
	KeepSnapshots int
}

// DefaultConfig returns the standard session configuration.
func DefaultConfig() Config {
	return Config{
		MaxQuestions:        DefaultMaxQuestions,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		LearningRate:        mastery.DefaultLearningRate,
	}
}

// Options carries the collaborators of a session. Bank is required.
type Options struct {
	ID        string
	Config    Config
	Bank      *questionbank.Bank
	Estimates *mastery.Estimates
	Evaluator evaluator.Evaluator
	Rand      *rand.Rand

	// EventRepo and SnapshotRepo are optional; without them nothing is persisted.
	EventRepo    store.EventRepo
	SnapshotRepo store.SnapshotRepo

	// SkillName resolves display names for the summary. Optional.
	SkillName func(string) string

	Logger *slog.Logger
}

// Result is the outcome of one submitted answer.
type Result struct {
	Question *questionbank.Question
	Score    float64
	Deltas   []mastery.Delta
	Done     bool
}

// Session drives one learner through an assessment. Calls must be
// sequential: Next, then Submit, repeated until Done.
type Session struct {
	state     *State
	pool      []*questionbank.Question
	selector  *Selector
	evaluator evaluator.Evaluator
	policy    TerminationPolicy
	cfg       Config

	events    store.EventRepo
	snapshots store.SnapshotRepo
	skillName func(string) string
	logger    *slog.Logger

	current   *questionbank.Question
	exhausted bool
	finished  bool
}

// New creates a session from opts.
func New(opts Options) (*Session, error) {
	if opts.Bank == nil || opts.Bank.Len() == 0 {
		return nil, fmt.Errorf("session requires a non-empty question bank")
	}

	cfg := opts.Config
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = DefaultMaxQuestions
	}
	if cfg.ConfidenceThreshold <= 0 {
		cfg.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = mastery.DefaultLearningRate
	}

	id := opts.ID
	if id == "" {
		id = uuid.New().String()
	}

	eval := opts.Evaluator
	if eval == nil {
		eval = evaluator.Heuristic{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		state:    NewState(id, opts.Estimates, cfg.MaxQuestions),
		pool:     opts.Bank.Questions(),
		selector: NewSelector(opts.Rand),
		policy: TerminationPolicy{
			MaxQuestions:        cfg.MaxQuestions,
			ConfidenceThreshold: cfg.ConfidenceThreshold,
		},
		evaluator: eval,
		cfg:       cfg,
		events:    opts.EventRepo,
		snapshots: opts.SnapshotRepo,
		skillName: opts.SkillName,
		logger:    logger.With("session", id),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.state.ID
}

// State returns the live session state. Callers must not modify it.
func (s *Session) State() *State {
	return s.state
}

// Start records the session start.
func (s *Session) Start(ctx context.Context) error {
	s.state.StartTime = time.Now()
	s.logger.Info("session started",
		"skills", s.state.Estimates.Len(), "pool", len(s.pool))
	return s.appendSessionEvent(ctx, store.SessionStart, 0)
}

// Done reports whether the session is over: the termination policy fired
// or every question has been attempted.
func (s *Session) Done() bool {
	return s.finished || s.exhausted || s.policy.ShouldStop(s.state)
}

// Next returns the question to present. Calling Next again before Submit
// returns the same question. It returns false once the session is done.
func (s *Session) Next() (*questionbank.Question, bool) {
	if s.current != nil {
		return s.current, true
	}
	if s.Done() {
		return nil, false
	}

	q, ok := s.selector.Next(s.pool, s.state.Estimates, s.state.Attempted, s.cfg.TargetSkills)
	if !ok {
		s.exhausted = true
		return nil, false
	}
	s.current = q
	return q, true
}

// Submit grades an answer to the active question and updates the estimates.
func (s *Session) Submit(ctx context.Context, a questionbank.Answer) (*Result, error) {
	q := s.current
	if q == nil {
		return nil, ErrNoActiveQuestion
	}
	if a.QuestionID != "" && a.QuestionID != q.ID {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrQuestionMismatch, a.QuestionID, q.ID)
	}

	score, err := s.evaluator.Evaluate(ctx, q, a)
	if err != nil {
		return nil, fmt.Errorf("evaluate answer: %w", err)
	}
	score = evaluator.Clamp(score)

	before := s.state.Estimates
	after := mastery.Update(before, q, score, s.cfg.LearningRate)
	s.state.Estimates = after
	s.state.record(q.ID)
	s.current = nil

	s.logger.Debug("answer graded",
		"question", q.ID, "type", q.Type, "score", score, "answered", s.state.Answered)

	if s.events != nil {
		err := s.events.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:    s.state.ID,
			QuestionID:   q.ID,
			QuestionType: string(q.Type),
			SkillID:      q.PrimarySkill(),
			Difficulty:   q.Difficulty,
			Response:     a.Response,
			Score:        score,
			ElapsedMs:    a.Elapsed.Milliseconds(),
		})
		if err != nil {
			s.logger.Warn("failed to record answer event", "error", err)
		}
	}

	return &Result{
		Question: q,
		Score:    score,
		Deltas:   mastery.Diff(before, after, q),
		Done:     s.Done(),
	}, nil
}

// Summary builds the summary of the current estimates.
func (s *Session) Summary() *Summary {
	return BuildSummary(s.state.Estimates, s.state.Answered, s.skillName)
}

// Finish ends the session, persists its final estimates and returns the
// summary. Persistence failures are returned after the summary is built.
func (s *Session) Finish(ctx context.Context) (*Summary, error) {
	sum := s.Summary()
	if s.finished {
		return sum, nil
	}
	s.finished = true
	s.current = nil

	s.logger.Info("session finished",
		"answered", s.state.Answered, "overall", sum.OverallScore)

	var errs []error
	if err := s.appendSessionEvent(ctx, store.SessionEnd, sum.OverallScore); err != nil {
		errs = append(errs, err)
	}
	if s.snapshots != nil {
		snap := &store.Snapshot{Data: s.state.Estimates.SnapshotData(s.state.ID)}
		if err := s.snapshots.Save(ctx, snap); err != nil {
			errs = append(errs, fmt.Errorf("save estimates: %w", err))
		} else if s.cfg.KeepSnapshots > 0 {
			if err := s.snapshots.Prune(ctx, s.cfg.KeepSnapshots); err != nil {
				errs = append(errs, fmt.Errorf("prune snapshots: %w", err))
			}
		}
	}
	return sum, errors.Join(errs...)
}

// Abandon ends the session without saving estimates.
func (s *Session) Abandon(ctx context.Context) error {
	if s.finished {
		return nil
	}
	s.finished = true
	s.current = nil
	s.logger.Info("session abandoned", "answered", s.state.Answered)
	return s.appendSessionEvent(ctx, store.SessionAbandon, 0)
}

func (s *Session) appendSessionEvent(ctx context.Context, action string, overall int) error {
	if s.events == nil {
		return nil
	}
	data := store.SessionEventData{
		SessionID:         s.state.ID,
		Action:            action,
		QuestionsAnswered: s.state.Answered,
		OverallScore:      overall,
		DurationSecs:      int(time.Since(s.state.StartTime).Seconds()),
	}
	if err := s.events.AppendSessionEvent(ctx, data); err != nil {
		return fmt.Errorf("record session %s: %w", action, err)
	}
	return nil
}
