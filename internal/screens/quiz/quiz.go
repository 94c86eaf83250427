// Package quiz is the interactive assessment screen.
package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/questionbank"
	"github.com/abhisek/skillpath/internal/rolefit"
	"github.com/abhisek/skillpath/internal/router"
	"github.com/abhisek/skillpath/internal/screen"
	"github.com/abhisek/skillpath/internal/screens/summary"
	sess "github.com/abhisek/skillpath/internal/session"
	"github.com/abhisek/skillpath/internal/ui/components"
	"github.com/abhisek/skillpath/internal/ui/layout"
)

// Starter creates and starts the session behind a quiz.
type Starter func(ctx context.Context) (*sess.Session, error)

// Options configures a QuizScreen.
type Options struct {
	Start     Starter
	SkillName func(string) string
	Roles     []catalog.Role
	Fit       rolefit.Options
	Logger    *slog.Logger
}

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseGrading
	phaseFeedback
	phaseFinishing
)

const inputWidth = 60

// QuizScreen presents questions one at a time and shows graded feedback.
type QuizScreen struct {
	opts    Options
	session *sess.Session
	phase   phase

	question *questionbank.Question
	shownAt  time.Time
	choices  components.MultiChoice
	input    components.AnswerInput
	result   *sess.Result

	answered     int
	maxQuestions int

	confirmQuit bool
	gradeErr    string
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a QuizScreen. The session is started by Init.
func New(opts Options) *QuizScreen {
	if opts.SkillName == nil {
		opts.SkillName = func(id string) string { return id }
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &QuizScreen{opts: opts}
}

func (s *QuizScreen) Init() tea.Cmd {
	start := s.opts.Start
	return func() tea.Msg {
		if start == nil {
			return sessionReadyMsg{Err: fmt.Errorf("no session starter configured")}
		}
		session, err := start(context.Background())
		return sessionReadyMsg{Session: session, Err: err}
	}
}

func (s *QuizScreen) Title() string {
	return "Assessment"
}

func (s *QuizScreen) HandlesEscape() bool {
	return true
}

func (s *QuizScreen) Status() string {
	if s.maxQuestions == 0 {
		return ""
	}
	n := s.answered
	if s.phase == phaseQuestion || s.phase == phaseGrading {
		n++
	}
	return fmt.Sprintf("Q %d/%d", min(n, s.maxQuestions), s.maxQuestions)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End assessment"},
			{Key: "N", Description: "Keep going"},
		}
	case s.phase == phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.phase == phaseQuestion && s.question != nil && s.question.Type == questionbank.TypeMultipleChoice:
		return []layout.KeyHint{
			{Key: "1-9", Description: "Choose"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.phase == phaseQuestion && s.input.Multiline:
		return []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.phase == phaseQuestion:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		return s.handleReady(msg)

	case answerGradedMsg:
		return s.handleGraded(msg)

	case sessionFinishedMsg:
		return s.handleFinished(msg)

	case sessionAbandonedMsg:
		return s, popCmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and other input plumbing.
	if s.phase == phaseQuestion && s.isTextQuestion() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleReady(msg sessionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.session = msg.Session
	s.maxQuestions = msg.Session.State().MaxQuestions
	return s, s.nextQuestion()
}

func (s *QuizScreen) handleGraded(msg answerGradedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.opts.Logger.Warn("grading failed", "question", s.question.ID, "error", msg.Err)
		s.gradeErr = msg.Err.Error()
		s.phase = phaseQuestion
		if s.question.Type == questionbank.TypeMultipleChoice {
			selected := s.choices.Selected
			s.choices = components.NewMultiChoice(s.question.Choices)
			s.choices.Selected = selected
		}
		return s, nil
	}
	s.gradeErr = ""
	s.result = msg.Result
	s.answered++
	s.phase = phaseFeedback
	return s, nil
}

func (s *QuizScreen) handleFinished(msg sessionFinishedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.opts.Logger.Warn("session results not fully saved", "error", msg.Err)
	}
	if msg.Summary == nil {
		s.errMsg = "session ended without a summary"
		return s, nil
	}
	user := rolefit.FromEstimates(s.session.State().Estimates)
	fits := rolefit.Rank(s.opts.Roles, user, s.opts.Fit)
	next := summary.New(msg.Summary, fits)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, popCmd
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, s.quit()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch s.phase {
	case phaseFeedback:
		if s.result != nil && s.result.Done {
			return s, s.finish()
		}
		return s, s.nextQuestion()

	case phaseQuestion:
		if key == "esc" {
			s.confirmQuit = true
			return s, nil
		}
		if s.question.Type == questionbank.TypeMultipleChoice {
			s.choices, _ = s.choices.Update(msg)
			if choice, ok := s.choices.Choice(); ok {
				return s, s.submit(choice)
			}
			return s, nil
		}
		if s.input.IsSubmit(key) {
			if s.input.Value() == "" {
				return s, nil
			}
			return s, s.submit(s.input.Value())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

// nextQuestion shows the next question or finishes the session when the
// selector has nothing left to ask.
func (s *QuizScreen) nextQuestion() tea.Cmd {
	s.result = nil
	q, ok := s.session.Next()
	if !ok {
		return s.finish()
	}

	s.question = q
	s.shownAt = time.Now()
	s.phase = phaseQuestion
	s.gradeErr = ""

	if q.Type == questionbank.TypeMultipleChoice {
		s.choices = components.NewMultiChoice(q.Choices)
		return nil
	}
	multiline := q.Type == questionbank.TypeCode || q.Type == questionbank.TypeScenario
	s.input = components.NewAnswerInput(placeholder(q.Type), multiline, inputWidth)
	return s.input.Init()
}

// submit grades the response off the UI goroutine. The screen does not
// touch the session until answerGradedMsg arrives.
func (s *QuizScreen) submit(response string) tea.Cmd {
	s.phase = phaseGrading
	session := s.session
	answer := questionbank.Answer{
		QuestionID: s.question.ID,
		Response:   response,
		Elapsed:    time.Since(s.shownAt),
	}
	return func() tea.Msg {
		res, err := session.Submit(context.Background(), answer)
		return answerGradedMsg{Result: res, Err: err}
	}
}

func (s *QuizScreen) finish() tea.Cmd {
	s.phase = phaseFinishing
	session := s.session
	return func() tea.Msg {
		sum, err := session.Finish(context.Background())
		return sessionFinishedMsg{Summary: sum, Err: err}
	}
}

// quit ends the session early. With answers on record the estimates are
// kept and the summary shown; otherwise the session is abandoned.
func (s *QuizScreen) quit() tea.Cmd {
	if s.session == nil {
		return popCmd
	}
	if s.answered > 0 {
		return s.finish()
	}
	session := s.session
	logger := s.opts.Logger
	s.phase = phaseFinishing
	return func() tea.Msg {
		if err := session.Abandon(context.Background()); err != nil {
			logger.Warn("failed to record abandoned session", "error", err)
		}
		return sessionAbandonedMsg{}
	}
}

func (s *QuizScreen) isTextQuestion() bool {
	return s.question != nil && s.question.Type != questionbank.TypeMultipleChoice
}

func placeholder(t questionbank.Type) string {
	switch t {
	case questionbank.TypeCode:
		return "Write your code here..."
	case questionbank.TypeScenario:
		return "Describe your approach..."
	default:
		return "Type your answer..."
	}
}

func popCmd() tea.Msg {
	return router.PopScreenMsg{}
}
