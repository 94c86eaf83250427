// Package history lists past assessments.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/router"
	"github.com/abhisek/skillpath/internal/screen"
	"github.com/abhisek/skillpath/internal/store"
	"github.com/abhisek/skillpath/internal/ui/layout"
	"github.com/abhisek/skillpath/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Err      error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerEventRecord
	Err       error
}

// HistoryScreen displays past sessions and, on demand, their answers.
type HistoryScreen struct {
	eventRepo store.EventRepo
	skillName func(string) string
	sessions  []store.SessionSummaryRecord
	answers   map[string][]store.AnswerEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. skillName may be nil.
func New(eventRepo store.EventRepo, skillName func(string) string) *HistoryScreen {
	if skillName == nil {
		skillName = func(id string) string { return id }
	}
	return &HistoryScreen{
		eventRepo: eventRepo,
		skillName: skillName,
		answers:   make(map[string][]store.AnswerEventRecord),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		sessions, err := repo.QuerySessionSummaries(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.answers[msg.SessionID] = msg.Answers
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			return s, s.toggle(s.selected)
		}
	}
	return s, nil
}

// toggle expands or collapses a session, loading its answers the first
// time it is opened.
func (s *HistoryScreen) toggle(i int) tea.Cmd {
	if i < 0 || i >= len(s.sessions) {
		return nil
	}
	s.expanded[i] = !s.expanded[i]
	id := s.sessions[i].SessionID
	if !s.expanded[i] {
		return nil
	}
	if _, ok := s.answers[id]; ok {
		return nil
	}
	repo := s.eventRepo
	return func() tea.Msg {
		answers, err := repo.QueryAnswerEvents(context.Background(), id)
		return answersLoadedMsg{SessionID: id, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return notice(width, theme.Incorrect.UnsetBold(), "Error: "+s.errMsg)
	case !s.loaded:
		return notice(width, theme.Hint, "Loading history...")
	case len(s.sessions) == 0:
		return notice(width, theme.Hint, "No assessments yet. Start one from the home screen.")
	}

	row := func(style lipgloss.Style, line string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, sess := range s.sessions {
		marker, style := "  ", theme.Unselected
		if i == s.selected {
			marker, style = "▸ ", theme.Selected
		}
		b.WriteString(row(style, fmt.Sprintf("%s%s  %s  %2d questions  overall %3d/100",
			marker,
			sess.Timestamp.Local().Format("Jan 02, 2006 15:04"),
			formatDuration(sess.DurationSecs),
			sess.QuestionsAnswered,
			sess.OverallScore)))
		if s.expanded[i] {
			b.WriteString(s.renderAnswers(width, sess.SessionID))
		}
	}
	return b.String()
}

func notice(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render("\n\n" + text)
}

func (s *HistoryScreen) renderAnswers(width int, sessionID string) string {
	center := func(line string, style lipgloss.Style) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)) + "\n"
	}
	answers, ok := s.answers[sessionID]
	if !ok {
		return center("    Loading answers...", theme.Hint)
	}
	if len(answers) == 0 {
		return center("    No answers recorded", theme.Hint)
	}
	var b strings.Builder
	for _, a := range answers {
		b.WriteString(center(fmt.Sprintf("    %-24s d%-2d %-15s %3.0f%%",
			s.skillName(a.SkillID), a.Difficulty, a.QuestionType, a.Score*100),
			theme.ScoreStyle(a.Score).UnsetBold()))
	}
	return b.String()
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
