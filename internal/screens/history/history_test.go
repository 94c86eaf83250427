package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillpath/internal/router"
	"github.com/abhisek/skillpath/internal/store"
)

// fakeRepo serves canned sessions; unused EventRepo methods panic.
type fakeRepo struct {
	store.EventRepo
	sessions    []store.SessionSummaryRecord
	answers     map[string][]store.AnswerEventRecord
	err         error
	answerCalls int
}

func (f *fakeRepo) QuerySessionSummaries(context.Context, store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return f.sessions, f.err
}

func (f *fakeRepo) QueryAnswerEvents(_ context.Context, id string) ([]store.AnswerEventRecord, error) {
	f.answerCalls++
	return f.answers[id], nil
}

func testRepo() *fakeRepo {
	ts := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	return &fakeRepo{
		sessions: []store.SessionSummaryRecord{
			{SessionID: "s2", Timestamp: ts, QuestionsAnswered: 12, OverallScore: 64, DurationSecs: 754},
			{SessionID: "s1", Timestamp: ts.Add(-24 * time.Hour), QuestionsAnswered: 5, OverallScore: 41, DurationSecs: 120},
		},
		answers: map[string][]store.AnswerEventRecord{
			"s2": {
				{AnswerEventData: store.AnswerEventData{SessionID: "s2", SkillID: "go", QuestionType: "code", Difficulty: 6, Score: 1}},
			},
		},
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	s.Update(s.Init()())
}

func TestHistoryScreen_ListsSessions(t *testing.T) {
	s := New(testRepo(), nil)
	load(t, s)

	view := s.View(100, 30)
	if !strings.Contains(view, "overall  64/100") {
		t.Errorf("view missing first session score:\n%s", view)
	}
	if !strings.Contains(view, "12:34") {
		t.Error("view missing formatted duration")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(&fakeRepo{}, nil)
	load(t, s)

	if !strings.Contains(s.View(100, 30), "No assessments yet") {
		t.Error("expected empty-state message")
	}
}

func TestHistoryScreen_LoadError(t *testing.T) {
	s := New(&fakeRepo{err: errors.New("db locked")}, nil)
	load(t, s)

	if !strings.Contains(s.View(100, 30), "db locked") {
		t.Error("expected error message")
	}
}

func TestHistoryScreen_ExpandLoadsAnswersOnce(t *testing.T) {
	repo := testRepo()
	s := New(repo, func(id string) string { return "Skill " + id })
	load(t, s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected answer load command")
	}
	s.Update(cmd())

	if !strings.Contains(s.View(100, 30), "Skill go") {
		t.Error("expanded view should list answers by skill name")
	}

	// Collapse and expand again: answers are cached.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected cached answers on second expand")
	}
	if repo.answerCalls != 1 {
		t.Errorf("answer queries = %d, want 1", repo.answerCalls)
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	s := New(testRepo(), nil)
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}
