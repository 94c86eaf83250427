package app

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/config"
	"github.com/abhisek/skillpath/internal/mastery"
	"github.com/abhisek/skillpath/internal/questionbank"
	"github.com/abhisek/skillpath/internal/router"
	"github.com/abhisek/skillpath/internal/store"
)

func testDeps(t *testing.T) *Deps {
	t.Helper()
	cfg := config.Default()
	cfg.DeclaredSkills = map[string]int{"zz-custom": 10, "sql": 30, "go": 60}
	return &Deps{
		Config: cfg,
		Bank: questionbank.New([]questionbank.Question{{
			ID:         "q1",
			Type:       questionbank.TypeMultipleChoice,
			Difficulty: 5,
			Skills:     []questionbank.SkillImpact{{SkillID: "go", Impact: 6}},
			Prompt:     "pick",
			Choices:    []string{"a", "b"},
			Answer:     "a",
		}}),
		Catalog: catalog.New(
			[]catalog.Skill{
				{ID: "go", Name: "Go", Category: catalog.CategoryBackend},
				{ID: "sql", Name: "SQL", Category: catalog.CategoryData},
			},
			[]catalog.Role{{ID: "backend", Name: "Backend", Skills: []catalog.RoleSkill{{SkillID: "go", Weight: 5}}}},
		),
		Rand: rand.New(rand.NewPCG(7, 7)),
	}
}

func TestDeclaredLevels_CatalogOrderThenSorted(t *testing.T) {
	d := testDeps(t)
	got := DeclaredLevels(d.Config, d.Catalog)
	want := []mastery.SkillLevel{
		{SkillID: "go", Level: 60},
		{SkillID: "sql", Level: 30},
		{SkillID: "zz-custom", Level: 10},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDeclaredLevels_Empty(t *testing.T) {
	if got := DeclaredLevels(config.Default(), nil); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
	if got := DeclaredLevels(nil, nil); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestInitialEstimates_BlendsStoredResults(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(dir + "/test.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	snap := &store.Snapshot{Data: store.SnapshotData{
		SessionID: "s1",
		Estimates: []store.SkillEstimate{{SkillID: "go", Estimate: 80}},
	}}
	if err := st.SnapshotRepo().Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	d := testDeps(t)
	d.Snapshots = st.SnapshotRepo()

	est, err := d.InitialEstimates(ctx)
	if err != nil {
		t.Fatalf("InitialEstimates: %v", err)
	}
	// round(0.7*60 + 0.3*80) = 66
	if got := est.Get("go"); got != 66 {
		t.Errorf("go = %d, want 66", got)
	}
	if got := est.Get("sql"); got != 30 {
		t.Errorf("sql = %d, want 30", got)
	}
}

func TestInitialEstimates_TracksUndeclaredBankSkills(t *testing.T) {
	d := testDeps(t)
	d.Config.DeclaredSkills = map[string]int{"go": 75}
	d.Bank = questionbank.New([]questionbank.Question{
		{
			ID: "go-1", Type: questionbank.TypeShortAnswer, Difficulty: 8,
			Skills: []questionbank.SkillImpact{{SkillID: "go", Impact: 5}},
			Prompt: "explain", Answer: "x",
		},
		{
			ID: "sql-1", Type: questionbank.TypeShortAnswer, Difficulty: 3,
			Skills: []questionbank.SkillImpact{{SkillID: "sql", Impact: 7}, {SkillID: "go", Impact: 2}},
			Prompt: "join", Answer: "x",
		},
		{
			ID: "rust-1", Type: questionbank.TypeShortAnswer, Difficulty: 9,
			Skills: []questionbank.SkillImpact{{SkillID: "rust", Impact: 4}},
			Prompt: "borrow", Answer: "x",
		},
	})

	est, err := d.InitialEstimates(context.Background())
	if err != nil {
		t.Fatalf("InitialEstimates: %v", err)
	}
	want := []string{"go", "sql", "rust"}
	got := est.Skills()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Skills = %v, want %v", got, want)
	}
	if est.Get("go") != 75 || est.Get("sql") != 0 || est.Get("rust") != 0 {
		t.Errorf("estimates = %v", est.Map())
	}

	// A declared skill already at the target must not end the session
	// before the untested skills are probed.
	s, err := d.StartSession(context.Background())
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if s.Done() {
		t.Fatal("session done before any question")
	}
	q, ok := s.Next()
	if !ok || q.ID != "sql-1" {
		t.Errorf("Next = %v, %v; want sql-1", q, ok)
	}
}

func TestStartSession(t *testing.T) {
	d := testDeps(t)
	s, err := d.StartSession(context.Background())
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	q, ok := s.Next()
	if !ok || q.ID != "q1" {
		t.Errorf("Next = %v, %v; want q1", q, ok)
	}
}

func TestFitOptions_UsesConfigThreshold(t *testing.T) {
	d := testDeps(t)
	d.Config.Fit.MissingThreshold = 55
	opts := d.FitOptions()
	if opts.MissingThreshold != 55 {
		t.Errorf("MissingThreshold = %d, want 55", opts.MissingThreshold)
	}
	if opts.SkillName("go") != "Go" {
		t.Errorf("SkillName(go) = %q, want Go", opts.SkillName("go"))
	}
}

func sized(m AppModel) AppModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(AppModel)
}

func TestAppModel_HomeView(t *testing.T) {
	m := sized(newAppModel(testDeps(t)))
	view := m.render()
	if !strings.Contains(view, "SkillPath") {
		t.Error("header should show the app name")
	}
	if !strings.Contains(view, "Start assessment") {
		t.Error("home menu should be visible")
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(testDeps(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(next.(AppModel).render(), "Terminal too small") {
		t.Error("expected the minimum size message")
	}
}

func TestAppModel_EscAtRootIsNoop(t *testing.T) {
	m := sized(newAppModel(testDeps(t)))
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the root screen should do nothing")
	}
}

func TestAppModel_EscLeftToQuiz(t *testing.T) {
	m := sized(newAppModel(testDeps(t)))

	// Push the quiz and start its session.
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	next, initCmd := m.Update(cmd())
	m = next.(AppModel)
	next, _ = m.Update(initCmd())
	m = next.(AppModel)

	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Error("esc on the quiz should open the quit prompt, not pop")
		}
	}
	if !strings.Contains(m.render(), "End the assessment now?") {
		t.Error("expected the quit prompt")
	}
}
