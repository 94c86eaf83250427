package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceIsSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: SessionStart}); err != nil {
		t.Fatalf("AppendSessionEvent: %v", err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Success: true}); err != nil {
		t.Fatalf("AppendLLMRequest: %v", err)
	}
	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: SessionEnd, QuestionsAnswered: 3, OverallScore: 55}); err != nil {
		t.Fatalf("AppendSessionEvent: %v", err)
	}

	sessions, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("QuerySessionSummaries: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1 (only end events)", len(sessions))
	}
	if sessions[0].Sequence != 3 {
		t.Errorf("Sequence = %d, want 3", sessions[0].Sequence)
	}
	if sessions[0].OverallScore != 55 {
		t.Errorf("OverallScore = %d, want 55", sessions[0].OverallScore)
	}
}

func TestAnswerEventsInOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, id := range []string{"q1", "q2", "q3"} {
		err := repo.AppendAnswerEvent(ctx, AnswerEventData{
			SessionID: "s1", QuestionID: id, QuestionType: "code",
			SkillID: "go", Difficulty: 5, Response: "x", Score: 0.5, ElapsedMs: 1200,
		})
		if err != nil {
			t.Fatalf("AppendAnswerEvent: %v", err)
		}
	}
	if err := repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "other", QuestionID: "q9"}); err != nil {
		t.Fatalf("AppendAnswerEvent: %v", err)
	}

	got, err := repo.QueryAnswerEvents(ctx, "s1")
	if err != nil {
		t.Fatalf("QueryAnswerEvents: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	for i, want := range []string{"q1", "q2", "q3"} {
		if got[i].QuestionID != want {
			t.Errorf("event %d QuestionID = %q, want %q", i, got[i].QuestionID, want)
		}
	}
	if got[0].ElapsedMs != 1200 || got[0].Score != 0.5 {
		t.Errorf("event fields not round-tripped: %+v", got[0])
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest on empty: %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot on empty store")
	}

	first := &Snapshot{Data: SnapshotData{SessionID: "s1", Estimates: []SkillEstimate{{SkillID: "react", Estimate: 40}}}}
	second := &Snapshot{Data: SnapshotData{SessionID: "s2", Estimates: []SkillEstimate{{SkillID: "react", Estimate: 60}}}}
	for _, sn := range []*Snapshot{first, second} {
		if err := repo.Save(ctx, sn); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	if first.ID == 0 || first.Sequence == 0 {
		t.Errorf("Save did not fill ID/Sequence: %+v", first)
	}

	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.Data.SessionID != "s2" {
		t.Errorf("Latest SessionID = %q, want s2", latest.Data.SessionID)
	}
	if latest.Data.Version != snapshotVersion {
		t.Errorf("Version = %d, want %d", latest.Data.Version, snapshotVersion)
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 2 || all[0].Data.SessionID != "s1" || all[1].Data.SessionID != "s2" {
		t.Errorf("All not oldest-first: %+v", all)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.Save(ctx, &Snapshot{Data: SnapshotData{SessionID: string(rune('a' + i))}}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	if err := repo.Prune(ctx, 2); err != nil {
		t.Fatalf("Prune: %v", err)
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d snapshots after prune, want 2", len(all))
	}
	if all[0].Data.SessionID != "d" || all[1].Data.SessionID != "e" {
		t.Errorf("prune kept wrong snapshots: %q, %q", all[0].Data.SessionID, all[1].Data.SessionID)
	}
}

func TestLLMEventQueries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "mock", Model: "m1", Purpose: "grading", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Provider: "mock", Model: "m1", Purpose: "grading", InputTokens: 20, OutputTokens: 5, LatencyMs: 300, Success: true},
		{Provider: "mock", Model: "m2", Purpose: "resume", InputTokens: 100, OutputTokens: 50, LatencyMs: 50, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("AppendLLMRequest: %v", err)
		}
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("QueryLLMEvents: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d events, want 2", len(list))
	}
	if list[0].Purpose != "resume" {
		t.Errorf("newest event purpose = %q, want resume", list[0].Purpose)
	}

	got, err := repo.GetLLMEvent(ctx, list[0].ID)
	if err != nil {
		t.Fatalf("GetLLMEvent: %v", err)
	}
	if got == nil || got.Success || got.ErrorMessage != "boom" {
		t.Errorf("GetLLMEvent = %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 999)
	if err != nil {
		t.Fatalf("GetLLMEvent missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("LLMUsageByPurpose: %v", err)
	}
	if len(byPurpose) != 2 || byPurpose[0].Purpose != "grading" || byPurpose[0].Calls != 2 ||
		byPurpose[0].InputTokens != 30 || byPurpose[0].AvgLatencyMs != 200 {
		t.Errorf("LLMUsageByPurpose = %+v", byPurpose)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("LLMUsageByModel: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "m1" || byModel[0].OutputTokens != 10 {
		t.Errorf("LLMUsageByModel = %+v", byModel)
	}
}

func TestQueryOptsTimeFilter(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m"}); err != nil {
		t.Fatalf("AppendLLMRequest: %v", err)
	}

	future, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("QueryLLMEvents: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("got %d events from the future, want 0", len(future))
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.EventRepo().AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: SessionEnd}); err != nil {
		t.Fatalf("AppendSessionEvent: %v", err)
	}
	if err := s.SnapshotRepo().Save(ctx, &Snapshot{}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	sessions, _ := s.EventRepo().QuerySessionSummaries(ctx, QueryOpts{})
	if len(sessions) != 0 {
		t.Errorf("sessions after reset = %d, want 0", len(sessions))
	}
	latest, _ := s.SnapshotRepo().Latest(ctx)
	if latest != nil {
		t.Error("snapshot survived reset")
	}
}
