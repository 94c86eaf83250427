package resume

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/llm"
	"github.com/abhisek/skillpath/internal/rolefit"
)

var testSkills = []catalog.Skill{
	{ID: "docker", Name: "Docker", Category: catalog.CategoryInfra},
	{ID: "sql", Name: "SQL", Category: catalog.CategoryData},
	{ID: "react", Name: "React", Category: catalog.CategoryFrontend},
}

const sampleResume = `Platform engineer, 6 years.
- Containerised 40 services with Docker and ran them on ECS.
- Tuned PostgreSQL queries, cutting p99 latency by 60%.`

func TestAnalyze(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"skills": [
			{"skill_id": "docker", "level": 82, "evidence": "Containerised 40 services"},
			{"skill_id": "cobol", "level": 90, "evidence": "hallucinated"},
			{"skill_id": "sql", "level": 130, "evidence": "Tuned PostgreSQL queries"},
			{"skill_id": "docker", "level": 60, "evidence": "ran them on ECS"}
		],
		"summary": "  Infrastructure-focused engineer.  "
	}`)})
	a := NewAnalyzer(mock, DefaultConfig(), nil)

	res, err := a.Analyze(context.Background(), sampleResume, testSkills)
	require.NoError(t, err)

	assert.Equal(t, rolefit.UserSkillVector{
		{SkillID: "docker", Level: 82},
		{SkillID: "sql", Level: 100},
	}, res.Skills)
	assert.Equal(t, []string{"cobol"}, res.Dropped)
	assert.Equal(t, "Infrastructure-focused engineer.", res.Summary)
	assert.Equal(t, "Containerised 40 services", res.Findings[0].Evidence)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Contains(t, req.Messages[0].Content, "- sql: SQL (data)")
	assert.Contains(t, req.Messages[0].Content, "Tuned PostgreSQL queries")
	require.NotNil(t, req.Schema)
	assert.True(t, strings.HasPrefix(req.Schema.Name, "resume-skills-"))
}

func TestAnalyze_ClampsNegativeLevels(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
		`{"skills":[{"skill_id":"react","level":-5,"evidence":"listed"}],"summary":""}`)})

	res, err := NewAnalyzer(mock, DefaultConfig(), nil).Analyze(context.Background(), "React", testSkills)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Skills.Level("react"))
	assert.Len(t, res.Skills, 1)
}

func TestAnalyze_EmptyTextSkipsProvider(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := NewAnalyzer(mock, DefaultConfig(), nil).Analyze(context.Background(), " \n\t", testSkills)

	assert.ErrorIs(t, err, ErrEmptyResume)
	assert.Equal(t, 0, mock.CallCount())
}

func TestAnalyze_ProviderErrorIsWrapped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	_, err := NewAnalyzer(mock, DefaultConfig(), nil).Analyze(context.Background(), sampleResume, testSkills)

	var rl *llm.ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestBuildUserMessage_Truncates(t *testing.T) {
	msg := buildUserMessage(strings.Repeat("é", 50), testSkills[:1], 10)
	assert.Contains(t, msg, strings.Repeat("é", 10)+"\n[truncated]")
	assert.NotContains(t, msg, strings.Repeat("é", 11))
}

func TestAnalysisSchema_RestrictsSkillIDs(t *testing.T) {
	s := analysisSchema([]string{"go", "sql"})
	other := analysisSchema([]string{"go"})
	assert.NotEqual(t, s.Name, other.Name)

	items := s.Definition["properties"].(map[string]any)["skills"].(map[string]any)["items"].(map[string]any)
	enum := items["properties"].(map[string]any)["skill_id"].(map[string]any)["enum"]
	assert.Equal(t, []any{"go", "sql"}, enum)
}
