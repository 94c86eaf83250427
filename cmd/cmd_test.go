package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/config"
	"github.com/abhisek/skillpath/internal/rolefit"
	"github.com/abhisek/skillpath/internal/store"
)

func TestParseSkillLevels(t *testing.T) {
	v, err := parseSkillLevels([]string{"react=80", " sql = 35 "})
	require.NoError(t, err)
	assert.Equal(t, rolefit.UserSkillVector{
		{SkillID: "react", Level: 80},
		{SkillID: "sql", Level: 35},
	}, v)

	for _, bad := range []string{"react", "=50", "react=high", "react=101", "react=-1"} {
		_, err := parseSkillLevels([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestUserVector_FromFlags(t *testing.T) {
	cat := catalog.Default()

	v, source, err := userVector(rootCmd, cat, []string{"docker=70"})
	require.NoError(t, err)
	assert.Equal(t, "--skill flags", source)
	assert.Equal(t, 70, v.Level("docker"))

	_, _, err = userVector(rootCmd, cat, []string{"cobol=70"})
	assert.ErrorContains(t, err, "unknown skill")
}

func TestFilterPurpose(t *testing.T) {
	events := []store.LLMRequestEventRecord{
		{ID: 1, LLMRequestEventData: store.LLMRequestEventData{Purpose: "grading"}},
		{ID: 2, LLMRequestEventData: store.LLMRequestEventData{Purpose: "resume-analysis"}},
		{ID: 3, LLMRequestEventData: store.LLMRequestEventData{Purpose: "grading"}},
		{ID: 4, LLMRequestEventData: store.LLMRequestEventData{Purpose: "grading"}},
	}

	assert.Len(t, filterPurpose(events, "", 2), 4)

	got := filterPurpose(events, "grading", 2)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Kubern...", truncate("Kubernetes Engineering", 9))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestConfigInitAndReset(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	cfgPath := filepath.Join(dir, "config.yaml")
	dbPath := filepath.Join(dir, "skillpath.db")

	rootCmd.SetArgs([]string{"config", "init", "--config", cfgPath, "--db", dbPath})
	require.NoError(t, rootCmd.Execute())

	_, err := os.Stat(cfgPath)
	require.NoError(t, err)
	loaded, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Engine, loaded.Engine)

	rootCmd.SetArgs([]string{"reset", "--config", cfgPath, "--db", dbPath})
	assert.ErrorContains(t, rootCmd.Execute(), "--yes")
}
