package report

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/mastery"
	"github.com/abhisek/skillpath/internal/rolefit"
	"github.com/abhisek/skillpath/internal/store"
)

func sampleData() Data {
	est := mastery.EstimatesOf(
		mastery.SkillLevel{SkillID: "react", Level: 75},
		mastery.SkillLevel{SkillID: "css", Level: 45},
	)
	cat := catalog.Default()
	user := rolefit.FromEstimates(est)
	return Data{
		Sessions: []store.SessionSummaryRecord{{
			Timestamp:         time.Date(2026, 3, 1, 10, 30, 0, 0, time.Local),
			SessionID:         "sess-1",
			QuestionsAnswered: 12,
			OverallScore:      60,
			DurationSecs:      61,
		}},
		Estimates: est,
		Fits:      rolefit.Rank(cat.Roles(), user, rolefit.Options{MissingThreshold: 40, SkillName: cat.SkillName}),
		SkillName: cat.SkillName,
	}
}

func readRows(t *testing.T, f *excelize.File, sheet string) [][]string {
	t.Helper()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestWrite(t *testing.T) {
	data := sampleData()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, data))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSessions, SheetSkills, SheetRoleFit}, f.GetSheetList())

	sessions := readRows(t, f, SheetSessions)
	require.Len(t, sessions, 2)
	assert.Equal(t, []string{"Finished", "Session", "Questions", "Overall Score", "Minutes"}, sessions[0])
	assert.Equal(t, []string{"2026-03-01 10:30", "sess-1", "12", "60", "2"}, sessions[1])

	skills := readRows(t, f, SheetSkills)
	require.Len(t, skills, 3)
	assert.Equal(t, []string{"react", "React", "75", "Intermediate"}, skills[1])
	assert.Equal(t, []string{"css", "CSS", "45", "Intermediate"}, skills[2])

	fits := readRows(t, f, SheetRoleFit)
	require.Len(t, fits, len(data.Fits)+1)
	assert.Equal(t, data.Fits[0].Role.Name, fits[1][0])
	assert.Equal(t, data.Fits[0].Badge, fits[1][2])
}

func TestWriteWorkbook_EmptyData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.xlsx")
	require.NoError(t, WriteWorkbook(path, Data{}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	for _, sheet := range []string{SheetSessions, SheetSkills, SheetRoleFit} {
		assert.Len(t, readRows(t, f, sheet), 1, sheet)
	}
}
