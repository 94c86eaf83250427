// Package report exports learner progress as an Excel workbook.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/skillpath/internal/mastery"
	"github.com/abhisek/skillpath/internal/rolefit"
	"github.com/abhisek/skillpath/internal/store"
)

// Sheet names, in workbook order.
const (
	SheetSessions = "Sessions"
	SheetSkills   = "Skills"
	SheetRoleFit  = "Role Fit"
)

const timeLayout = "2006-01-02 15:04"

// Data is everything the workbook shows.
type Data struct {
	Sessions  []store.SessionSummaryRecord
	Estimates *mastery.Estimates
	Fits      []rolefit.Fit

	// SkillName maps a skill ID to a display name. Nil shows IDs.
	SkillName func(string) string
}

// WriteWorkbook writes the workbook to path.
func WriteWorkbook(path string, data Data) error {
	f, err := build(data)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

// Write streams the workbook to w.
func Write(w io.Writer, data Data) error {
	f, err := build(data)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func build(data Data) (*excelize.File, error) {
	name := data.SkillName
	if name == nil {
		name = func(id string) string { return id }
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetSessions); err != nil {
		f.Close()
		return nil, err
	}
	for _, s := range []string{SheetSkills, SheetRoleFit} {
		if _, err := f.NewSheet(s); err != nil {
			f.Close()
			return nil, err
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DCE6F1"}},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	w := &sheetWriter{f: f, header: header}
	w.sessions(data.Sessions)
	w.skills(data.Estimates, name)
	w.roleFit(data.Fits, name)
	if w.err != nil {
		f.Close()
		return nil, w.err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// sheetWriter keeps the first error so sheet code reads top to bottom.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) row(sheet string, n int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("%s row %d: %w", sheet, n, err)
	}
}

func (w *sheetWriter) head(sheet string, widths []float64, titles ...any) {
	w.row(sheet, 1, titles...)
	if w.err != nil {
		return
	}
	if err := w.f.SetRowStyle(sheet, 1, 1, w.header); err != nil {
		w.err = err
		return
	}
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := w.f.SetColWidth(sheet, col, col, width); err != nil {
			w.err = err
			return
		}
	}
}

func (w *sheetWriter) sessions(sessions []store.SessionSummaryRecord) {
	w.head(SheetSessions, []float64{18, 38, 12, 14, 12},
		"Finished", "Session", "Questions", "Overall Score", "Minutes")
	for i, s := range sessions {
		w.row(SheetSessions, i+2,
			s.Timestamp.Local().Format(timeLayout),
			s.SessionID,
			s.QuestionsAnswered,
			s.OverallScore,
			(s.DurationSecs+59)/60)
	}
}

func (w *sheetWriter) skills(est *mastery.Estimates, name func(string) string) {
	w.head(SheetSkills, []float64{16, 22, 10, 14},
		"Skill ID", "Skill", "Estimate", "Level")
	if est == nil {
		return
	}
	for i, l := range est.Levels() {
		w.row(SheetSkills, i+2, l.SkillID, name(l.SkillID), l.Level, string(mastery.LevelFor(l.Level)))
	}
}

func (w *sheetWriter) roleFit(fits []rolefit.Fit, name func(string) string) {
	w.head(SheetRoleFit, []float64{24, 10, 16, 48},
		"Role", "Match %", "Badge", "Missing Skills")
	for i, fit := range fits {
		missing := make([]string, len(fit.Missing))
		for j, m := range fit.Missing {
			missing[j] = fmt.Sprintf("%s (%d/%d)", name(m.SkillID), m.Level, m.Threshold)
		}
		w.row(SheetRoleFit, i+2, fit.Role.Name, fit.Match, fit.Badge, strings.Join(missing, ", "))
	}
}
