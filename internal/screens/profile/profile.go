// Package profile shows the learner's latest skill estimates and how they
// fit each catalog role.
package profile

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/mastery"
	"github.com/abhisek/skillpath/internal/rolefit"
	"github.com/abhisek/skillpath/internal/router"
	"github.com/abhisek/skillpath/internal/screen"
	"github.com/abhisek/skillpath/internal/screens/summary"
	"github.com/abhisek/skillpath/internal/store"
	"github.com/abhisek/skillpath/internal/ui/components"
	"github.com/abhisek/skillpath/internal/ui/layout"
	"github.com/abhisek/skillpath/internal/ui/theme"
)

// Options configures a ProfileScreen.
type Options struct {
	Snapshots store.SnapshotRepo
	Catalog   *catalog.Catalog
	Fit       rolefit.Options

	// Declared is shown when no assessment has been saved yet.
	Declared []mastery.SkillLevel
}

type profileLoadedMsg struct {
	Estimates *mastery.Estimates
	Assessed  bool
	Err       error
}

// ProfileScreen lists estimates and ranked role fits.
type ProfileScreen struct {
	opts      Options
	estimates *mastery.Estimates
	report    *rolefit.Report
	assessed  bool
	selected  int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates a ProfileScreen.
func New(opts Options) *ProfileScreen {
	if opts.Fit.SkillName == nil && opts.Catalog != nil {
		opts.Fit.SkillName = opts.Catalog.SkillName
	}
	return &ProfileScreen{opts: opts}
}

func (s *ProfileScreen) Init() tea.Cmd {
	snaps := s.opts.Snapshots
	declared := s.opts.Declared
	return func() tea.Msg {
		if snaps != nil {
			snap, err := snaps.Latest(context.Background())
			if err != nil {
				return profileLoadedMsg{Err: err}
			}
			if snap != nil {
				return profileLoadedMsg{Estimates: mastery.FromSnapshot(snap), Assessed: true}
			}
		}
		return profileLoadedMsg{Estimates: mastery.Initialize(declared, nil)}
	}
}

func (s *ProfileScreen) Title() string {
	return "Skill Profile"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Role"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.estimates = msg.Estimates
		s.assessed = msg.Assessed
		var roles []catalog.Role
		if s.opts.Catalog != nil {
			roles = s.opts.Catalog.Roles()
		}
		s.report = rolefit.BuildReport(roles, rolefit.FromEstimates(msg.Estimates), s.opts.Fit)
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.report != nil && s.selected < len(s.report.Fits)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *ProfileScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\n  Loading profile...")
	case s.estimates.Len() == 0:
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No skills yet. Take an assessment or declare skills in your config.")
	}

	column := min(width-8, 76)
	var b strings.Builder

	source := "Self-reported levels. Take an assessment to refine them."
	if s.assessed {
		source = "From your latest assessment."
	}
	b.WriteString(theme.Hint.Render(source))
	b.WriteString("\n\n")

	b.WriteString(theme.Section.Render("Skills"))
	b.WriteString("\n")
	name := s.skillName
	labelWidth := 0
	for _, id := range s.estimates.Skills() {
		labelWidth = max(labelWidth, lipgloss.Width(name(id)))
	}
	labelWidth = min(labelWidth, 24)
	for _, l := range s.estimates.Levels() {
		level := mastery.LevelFor(l.Level)
		bar := components.NewProgressBar(name(l.SkillID), labelWidth, l.Level, column-16)
		b.WriteString(bar.View() + "  " + theme.LevelColor(string(level)).Render(string(level)))
		b.WriteString("\n")
	}

	if s.report != nil && len(s.report.Fits) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Section.Render("Role fit"))
		b.WriteString("\n")
		for i, f := range s.report.Fits {
			prefix := "  "
			style := theme.Unselected
			if i == s.selected {
				prefix = "▸ "
				style = theme.Selected
			}
			b.WriteString(style.Render(fmt.Sprintf("%s%-30s %3d%%  ", prefix, f.Role.Name, f.Match)))
			b.WriteString(summary.BadgeStyle(f.Match).Render(f.Badge))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(s.renderSelected())
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(column).Render(b.String()))
}

func (s *ProfileScreen) renderSelected() string {
	if s.selected >= len(s.report.Fits) {
		return ""
	}
	f := s.report.Fits[s.selected]

	var b strings.Builder
	if f.Role.Description != "" {
		b.WriteString(theme.Hint.Render(f.Role.Description))
		b.WriteString("\n")
	}
	if len(f.Missing) == 0 {
		b.WriteString(theme.Correct.Render("No skill gaps for this role."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(theme.Body.Render("Skill gaps:"))
	b.WriteString("\n")
	for _, m := range f.Missing {
		b.WriteString(theme.Incorrect.UnsetBold().Render(fmt.Sprintf("  • %s  %d/%d", m.SkillName, m.Level, m.Threshold)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *ProfileScreen) skillName(id string) string {
	if s.opts.Catalog != nil {
		return s.opts.Catalog.SkillName(id)
	}
	return id
}
