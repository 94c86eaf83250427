// Package summary shows the results of a finished assessment.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/rolefit"
	"github.com/abhisek/skillpath/internal/router"
	"github.com/abhisek/skillpath/internal/screen"
	"github.com/abhisek/skillpath/internal/session"
	"github.com/abhisek/skillpath/internal/ui/components"
	"github.com/abhisek/skillpath/internal/ui/layout"
	"github.com/abhisek/skillpath/internal/ui/theme"
)

// topFits is how many role fits the summary lists.
const topFits = 3

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.Summary
	fits    []rolefit.Fit
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. fits are expected best first.
func New(summary *session.Summary, fits []rolefit.Fit) *SummaryScreen {
	return &SummaryScreen{summary: summary, fits: fits}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Assessment complete"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Overall score: %d/100        Questions answered: %d",
			sum.OverallScore, sum.QuestionsAnswered)))
	b.WriteString("\n\n")

	column := min(width-8, 72)
	block := lipgloss.NewStyle().Width(column)

	var body strings.Builder
	body.WriteString(sectionHeader("Skills", column))
	labelWidth := 0
	for _, sk := range sum.Skills {
		labelWidth = max(labelWidth, lipgloss.Width(sk.Name))
	}
	labelWidth = min(labelWidth, 24)
	for _, sk := range sum.Skills {
		bar := components.NewProgressBar(truncate(sk.Name, labelWidth), labelWidth, sk.Estimate, column-16)
		body.WriteString(bar.View() + "  " + theme.LevelColor(string(sk.Level)).Render(string(sk.Level)))
		body.WriteString("\n")
	}

	if len(s.fits) > 0 {
		body.WriteString("\n")
		body.WriteString(sectionHeader("Role fit", column))
		for _, f := range s.fits[:min(len(s.fits), topFits)] {
			body.WriteString(fmt.Sprintf("%-30s %3d%%  ", truncate(f.Role.Name, 30), f.Match))
			body.WriteString(BadgeStyle(f.Match).Render(f.Badge))
			body.WriteString("\n")
		}
	}

	if len(sum.Recommendations) > 0 && !layout.IsCompactHeight(height) {
		body.WriteString("\n")
		body.WriteString(sectionHeader("Next steps", column))
		for _, r := range sum.Recommendations {
			body.WriteString(theme.Body.Render("• " + r))
			body.WriteString("\n")
		}
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block.Render(body.String())))
	return b.String()
}

func sectionHeader(title string, width int) string {
	return theme.Section.Render(title) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width)) + "\n"
}

// BadgeStyle colors a role-fit badge by its match percentage.
func BadgeStyle(match int) lipgloss.Style {
	switch {
	case match >= rolefit.HighlyMatchedFloor:
		return theme.Correct
	case match >= rolefit.GoodMatchFloor:
		return theme.Partial
	default:
		return theme.Hint
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
