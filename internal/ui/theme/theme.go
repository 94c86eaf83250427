// Package theme holds the SkillPath palette and the shared lipgloss styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary = lipgloss.Color("#0EA5E9") // sky
	Teal    = lipgloss.Color("#2DD4BF")
	Accent  = lipgloss.Color("#FBBF24") // amber
	Success = lipgloss.Color("#4ADE80")
	Error   = lipgloss.Color("#F87171")
	Text    = lipgloss.Color("#E2E8F0")
	TextDim = lipgloss.Color("#8B98AD")
	Surface = lipgloss.Color("#1B2433")
	Border  = lipgloss.Color("#3A4658")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)
	Subtitle = fg(TextDim).Align(lipgloss.Center)
	Section  = fg(Teal).Bold(true)

	Header = lipgloss.NewStyle().Background(Surface).Padding(0, 2)

	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)

	Correct   = fg(Success).Bold(true)
	Partial   = fg(Accent).Bold(true)
	Incorrect = fg(Error).Bold(true)

	ProgressFilled = lipgloss.NewStyle().Background(Teal)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)
)

// ScoreStyle picks Correct, Partial or Incorrect for a 0-1 answer score.
func ScoreStyle(score float64) lipgloss.Style {
	if score >= 0.7 {
		return Correct
	}
	if score >= 0.4 {
		return Partial
	}
	return Incorrect
}

// LevelColor styles a proficiency label.
func LevelColor(level string) lipgloss.Style {
	switch level {
	case "Advanced":
		return Correct
	case "Intermediate":
		return fg(Accent)
	}
	return fg(TextDim)
}
