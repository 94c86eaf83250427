package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for a value in [0, 100].
type ProgressBar struct {
	Label      string
	LabelWidth int
	Value      int
	Width      int
}

// NewProgressBar creates a bar. labelWidth pads the label so that bars
// in a column line up.
func NewProgressBar(label string, labelWidth, value, width int) ProgressBar {
	return ProgressBar{
		Label:      label,
		LabelWidth: labelWidth,
		Value:      value,
		Width:      width,
	}
}

// View renders the bar followed by the numeric value.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		label := p.Label
		if pad := p.LabelWidth - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		b.WriteString(theme.Body.Render(label) + "  ")
	}

	barWidth := max(p.Width-lipgloss.Width(b.String())-5, 4)
	value := min(max(p.Value, 0), 100)
	filled := barWidth * value / 100

	b.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(theme.Hint.Render(fmt.Sprintf(" %3d", value)))

	return b.String()
}
