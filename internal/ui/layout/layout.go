// Package layout draws the frame shared by every screen: a header bar, the
// screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/ui/theme"
)

// Smallest terminal the frame renders in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// Bars are one line of text inside a rounded border.
const (
	HeaderHeight = 3
	FooterHeight = 3
)

// Below these sizes screens drop optional sections.
const (
	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

const brand = "SkillPath"

// KeyHint is a key and what it does, shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool   { return width < CompactWidthThreshold }
func IsCompactHeight(height int) bool { return height < CompactHeightThreshold }

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage fills the terminal with a resize request.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small.\n\nResize to at least %d x %d\n(current %d x %d)",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Body.Render(msg))
}

// RenderHeader draws the brand on the left, title in the middle and status
// (usually session progress, may be empty) on the right.
func RenderHeader(title, status string, width int) string {
	inner := max(width-6, 0)
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand)
	mid := theme.Body.Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	// Center the title on the whole bar, not on the space between the
	// brand and the status.
	side := max((inner-lipgloss.Width(mid))/2, 0)
	line := lipgloss.PlaceHorizontal(side, lipgloss.Left, left) + mid +
		lipgloss.PlaceHorizontal(max(inner-side-lipgloss.Width(mid), 0), lipgloss.Right, right)
	return bar(line, width)
}

// RenderFooter draws the key hints left to right.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + theme.Hint.Render(h.Description)
	}
	return bar(strings.Join(parts, "   "), width)
}

// RenderFrame stacks header, content and footer, sizing the content to
// the space left over.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func bar(content string, width int) string {
	return theme.Header.
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}
