// Package screen defines what the router needs from a TUI screen and the
// optional extras the app frame looks for.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillpath/internal/ui/layout"
)

// Screen is one page of the TUI. View renders only the body; the app
// draws the header and footer around it.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider overrides the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider adds a short status on the right of the header.
type StatusProvider interface {
	Status() string
}

// EscapeHandler screens receive esc instead of being popped by the app.
type EscapeHandler interface {
	HandlesEscape() bool
}
