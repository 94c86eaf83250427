package components

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// AnswerInput collects a free-form answer. Short answers use a single
// line; code and scenario answers get a multi-line editor where enter
// inserts a newline and ctrl+s submits.
type AnswerInput struct {
	Multiline bool
	line      textinput.Model
	area      textarea.Model
}

// SubmitKey submits a multi-line answer.
const SubmitKey = "ctrl+s"

// NewAnswerInput creates a focused input of the given shape.
func NewAnswerInput(placeholder string, multiline bool, width int) AnswerInput {
	a := AnswerInput{Multiline: multiline}
	if multiline {
		ta := textarea.New()
		ta.Placeholder = placeholder
		ta.ShowLineNumbers = true
		ta.SetWidth(width)
		ta.SetHeight(8)
		ta.Focus()
		a.area = ta
		return a
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 500
	ti.SetWidth(width)
	ti.Focus()
	a.line = ti
	return a
}

// Init returns the cursor blink command.
func (a *AnswerInput) Init() tea.Cmd {
	if a.Multiline {
		return a.area.Focus()
	}
	return a.line.Focus()
}

// Update forwards input to the underlying editor.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	var cmd tea.Cmd
	if a.Multiline {
		a.area, cmd = a.area.Update(msg)
	} else {
		a.line, cmd = a.line.Update(msg)
	}
	return a, cmd
}

// IsSubmit reports whether key submits this input.
func (a AnswerInput) IsSubmit(key string) bool {
	if a.Multiline {
		return key == SubmitKey
	}
	return key == "enter"
}

// Value returns the trimmed answer text.
func (a AnswerInput) Value() string {
	if a.Multiline {
		return strings.TrimSpace(a.area.Value())
	}
	return strings.TrimSpace(a.line.Value())
}

// View renders the editor.
func (a AnswerInput) View() string {
	if a.Multiline {
		return a.area.View()
	}
	return a.line.View()
}
