// Package router keeps the stack of TUI screens.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillpath/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the active screen without growing the stack.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// PopToRootMsg unwinds the stack back to the first screen.
type PopToRootMsg struct{}

// Router owns the screen stack. The root screen is never popped.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the active screen unless it is the root.
func (r *Router) Pop() tea.Cmd {
	if r.top() > 0 {
		r.stack[r.top()] = nil
		r.stack = r.stack[:r.top()]
	}
	return nil
}

// Replace swaps the active screen for s and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if r.top() < 0 {
		return r.Push(s)
	}
	r.stack[r.top()] = s
	return s.Init()
}

// PopToRoot drops everything above the root and re-runs the root's Init
// so it can reload what it shows.
func (r *Router) PopToRoot() tea.Cmd {
	if r.top() < 0 {
		return nil
	}
	clear(r.stack[1:])
	r.stack = r.stack[:1]
	return r.stack[0].Init()
}

// Active is the screen on top of the stack, or nil when empty.
func (r *Router) Active() screen.Screen {
	if r.top() < 0 {
		return nil
	}
	return r.stack[r.top()]
}

func (r *Router) Depth() int { return len(r.stack) }

// navigate applies a navigation message. ok is false for anything else.
func (r *Router) navigate(msg tea.Msg) (cmd tea.Cmd, ok bool) {
	switch m := msg.(type) {
	case PushScreenMsg:
		return r.Push(m.Screen), true
	case PopScreenMsg:
		return r.Pop(), true
	case ReplaceScreenMsg:
		return r.Replace(m.Screen), true
	case PopToRootMsg:
		return r.PopToRoot(), true
	}
	return nil, false
}

// Update handles navigation messages and hands the rest to the active
// screen, storing whatever screen value it returns.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if cmd, ok := r.navigate(msg); ok {
		return cmd
	}
	active := r.Active()
	if active == nil {
		return nil
	}
	next, cmd := active.Update(msg)
	r.stack[r.top()] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}
