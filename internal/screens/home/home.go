// Package home is the landing screen with the main menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/router"
	"github.com/abhisek/skillpath/internal/screen"
	"github.com/abhisek/skillpath/internal/screens/history"
	"github.com/abhisek/skillpath/internal/screens/profile"
	"github.com/abhisek/skillpath/internal/screens/quiz"
	"github.com/abhisek/skillpath/internal/store"
	"github.com/abhisek/skillpath/internal/ui/components"
	"github.com/abhisek/skillpath/internal/ui/layout"
	"github.com/abhisek/skillpath/internal/ui/theme"
)

// Options carries what the screens reachable from home need.
type Options struct {
	Quiz      quiz.Options
	Profile   profile.Options
	Events    store.EventRepo
	SkillName func(string) string

	// BankSize and SkillCount are shown in the stats line.
	BankSize   int
	SkillCount int
}

type statsLoadedMsg struct {
	Sessions  int
	LastScore int
	Err       error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	opts      Options
	menu      components.Menu
	sessions  int
	lastScore int
	statsErr  error
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	h := &HomeScreen{opts: opts}

	push := func(s func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: s()} }
		}
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Start assessment", Action: push(func() screen.Screen { return quiz.New(opts.Quiz) })},
		{Label: "Skill profile", Action: push(func() screen.Screen { return profile.New(opts.Profile) })},
		{
			Label:    "History",
			Action:   push(func() screen.Screen { return history.New(opts.Events, opts.SkillName) }),
			Disabled: opts.Events == nil,
		},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

// Init loads the stats line. It runs again whenever the router unwinds
// back to home, so the numbers follow finished assessments.
func (h *HomeScreen) Init() tea.Cmd {
	repo := h.opts.Events
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		sessions, err := repo.QuerySessionSummaries(context.Background(), store.QueryOpts{})
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		msg := statsLoadedMsg{Sessions: len(sessions)}
		if len(sessions) > 0 {
			msg.LastScore = sessions[0].OverallScore
		}
		return msg
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.sessions, h.lastScore, h.statsErr = msg.Sessions, msg.LastScore, msg.Err
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(max(width-6, 20), 60)
	compact := layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight)

	sections := []string{renderBanner(cw, compact), h.renderStats(cw)}

	menu := lipgloss.NewStyle().
		Width(cw).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Render(h.menu.View())
	sections = append(sections, menu)

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) renderStats(cw int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var parts []string
	if h.statsErr != nil {
		parts = append(parts, theme.Incorrect.Render("history unavailable"))
	} else {
		parts = append(parts, value.Render(fmt.Sprint(h.sessions))+dim.Render(" assessments"))
		if h.sessions > 0 {
			parts = append(parts, dim.Render("last ")+value.Render(fmt.Sprintf("%d/100", h.lastScore)))
		}
	}
	if h.opts.BankSize > 0 {
		parts = append(parts, value.Render(fmt.Sprint(h.opts.BankSize))+dim.Render(" questions"))
	}
	if h.opts.SkillCount > 0 {
		parts = append(parts, value.Render(fmt.Sprint(h.opts.SkillCount))+dim.Render(" skills"))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(parts, dim.Render("  ·  ")))
}
