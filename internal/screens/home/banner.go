package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/ui/theme"
)

const bannerFull = `╔═╗╦╔═╦╦  ╦  ╔═╗╔═╗╔╦╗╦ ╦
╚═╗╠╩╗║║  ║  ╠═╝╠═╣ ║ ╠═╣
╚═╝╩ ╩╩╩═╝╩═╝╩  ╩ ╩ ╩ ╩ ╩`

const bannerCompact = "S K I L L P A T H"

const tagline = "Adaptive skill assessment for software engineers"

func renderBanner(cw int, compact bool) string {
	art := bannerFull
	if compact {
		art = bannerCompact
	}
	title := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(art)
	return title + "\n" + theme.Subtitle.Width(cw).Render(tagline)
}
