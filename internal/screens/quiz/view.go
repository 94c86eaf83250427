package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/questionbank"
	"github.com/abhisek/skillpath/internal/ui/layout"
	"github.com/abhisek/skillpath/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.confirmQuit:
		return renderQuitConfirm(width, s.answered)
	case s.phase == phaseLoading:
		return renderCentered(width, theme.Hint, "\n\nPreparing your assessment...")
	case s.phase == phaseFinishing:
		return renderCentered(width, theme.Hint, "\n\nScoring your session...")
	case s.phase == phaseFeedback:
		return s.renderFeedback(width, height)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) renderQuestion(width int) string {
	q := s.question
	if q == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(divider(width))
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Width(width - 8).PaddingLeft(4)
	b.WriteString(body.Foreground(theme.Text).Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")

	if q.Type == questionbank.TypeMultipleChoice {
		b.WriteString(body.Render(s.choices.View(theme.Selected)))
	} else {
		b.WriteString(body.Render(s.input.View()))
	}
	b.WriteString("\n")

	switch {
	case s.phase == phaseGrading:
		b.WriteString(body.Render(theme.Hint.Render("Grading...")))
	case s.gradeErr != "":
		b.WriteString(body.Render(theme.Incorrect.Render("Grading failed: "+s.gradeErr) +
			"\n" + theme.Hint.Render("Submit again to retry.")))
	}

	return b.String()
}

func (s *QuizScreen) renderInfoLine(width int) string {
	q := s.question
	left := theme.Section.Render("  " + s.skillLabel(q))
	right := theme.Hint.Render(fmt.Sprintf("%s  ·  difficulty %d/10", typeLabel(q.Type), q.Difficulty))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		return left
	}
	return left + strings.Repeat(" ", pad) + right
}

func (s *QuizScreen) renderFeedback(width, height int) string {
	res := s.result
	if res == nil {
		return ""
	}
	q := res.Question
	style := theme.ScoreStyle(res.Score)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		style.Render(fmt.Sprintf("%s  ·  %d%%", scoreLabel(res.Score), int(res.Score*100+0.5)))))
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Width(width - 8).PaddingLeft(4)

	if q.Type == questionbank.TypeMultipleChoice && res.Score < 1 && q.Answer != "" {
		b.WriteString(body.Render(theme.Body.Render("Answer: " + q.Answer)))
		b.WriteString("\n")
	}
	if q.Explanation != "" && !layout.IsCompactHeight(height) {
		b.WriteString(body.Render(theme.Hint.Render(q.Explanation)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(body.Render(theme.Section.Render("Estimates")))
	b.WriteString("\n")
	for _, d := range res.Deltas {
		change := d.Change()
		changeStyle := theme.Hint
		switch {
		case change > 0:
			changeStyle = theme.Correct
		case change < 0:
			changeStyle = theme.Incorrect
		}
		line := fmt.Sprintf("%-28s %3d → %3d  ", s.opts.SkillName(d.SkillID), d.Before, d.After)
		b.WriteString(body.Render(theme.Body.Render(line) + changeStyle.Render(fmt.Sprintf("(%+d)", change))))
		b.WriteString("\n")
	}

	if res.Done {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("That was the last question. Press any key for your results.")))
	}

	return b.String()
}

func (s *QuizScreen) skillLabel(q *questionbank.Question) string {
	names := make([]string, 0, len(q.Skills))
	for _, sk := range q.Skills {
		names = append(names, s.opts.SkillName(sk.SkillID))
	}
	return strings.Join(names, ", ")
}

func scoreLabel(score float64) string {
	switch {
	case score >= 0.7:
		return "Correct"
	case score >= 0.4:
		return "Partially correct"
	default:
		return "Incorrect"
	}
}

func typeLabel(t questionbank.Type) string {
	switch t {
	case questionbank.TypeMultipleChoice:
		return "multiple choice"
	case questionbank.TypeShortAnswer:
		return "short answer"
	default:
		return string(t)
	}
}

func renderQuitConfirm(width, answered int) string {
	msg := "End the assessment now?\n\nNothing has been answered yet, so nothing will be saved."
	if answered > 0 {
		msg = fmt.Sprintf("End the assessment now?\n\nYour %d answer(s) so far will be scored and saved.", answered)
	}
	return renderCentered(width, theme.Body, "\n\n"+msg+"\n\n(y/n)")
}

func renderError(width int, msg string) string {
	return renderCentered(width, theme.Incorrect, "\n\n"+msg) + "\n\n" +
		renderCentered(width, theme.Hint, "Press any key to go back.")
}

func renderCentered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

func divider(width int) string {
	return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0)))
}
