package resume

import (
	"fmt"
	"strings"

	"github.com/abhisek/skillpath/internal/catalog"
)

const systemPrompt = `You are a technical recruiter assessing a software engineer's resume.

Rules:
- Only report skills from the provided list, using the exact skill_id.
- Only report a skill when the resume gives concrete evidence for it (projects, roles, certifications, measurable outcomes).
- Level is 0-100: 20 for passing exposure, 50 for regular professional use, 75 for ownership or depth, 90+ for recognized expertise.
- Years of experience alone do not justify a high level; weigh scope and responsibility.
- Evidence must be a short quote or close paraphrase from the resume.
- Do not invent skills, employers or projects that are not in the text.`

// buildUserMessage lists the allowed skills followed by the resume text,
// truncated to maxChars runes.
func buildUserMessage(text string, skills []catalog.Skill, maxChars int) string {
	var b strings.Builder

	b.WriteString("Skills to assess:\n")
	for _, s := range skills {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", s.ID, s.Name, s.Category)
	}

	b.WriteString("\nResume:\n")
	b.WriteString(truncateRunes(text, maxChars))
	return b.String()
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "\n[truncated]"
}
