package session

import (
	"math"
	"strings"

	"github.com/abhisek/skillpath/internal/mastery"
)

// FundamentalsCutoff splits skills between the two practice
// recommendations: below it a skill needs fundamentals, at or above it
// the learner is ready for advanced material.
const FundamentalsCutoff = 60

// MinAnswersForAccuracy is the answer count below which the summary
// suggests taking more quizzes.
const MinAnswersForAccuracy = 10

// Fixed recommendation texts.
const (
	RecMoreQuizzes = "Take more quizzes to get a more accurate assessment"
	RecProjects    = "Build real projects to apply your skills"
	RecCommunities = "Join developer communities to learn from others"
)

// SkillSummary is one skill's result.
type SkillSummary struct {
	SkillID  string
	Name     string
	Estimate int
	Level    mastery.Level
}

// Summary is the outcome of a session.
type Summary struct {
	OverallScore      int
	Skills            []SkillSummary
	Recommendations   []string
	QuestionsAnswered int
}

// BuildSummary scores the final estimates. names resolves display names
// for skills; nil uses skill IDs. Skill lists follow estimate order.
func BuildSummary(est *mastery.Estimates, answered int, names func(string) string) *Summary {
	if names == nil {
		names = func(id string) string { return id }
	}

	sum := &Summary{
		OverallScore:      int(math.Round(est.Mean())),
		QuestionsAnswered: answered,
	}

	var weak, strong []string
	for _, l := range est.Levels() {
		name := names(l.SkillID)
		sum.Skills = append(sum.Skills, SkillSummary{
			SkillID:  l.SkillID,
			Name:     name,
			Estimate: l.Level,
			Level:    mastery.LevelFor(l.Level),
		})
		if l.Level < FundamentalsCutoff {
			weak = append(weak, name)
		} else {
			strong = append(strong, name)
		}
	}

	if len(weak) > 0 {
		sum.Recommendations = append(sum.Recommendations, "Focus on fundamentals: "+strings.Join(weak, ", "))
	}
	if len(strong) > 0 {
		sum.Recommendations = append(sum.Recommendations, "Practice advanced concepts: "+strings.Join(strong, ", "))
	}
	if answered < MinAnswersForAccuracy {
		sum.Recommendations = append(sum.Recommendations, RecMoreQuizzes)
	}
	sum.Recommendations = append(sum.Recommendations, RecProjects, RecCommunities)

	return sum
}
