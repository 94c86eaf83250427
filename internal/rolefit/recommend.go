package rolefit

import (
	"strings"

	"github.com/abhisek/skillpath/internal/catalog"
)

// maxStartWith caps how many missing skills are named in a recommendation.
const maxStartWith = 3

// Fixed recommendation texts.
const (
	RecPracticeQuizzes = "Take practice quizzes to validate your skills"
	RecPortfolio       = "Build portfolio projects to demonstrate your abilities"
)

// Recommendations returns advice for the top role fit. A nil top yields
// only the generic recommendations.
func Recommendations(top *Fit) []string {
	var recs []string
	if top != nil {
		if top.Match < GoodMatchFloor {
			recs = append(recs, "Focus on building skills for "+top.Role.Name)
		}
		if len(top.Missing) > 0 {
			n := min(len(top.Missing), maxStartWith)
			names := make([]string, 0, n)
			for _, m := range top.Missing[:n] {
				names = append(names, m.SkillName)
			}
			recs = append(recs, "Start with: "+strings.Join(names, ", "))
		}
	}
	return append(recs, RecPracticeQuizzes, RecPortfolio)
}

// Report is a ranked role-fit analysis with advice for the best role.
type Report struct {
	Fits            []Fit
	Recommendations []string
}

// Top returns the best fit, or nil when no roles were analyzed.
func (r *Report) Top() *Fit {
	if len(r.Fits) == 0 {
		return nil
	}
	return &r.Fits[0]
}

// BuildReport ranks roles for user and derives recommendations from the top one.
func BuildReport(roles []catalog.Role, user UserSkillVector, opts Options) *Report {
	r := &Report{Fits: Rank(roles, user, opts)}
	r.Recommendations = Recommendations(r.Top())
	return r
}
