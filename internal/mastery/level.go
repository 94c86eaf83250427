package mastery

// Level is a coarse proficiency label derived from an estimate.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Label thresholds. Intermediate covers both bounds inclusively.
const (
	IntermediateFloor = 40
	AdvancedFloor     = 76
)

// LevelFor maps an estimate to its label: below 40 is Beginner, 40-75 is
// Intermediate and above 75 is Advanced.
func LevelFor(estimate int) Level {
	switch {
	case estimate < IntermediateFloor:
		return LevelBeginner
	case estimate < AdvancedFloor:
		return LevelIntermediate
	default:
		return LevelAdvanced
	}
}
