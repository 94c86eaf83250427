package mastery

import "github.com/abhisek/skillpath/internal/store"

// SnapshotData converts the estimates into their persisted form.
func (e *Estimates) SnapshotData(sessionID string) store.SnapshotData {
	data := store.SnapshotData{SessionID: sessionID}
	for _, l := range e.Levels() {
		data.Estimates = append(data.Estimates, store.SkillEstimate{
			SkillID:  l.SkillID,
			Estimate: l.Level,
		})
	}
	return data
}

// FromSnapshot restores estimates from a persisted snapshot.
// A nil snapshot yields empty estimates.
func FromSnapshot(snap *store.Snapshot) *Estimates {
	e := NewEstimates()
	if snap == nil {
		return e
	}
	for _, se := range snap.Data.Estimates {
		e.Set(se.SkillID, se.Estimate)
	}
	return e
}

// PriorScoresFrom flattens snapshots into prior scores, preserving the
// order of snapshots and of skills within each snapshot. Pass snapshots
// oldest first so later sessions blend on top of earlier ones.
func PriorScoresFrom(snaps []store.Snapshot) []PriorScore {
	var out []PriorScore
	for _, s := range snaps {
		for _, se := range s.Data.Estimates {
			out = append(out, PriorScore{SkillID: se.SkillID, Score: se.Estimate})
		}
	}
	return out
}
