package llm

import "context"

// Purposes label what a request was for in the llm_request log.
const (
	PurposeGrading = "grading"
	PurposeResume  = "resume-analysis"
	PurposeUnknown = "unknown"
)

type purposeKey struct{}

func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	p, _ := ctx.Value(purposeKey{}).(string)
	if p == "" {
		return PurposeUnknown
	}
	return p
}
