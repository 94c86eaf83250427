package resume

import "github.com/abhisek/skillpath/internal/llm"

// analysisSchema builds the response schema with skill_id restricted to
// the given catalog IDs. The schema name includes a digest of the IDs so
// the compiled-schema cache never mixes catalogs.
func analysisSchema(skillIDs []string) *llm.Schema {
	enum := make([]any, len(skillIDs))
	for i, id := range skillIDs {
		enum[i] = id
	}

	return &llm.Schema{
		Name:        "resume-skills-" + digest(skillIDs),
		Description: "Skills evidenced by a resume with an estimated proficiency for each",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"skills": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"skill_id": map[string]any{
								"type": "string",
								"enum": enum,
							},
							"level": map[string]any{
								"type":        "integer",
								"description": "Estimated proficiency from 0 (none) to 100 (expert)",
							},
							"evidence": map[string]any{
								"type":        "string",
								"description": "Short quote or paraphrase from the resume supporting the level",
							},
						},
						"required":             []any{"skill_id", "level", "evidence"},
						"additionalProperties": false,
					},
				},
				"summary": map[string]any{
					"type":        "string",
					"description": "Two or three sentences describing the candidate's profile",
				},
			},
			"required":             []any{"skills", "summary"},
			"additionalProperties": false,
		},
	}
}
