package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	for in, want := range map[string]string{
		"gemini-flash":          "gemini-2.5-flash",
		"gemini-pro":            "gemini-2.5-pro",
		"gemini-2.5-flash-lite": "gemini-2.5-flash-lite",
	} {
		if got := resolveModel(in, geminiModels); got != want {
			t.Errorf("resolveModel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGeminiConfig(t *testing.T) {
	schema := gradeSchema()
	gc := geminiConfig(Request{
		System:      "You grade answers.",
		Schema:      schema,
		MaxTokens:   256,
		Temperature: 0.2,
	})

	if gc.MaxOutputTokens != 256 || gc.CandidateCount != 1 {
		t.Errorf("limits = %d/%d", gc.MaxOutputTokens, gc.CandidateCount)
	}
	if gc.Temperature == nil || *gc.Temperature != float32(0.2) {
		t.Errorf("Temperature = %v", gc.Temperature)
	}
	if gc.SystemInstruction == nil || gc.SystemInstruction.Parts[0].Text != "You grade answers." {
		t.Errorf("SystemInstruction = %+v", gc.SystemInstruction)
	}
	if gc.ResponseMIMEType != "application/json" {
		t.Errorf("ResponseMIMEType = %q", gc.ResponseMIMEType)
	}
	def, ok := gc.ResponseJsonSchema.(map[string]any)
	if !ok || def["type"] != "object" {
		t.Errorf("ResponseJsonSchema = %#v", gc.ResponseJsonSchema)
	}

	plain := geminiConfig(Request{MaxTokens: 64})
	if plain.Temperature != nil || plain.ResponseJsonSchema != nil || plain.SystemInstruction != nil {
		t.Errorf("unset fields leaked into config: %+v", plain)
	}
}

func TestGeminiContents(t *testing.T) {
	got := geminiContents([]Message{
		{Role: RoleUser, Content: "q"},
		{Role: RoleAssistant, Content: "a"},
	})
	if len(got) != 2 || got[0].Role != genai.RoleUser || got[1].Role != genai.RoleModel {
		t.Fatalf("contents = %+v", got)
	}
	if got[1].Parts[0].Text != "a" {
		t.Errorf("text = %q", got[1].Parts[0].Text)
	}
}

func TestGeminiCompletion(t *testing.T) {
	result := &genai.GenerateContentResponse{
		ModelVersion: "gemini-2.5-flash-001",
		Candidates: []*genai.Candidate{{
			Content:      genai.NewContentFromText(`{"score":1}`, genai.RoleModel),
			FinishReason: genai.FinishReasonMaxTokens,
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     40,
			CandidatesTokenCount: 10,
		},
	}

	c := geminiCompletion("gemini-2.5-flash", result)
	if c.text != `{"score":1}` || c.model != "gemini-2.5-flash-001" {
		t.Errorf("completion = %+v", c)
	}
	if c.stop != StopMaxTokens {
		t.Errorf("stop = %q, want max_tokens", c.stop)
	}
	if c.usage.TotalTokens != 50 {
		t.Errorf("usage = %+v", c.usage)
	}

	result.Candidates[0].FinishReason = genai.FinishReasonSafety
	if got := geminiCompletion("m", result).stop; got != StopFiltered {
		t.Errorf("safety stop = %q, want filtered", got)
	}
}
