package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
	"gemini-pro":   "gemini-2.5-pro",
}

// GeminiProvider implements Provider on the Gemini Developer API.
type GeminiProvider struct {
	models *genai.Models
	model  string
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{
		models: client.Models,
		model:  resolveModel(cfg.Model, geminiModels),
	}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	result, err := p.models.GenerateContent(ctx, p.model, geminiContents(req.Messages), geminiConfig(req))
	if err != nil {
		return nil, mapGeminiError(err)
	}
	return geminiCompletion(p.model, result).response(req)
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

// geminiConfig maps a Request onto generation settings. Schemas are sent
// as raw JSON Schema so bounds like minimum and maximum survive.
func geminiConfig(req Request) *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.MaxTokens),
		CandidateCount:  1,
	}
	if req.Temperature > 0 {
		gc.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.System != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		gc.ResponseMIMEType = "application/json"
		gc.ResponseJsonSchema = req.Schema.Definition
	}
	return gc
}

func geminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(m.Content, role))
	}
	return out
}

func geminiCompletion(model string, result *genai.GenerateContentResponse) completion {
	c := completion{text: result.Text(), model: model, stop: StopEnd}
	if result.ModelVersion != "" {
		c.model = result.ModelVersion
	}
	if len(result.Candidates) > 0 {
		switch result.Candidates[0].FinishReason {
		case genai.FinishReasonMaxTokens:
			c.stop = StopMaxTokens
		case genai.FinishReasonSafety, genai.FinishReasonBlocklist,
			genai.FinishReasonProhibitedContent, genai.FinishReasonRecitation:
			c.stop = StopFiltered
		}
	}
	if u := result.UsageMetadata; u != nil {
		c.usage = newUsage(int(u.PromptTokenCount), int(u.CandidatesTokenCount))
	}
	return c
}

func mapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return mapStatus(apiErr.Code, err)
	}
	return &ErrProviderUnavailable{Err: err}
}
