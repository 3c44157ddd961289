package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"
)

// AdvisorUnavailable is returned to the caller whenever no analysis can be produced.
const AdvisorUnavailable = "Não foi possível realizar a análise no momento."

const (
	advisorInstruction = "Você é um especialista em logística hospitalar. Seja direto, prático e focado em eficiência e redução de custos."
	advisorPrompt      = "Analise o seguinte resumo da frota logística hospitalar e sugira 3 ações de otimização:\n\n%s"
	advisorTimeout     = 30 * time.Second
)

// Advisor turns an operational summary into optimization suggestions.
// Analyze never fails; it falls back to AdvisorUnavailable.
type Advisor interface {
	Analyze(ctx context.Context, summary string) string
}

// DisabledAdvisor is used when no API key is configured.
type DisabledAdvisor struct{}

func (DisabledAdvisor) Analyze(context.Context, string) string { return AdvisorUnavailable }

// ContentGenerator is the part of the Gemini client the advisor uses.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAdvisor asks a Gemini model for optimization suggestions.
type GeminiAdvisor struct {
	models ContentGenerator
	model  string
}

// NewGeminiAdvisor builds an advisor for the given model (e.g. "gemini-2.5-flash").
func NewGeminiAdvisor(ctx context.Context, apiKey, model string) (*GeminiAdvisor, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating gemini client: %w", err)
	}
	return NewGeminiAdvisorWith(client.Models, model), nil
}

// NewGeminiAdvisorWith builds an advisor on an existing generator.
func NewGeminiAdvisorWith(models ContentGenerator, model string) *GeminiAdvisor {
	return &GeminiAdvisor{models: models, model: model}
}

func (a *GeminiAdvisor) Analyze(ctx context.Context, summary string) string {
	ctx, cancel := context.WithTimeout(ctx, advisorTimeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: advisorInstruction}},
		},
	}
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: fmt.Sprintf(advisorPrompt, summary)}},
	}}

	resp, err := a.models.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		log.Printf("❌ Gemini analysis failed: %v", err)
		return AdvisorUnavailable
	}

	text := responseText(resp)
	if text == "" {
		log.Println("⚠️  Gemini returned no text")
		return AdvisorUnavailable
	}
	return text
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(b.String())
}
