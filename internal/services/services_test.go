package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"logmed-backend/internal/models"

	"google.golang.org/genai"
)

func TestTaskAssignedMessage(t *testing.T) {
	due := "14:30"
	task := &models.Task{ID: "t1", Title: "Conferir manifestos", Priority: models.TaskPriorityHigh, DueTime: &due}

	msg := taskAssignedMessage("device-token", task)

	if msg.Token != "device-token" {
		t.Errorf("unexpected token %q", msg.Token)
	}
	if msg.Notification.Body != "Conferir manifestos (até 14:30)" {
		t.Errorf("unexpected body %q", msg.Notification.Body)
	}
	if msg.Data["task_id"] != "t1" || msg.Data["priority"] != "high" || msg.Data["type"] != "task_assigned" {
		t.Errorf("unexpected data %v", msg.Data)
	}
	if msg.Android.Priority != "high" {
		t.Error("expected high android priority")
	}

	msg = taskAssignedMessage("x", &models.Task{Title: "Sem prazo"})
	if msg.Notification.Body != "Sem prazo" {
		t.Errorf("unexpected body without due time %q", msg.Notification.Body)
	}
}

func TestDisabledAdvisor(t *testing.T) {
	if got := (DisabledAdvisor{}).Analyze(context.Background(), "x"); got != AdvisorUnavailable {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestNewGeminiAdvisorRequiresKey(t *testing.T) {
	if _, err := NewGeminiAdvisor(context.Background(), "", "gemini-2.5-flash"); err == nil {
		t.Error("expected error without api key")
	}
}

type fakeGenerator struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	resp     *genai.GenerateContentResponse
	err      error
}

func (g *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	g.model, g.contents, g.config = model, contents, config
	return g.resp, g.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGeminiAdvisor(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse("1. Agrupar rotas", "\n2. Revisar pedágios")}
	a := NewGeminiAdvisorWith(gen, "gemini-test")

	got := a.Analyze(context.Background(), "3 motoristas cadastrados")
	if got != "1. Agrupar rotas\n2. Revisar pedágios" {
		t.Errorf("unexpected analysis %q", got)
	}
	if gen.model != "gemini-test" {
		t.Errorf("unexpected model %q", gen.model)
	}
	if len(gen.contents) != 1 || len(gen.contents[0].Parts) != 1 || !strings.Contains(gen.contents[0].Parts[0].Text, "3 motoristas cadastrados") {
		t.Errorf("summary not sent: %+v", gen.contents)
	}
	if gen.config == nil || gen.config.SystemInstruction == nil || !strings.Contains(gen.config.SystemInstruction.Parts[0].Text, "logística hospitalar") {
		t.Error("system instruction not sent")
	}
}

func TestGeminiAdvisorFailure(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"upstream error", &fakeGenerator{err: errors.New("boom")}},
		{"no candidates", &fakeGenerator{resp: &genai.GenerateContentResponse{}}},
		{"blank text", &fakeGenerator{resp: textResponse("  ")}},
		{"nil response", &fakeGenerator{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewGeminiAdvisorWith(tt.gen, "gemini-test")
			if got := a.Analyze(context.Background(), "x"); got != AdvisorUnavailable {
				t.Errorf("expected fallback, got %q", got)
			}
		})
	}
}
