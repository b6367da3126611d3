package triage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"propcare/models"

	genai "github.com/google/generative-ai-go/genai"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{name: "plain", in: `{"urgency": 0.8}`, want: 0.8},
		{name: "fenced", in: "```json\n{\"urgency\": 0.3}\n```", want: 0.3},
		{name: "bare fence", in: "```\n{\"urgency\": 1}\n```", want: 1},
		{name: "clamped high", in: `{"urgency": 4}`, want: 1},
		{name: "clamped low", in: `{"urgency": -2}`, want: 0},
		{name: "missing field", in: `{"score": 0.5}`, wantErr: true},
		{name: "prose", in: "very urgent", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScore(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnparseableScore) {
					t.Fatalf("got %v, want ErrUnparseableScore", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

type fakeGenerator struct {
	resp     *genai.GenerateContentResponse
	err      error
	prompt   string
	deadline bool
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	_, f.deadline = ctx.Deadline()
	if len(parts) > 0 {
		if txt, ok := parts[0].(genai.Text); ok {
			f.prompt = string(txt)
		}
	}
	return f.resp, f.err
}

func textResponse(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Text(s)}}}},
	}
}

func TestGeminiOracleScoreUrgency(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse(`{"urgency": 0.9}`)}
	o := &GeminiOracle{model: gen, timeout: time.Second}

	score, err := o.ScoreUrgency(context.Background(), models.MaintenanceCase{Title: "Burst pipe", Description: "Water in hallway"})
	if err != nil {
		t.Fatalf("ScoreUrgency: %v", err)
	}
	if score != 0.9 {
		t.Errorf("score = %v", score)
	}
	if !gen.deadline {
		t.Error("expected the call to carry a deadline")
	}
	if !strings.Contains(gen.prompt, "Burst pipe") || !strings.Contains(gen.prompt, "Water in hallway") {
		t.Errorf("prompt missing case text: %q", gen.prompt)
	}
}

func TestGeminiOracleErrors(t *testing.T) {
	boom := errors.New("quota")
	o := &GeminiOracle{model: &fakeGenerator{err: boom}}
	if _, err := o.ScoreUrgency(context.Background(), models.MaintenanceCase{}); !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}

	empty := &GeminiOracle{model: &fakeGenerator{resp: &genai.GenerateContentResponse{}}}
	if _, err := empty.ScoreUrgency(context.Background(), models.MaintenanceCase{}); !errors.Is(err, ErrUnparseableScore) {
		t.Fatalf("got %v, want ErrUnparseableScore", err)
	}
}
