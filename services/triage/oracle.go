// Package triage scores how urgent a newly raised maintenance case is.
package triage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"propcare/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var ErrUnparseableScore = errors.New("triage: unparseable urgency score")

// Oracle returns an urgency score in [0, 1].
type Oracle interface {
	ScoreUrgency(ctx context.Context, c models.MaintenanceCase) (float64, error)
}

// NopOracle scores everything as not urgent.
type NopOracle struct{}

func (NopOracle) ScoreUrgency(context.Context, models.MaintenanceCase) (float64, error) {
	return 0, nil
}

// generator is the part of *genai.GenerativeModel the oracle calls.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type GeminiOracle struct {
	client  *genai.Client
	model   generator
	timeout time.Duration
}

func NewGeminiOracle(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*GeminiOracle, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"
	return &GeminiOracle{client: client, model: model, timeout: timeout}, nil
}

func (g *GeminiOracle) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func (g *GeminiOracle) ScoreUrgency(ctx context.Context, c models.MaintenanceCase) (float64, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt(c)))
	if err != nil {
		return 0, fmt.Errorf("gemini generate error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return 0, fmt.Errorf("%w: empty response", ErrUnparseableScore)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return parseScore(sb.String())
}

func prompt(c models.MaintenanceCase) string {
	var sb strings.Builder
	sb.WriteString("You triage residential maintenance requests. ")
	sb.WriteString("Rate how urgent the request is from 0 (cosmetic, can wait weeks) ")
	sb.WriteString("to 1 (safety risk or active damage, needs someone today). ")
	sb.WriteString(`Reply with JSON only: {"urgency": <number>}.`)
	sb.WriteString("\n\nTitle: ")
	sb.WriteString(c.Title)
	if c.Description != "" {
		sb.WriteString("\nDescription: ")
		sb.WriteString(c.Description)
	}
	if c.SpecialtyID != "" {
		sb.WriteString("\nTrade: ")
		sb.WriteString(c.SpecialtyID)
	}
	return sb.String()
}

// parseScore reads {"urgency": x}, tolerating a markdown code fence, and
// clamps x to [0, 1].
func parseScore(text string) (float64, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	var out struct {
		Urgency *float64 `json:"urgency"`
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnparseableScore, err)
	}
	if out.Urgency == nil {
		return 0, fmt.Errorf("%w: missing urgency", ErrUnparseableScore)
	}
	switch u := *out.Urgency; {
	case u < 0:
		return 0, nil
	case u > 1:
		return 1, nil
	default:
		return u, nil
	}
}
