package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/garrettladley/moodly/internal/mood"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

const systemPrompt = "You are a compassionate mental health assistant providing supportive insights."

var ErrEmptyResponse = errors.New("model returned no text")

// Gemini generates insights with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

var _ Generator = (*Gemini)(nil)

func NewGemini(ctx context.Context, apiKey string, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Model() string {
	return g.model
}

func (g *Gemini) Generate(ctx context.Context, scores mood.Scores) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(Prompt(scores)), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
		MaxOutputTokens:   200,
	})
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Prompt renders the request sent to the model for a check-in.
func Prompt(s mood.Scores) string {
	var b strings.Builder
	b.WriteString("As a supportive mental health assistant, provide a brief, encouraging analysis of this mood data:\n\n")
	fmt.Fprintf(&b, "Mood Score: %d/10\n", s.Mood)
	fmt.Fprintf(&b, "Energy Level: %d/10\n", s.Energy)
	fmt.Fprintf(&b, "Anxiety Level: %d/10\n", s.Anxiety)
	if s.SleepHours > 0 {
		fmt.Fprintf(&b, "Sleep: %.1f hours\n", s.SleepHours)
	}
	if notes := strings.TrimSpace(s.Notes); notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", notes)
	}
	b.WriteString("\nPlease provide:\n")
	b.WriteString("1. A gentle, supportive observation about their current state\n")
	b.WriteString("2. One practical suggestion for improvement\n")
	b.WriteString("3. A positive, encouraging message\n\n")
	b.WriteString("Keep response under 150 words and maintain a warm, professional tone.")
	return b.String()
}
