// internal/genai/gemini.go

// Package genai holds the optional generative hint source. The assistant
// consults it for telemetry and future use only; deterministic extraction
// rules stay authoritative and never wait on this package.
package genai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const hintContext = `You are a library assistant. Your task is to help users find books and understand their queries.
Extract the following information from user queries:
- Intent (search, borrow, return, availability)
- Book title (if mentioned)
- Author name (if mentioned)
- Category (if mentioned)
- General search term (if no specific title/author/category)

Format your response as a JSON-like structure with these fields.`

// Gemini generates query-interpretation hints with a Google Gemini model.
type Gemini struct {
	model llms.Model
	name  string
}

// NewGemini creates a Gemini hint source. ctx covers client construction
// only; per-hint deadlines come from the caller.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	model, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Gemini{model: model, name: modelName}, nil
}

// Hint asks the model to analyze the query and returns its raw text
// response. Callers must treat the result as untrusted.
func (g *Gemini) Hint(ctx context.Context, query string) (string, error) {
	prompt := fmt.Sprintf("%s\nAnalyze this query: %s", hintContext, query)
	response, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
	if err != nil {
		return "", fmt.Errorf("gemini hint failed: %w", err)
	}
	return response, nil
}
