package recognition

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/prompts"

	"github.com/rastokopal/macrolog/internal/ledger"
)

const recognitionPrompt = `
You are a nutrition database. Break the following meal description into
individual ingredients with estimated nutrition values.

{{.Description}}

Stick to this JSON format for the output, with no text around it:

[
	{
		"name": string, // The ingredient name
		"quantity": string, // Amount with unit, for example "150g"
		"caloriesKcal": number,
		"proteinG": number,
		"carbsG": number,
		"fatsG": number,
		"fiberG": number
	}
]

Use realistic values per the stated quantity, not per 100g. If the
description mentions no quantity, assume a typical single serving.
`

// OpenAIProvider recognizes ingredients through an LLM chain.
type OpenAIProvider struct {
	chain *chains.LLMChain
}

func NewOpenAIProvider(token, model string) (*OpenAIProvider, error) {
	llm, err := openai.New(
		openai.WithToken(token),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing llm: %w", err)
	}

	chain := chains.NewLLMChain(
		llm,
		prompts.NewPromptTemplate(recognitionPrompt, []string{"Description"}),
	)
	return &OpenAIProvider{chain: chain}, nil
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) Recognize(ctx context.Context, description string) ([]ledger.IngredientInput, error) {
	input := map[string]any{
		"Description": description,
	}
	result, err := chains.Call(ctx, p.chain, input)
	if err != nil {
		return nil, fmt.Errorf("calling chain: %w", err)
	}

	responseText, ok := result["text"].(string)
	if !ok {
		return nil, fmt.Errorf("unexpected chain output %T", result["text"])
	}
	responseText = stripMarkup(responseText)

	var items []ledger.IngredientInput
	if err := json.Unmarshal([]byte(responseText), &items); err != nil {
		return nil, fmt.Errorf("unmarshalling response: %w", err)
	}
	return items, nil
}

func stripMarkup(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
