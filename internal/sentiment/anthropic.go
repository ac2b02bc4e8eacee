package sentiment

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicEngine struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicEngine(apiKey string) *AnthropicEngine {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicEngine{
		client: &client,
		model:  anthropic.Model("claude-haiku-4-5"),
	}
}

func (e *AnthropicEngine) Compound(text string) (float64, error) {
	resp, err := e.client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     e.model,
		MaxTokens: 256,
		System: []anthropic.TextBlockParam{
			{Text: scoringSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		return 0, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return 0, fmt.Errorf("no response from anthropic")
	}

	return parseCompound(resp.Content[0].Text)
}
