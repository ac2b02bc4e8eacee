package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const scoringSystemPrompt = `You are a financial sentiment rater. Given a news snippet, rate its sentiment toward the companies and markets it mentions.

Output as JSON only, no other text:
{
  "compound": -1.0 to 1.0 (negative = bearish, positive = bullish, 0 = neutral)
}`

type OpenAIEngine struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewOpenAIEngine(apiKey string) *OpenAIEngine {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIEngine{
		client: &client,
		model:  openai.ChatModelGPT4oMini,
	}
}

func (e *OpenAIEngine) Compound(text string) (float64, error) {
	resp, err := e.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: e.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(scoringSystemPrompt),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return 0, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("no response from openai")
	}

	return parseCompound(resp.Choices[0].Message.Content)
}

func parseCompound(content string) (float64, error) {
	content = cleanJSONResponse(content)

	var parsed struct {
		Compound float64 `json:"compound"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	if parsed.Compound < -1 || parsed.Compound > 1 {
		return 0, fmt.Errorf("compound score %f out of range", parsed.Compound)
	}

	return parsed.Compound, nil
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
