package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"TrendEngine/internal/config"
	"TrendEngine/internal/ports"
)

const defaultMaxTokens = 4096

// MessagesClient is the slice of the Anthropic SDK the generator needs.
type MessagesClient interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicGenerator implements ports.StrategyGenerator with Claude.
type AnthropicGenerator struct {
	messages  MessagesClient
	model     string
	maxTokens int64
}

var _ ports.StrategyGenerator = (*AnthropicGenerator)(nil)

// NewAnthropicGenerator builds a generator from configuration.
func NewAnthropicGenerator(cfg config.StrategyConfig) *AnthropicGenerator {
	opts := []option.RequestOption{}
	if cfg.AnthropicAPIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.AnthropicAPIKey))
	}
	client := anthropic.NewClient(opts...)
	return NewAnthropicGeneratorWithClient(&client.Messages, cfg.Model, cfg.MaxTokens)
}

// NewAnthropicGeneratorWithClient wires an explicit messages client.
func NewAnthropicGeneratorWithClient(messages MessagesClient, model string, maxTokens int) *AnthropicGenerator {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &AnthropicGenerator{
		messages:  messages,
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

// Name identifies the generator in brief metadata.
func (g *AnthropicGenerator) Name() string {
	return config.ProviderAnthropic
}

// Generate sends one user message and returns the concatenated text blocks.
func (g *AnthropicGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	if g == nil || g.messages == nil {
		return "", fmt.Errorf("anthropic generator is not configured")
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if strings.TrimSpace(system) != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	message, err := g.messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var out strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("anthropic returned no text content")
	}
	return out.String(), nil
}
