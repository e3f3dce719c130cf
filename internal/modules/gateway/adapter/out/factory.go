package out

import (
	"fmt"

	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/openai"

	"pitchperfect/internal/modules/gateway/domain"
	gatewayout "pitchperfect/internal/modules/gateway/port/out"
	"pitchperfect/internal/platform/config"
)

// NewCompleter builds the completer for provider along with the default
// model name of that provider.
func NewCompleter(provider, apiKey string) (gatewayout.Completer, string, error) {
	switch provider {
	case config.ProviderAnthropic:
		llm, err := anthropic.New(anthropic.WithToken(apiKey), anthropic.WithModel(domain.DefaultAnthropicModel))
		if err != nil {
			return nil, "", fmt.Errorf("create anthropic client: %w", err)
		}
		return NewLangchainCompleter(llm), domain.DefaultAnthropicModel, nil
	case config.ProviderOpenAI:
		llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(domain.DefaultOpenAIModel))
		if err != nil {
			return nil, "", fmt.Errorf("create openai client: %w", err)
		}
		return NewLangchainCompleter(llm), domain.DefaultOpenAIModel, nil
	case config.ProviderMock:
		return NewMockCompleter(), "mock", nil
	case "":
		return UnconfiguredCompleter{}, domain.DefaultAnthropicModel, nil
	default:
		return nil, "", fmt.Errorf("unknown provider %q", provider)
	}
}
