package out

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"pitchperfect/internal/modules/gateway/domain"
	gatewayout "pitchperfect/internal/modules/gateway/port/out"
)

// LangchainCompleter sends requests through any langchaingo chat model.
type LangchainCompleter struct {
	model llms.Model
}

var _ gatewayout.Completer = (*LangchainCompleter)(nil)

func NewLangchainCompleter(model llms.Model) *LangchainCompleter {
	return &LangchainCompleter{model: model}
}

func (c *LangchainCompleter) Complete(ctx context.Context, req domain.Request) (string, error) {
	messages := make([]llms.MessageContent, 0, len(req.Turns)+1)
	if req.System != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	for _, turn := range req.Turns {
		switch turn.Role {
		case domain.RoleUser:
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, turn.Content))
		case domain.RoleAssistant:
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeAI, turn.Content))
		}
	}

	opts := []llms.CallOption{llms.WithTemperature(req.Settings.Temperature)}
	if req.Settings.Model != "" {
		opts = append(opts, llms.WithModel(req.Settings.Model))
	}
	if req.Settings.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.Settings.MaxTokens))
	}

	resp, err := c.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", nil
	}
	return resp.Choices[0].Content, nil
}
