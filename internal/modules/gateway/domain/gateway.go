package domain

import (
	"fmt"
	"strings"

	apperrors "pitchperfect/internal/platform/errors"
)

// Purpose selects the model settings of one call.
type Purpose string

const (
	PurposeChat               Purpose = "chat"
	PurposeResponseEvaluation Purpose = "response_evaluation"
	PurposeMeetingEvaluation  Purpose = "meeting_evaluation"
	PurposeStrategy           Purpose = "strategy"
)

func (p Purpose) Validate() error {
	switch p {
	case PurposeChat, PurposeResponseEvaluation, PurposeMeetingEvaluation, PurposeStrategy:
		return nil
	default:
		return fmt.Errorf("%w: purpose %q", apperrors.ErrInvalidInput, string(p))
	}
}

type Settings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

type Table map[Purpose]Settings

const (
	DefaultAnthropicModel = "claude-3-5-sonnet-latest"
	DefaultOpenAIModel    = "gpt-4o"
)

// DefaultTable returns the built-in settings for every purpose, using
// model for each of them.
func DefaultTable(model string) Table {
	return Table{
		PurposeChat:               {Model: model, Temperature: 0.8, MaxTokens: 500},
		PurposeResponseEvaluation: {Model: model, Temperature: 1.0, MaxTokens: 1000},
		PurposeMeetingEvaluation:  {Model: model, Temperature: 1.0, MaxTokens: 2000},
		PurposeStrategy:           {Model: model, Temperature: 0.7, MaxTokens: 2000},
	}
}

func (t Table) Lookup(p Purpose) (Settings, error) {
	if err := p.Validate(); err != nil {
		return Settings{}, err
	}
	s, ok := t[p]
	if !ok {
		return Settings{}, fmt.Errorf("%w: no model settings for purpose %q", apperrors.ErrInvalidInput, string(p))
	}
	return s, nil
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Turn struct {
	Role    Role
	Content string
}

// Request is one provider call. System travels separately from Turns.
type Request struct {
	Purpose  Purpose
	Settings Settings
	System   string
	Turns    []Turn
}

// FilterTurns keeps user and assistant turns with non-blank content, in
// order. Anything else, system messages included, is dropped.
func FilterTurns(roles []string, contents []string) []Turn {
	turns := make([]Turn, 0, len(roles))
	for i := range roles {
		if i >= len(contents) || strings.TrimSpace(contents[i]) == "" {
			continue
		}
		switch Role(roles[i]) {
		case RoleUser, RoleAssistant:
			turns = append(turns, Turn{Role: Role(roles[i]), Content: contents[i]})
		}
	}
	return turns
}

// WithOverride returns a copy of t with the non-zero fields replacing the
// settings of purpose p.
func (t Table) WithOverride(p Purpose, model string, temperature *float64, maxTokens int) (Table, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	s := out[p]
	if model != "" {
		s.Model = model
	}
	if temperature != nil {
		s.Temperature = *temperature
	}
	if maxTokens > 0 {
		s.MaxTokens = maxTokens
	}
	out[p] = s
	return out, nil
}
