package out

import (
	"context"
	"errors"

	"pitchperfect/internal/modules/gateway/domain"
	gatewayout "pitchperfect/internal/modules/gateway/port/out"
)

var errNoProvider = errors.New("no language model provider configured: set ANTHROPIC_API_KEY, OPENAI_API_KEY or PITCH_PROVIDER=mock")

// UnconfiguredCompleter fails every call. It lets the app start and browse
// stored meetings without credentials.
type UnconfiguredCompleter struct{}

var _ gatewayout.Completer = UnconfiguredCompleter{}

func (UnconfiguredCompleter) Complete(context.Context, domain.Request) (string, error) {
	return "", errNoProvider
}
