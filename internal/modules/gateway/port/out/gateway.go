package out

import (
	"context"

	"pitchperfect/internal/modules/gateway/domain"
)

// Completer performs one chat completion against the configured provider.
// An empty string means the provider returned no content.
type Completer interface {
	Complete(ctx context.Context, req domain.Request) (string, error)
}
