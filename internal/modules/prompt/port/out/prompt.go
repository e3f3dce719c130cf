package out

import (
	"context"

	"pitchperfect/internal/modules/prompt/domain"
)

type PromptStore interface {
	Read(ctx context.Context, namespace domain.Namespace, name string) (string, error)
	List(ctx context.Context, namespace domain.Namespace) ([]string, error)
}
