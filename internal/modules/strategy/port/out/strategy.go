package out

import (
	"context"

	"pitchperfect/internal/modules/strategy/domain"
)

type StrategyStore interface {
	Exists(ctx context.Context, profile string) (bool, error)
	Save(ctx context.Context, strategy domain.Strategy) (string, error)
	Load(ctx context.Context, profile string) (domain.Strategy, error)
}
