package in

import (
	"context"

	"pitchperfect/internal/modules/strategy/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.StrategyOutput, error)
	Get(ctx context.Context, profile string) (dto.StrategyOutput, error)
}
