package in

import (
	"context"

	strategydto "pitchperfect/internal/modules/strategy/dto"
	strategyin "pitchperfect/internal/modules/strategy/port/in"
)

type CLIHandler struct {
	usecase strategyin.Usecase
}

func NewCLIHandler(usecase strategyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, profile string, force bool) (strategydto.StrategyOutput, error) {
	return h.usecase.Create(ctx, strategydto.CreateInput{Profile: profile, Force: force})
}

func (h CLIHandler) Show(ctx context.Context, profile string) (strategydto.StrategyOutput, error) {
	return h.usecase.Get(ctx, profile)
}
