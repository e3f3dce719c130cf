package usecase

import (
	"context"

	"pitchperfect/internal/modules/strategy/domain"
	"pitchperfect/internal/modules/strategy/dto"
	strategyin "pitchperfect/internal/modules/strategy/port/in"
	"pitchperfect/internal/modules/strategy/service"
)

type Interactor struct {
	svc *service.StrategyService
}

func NewInteractor(svc *service.StrategyService) strategyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.StrategyOutput, error) {
	strategy, err := i.svc.Create(ctx, input.Profile, input.Force)
	if err != nil {
		return dto.StrategyOutput{}, err
	}
	return toOutput(strategy), nil
}

func (i *Interactor) Get(ctx context.Context, profile string) (dto.StrategyOutput, error) {
	strategy, err := i.svc.Get(ctx, profile)
	if err != nil {
		return dto.StrategyOutput{}, err
	}
	return toOutput(strategy), nil
}

func toOutput(s domain.Strategy) dto.StrategyOutput {
	return dto.StrategyOutput{
		Profile:     s.Profile,
		Content:     s.Content,
		Path:        s.Path,
		GeneratedAt: s.GeneratedAt,
		Meetings:    s.Meetings,
		Reports:     s.Reports,
		Model:       s.Model,
	}
}
