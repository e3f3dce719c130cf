package usecase

import (
	"context"

	"pitchperfect/internal/modules/gateway/domain"
	"pitchperfect/internal/modules/gateway/dto"
	gatewayin "pitchperfect/internal/modules/gateway/port/in"
	"pitchperfect/internal/modules/gateway/service"
)

type Interactor struct {
	svc *service.GatewayService
}

func NewInteractor(svc *service.GatewayService) gatewayin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Send(ctx context.Context, input dto.SendInput) (dto.SendOutput, error) {
	roles := make([]string, len(input.Turns))
	contents := make([]string, len(input.Turns))
	for idx, turn := range input.Turns {
		roles[idx] = turn.Role
		contents[idx] = turn.Content
	}
	text, settings, err := i.svc.Send(ctx, input.SystemText, domain.FilterTurns(roles, contents), domain.Purpose(input.Purpose))
	if err != nil {
		return dto.SendOutput{}, err
	}
	return dto.SendOutput{Text: text, Model: settings.Model}, nil
}
