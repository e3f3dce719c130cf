package usecase

import (
	"context"
	"fmt"

	"pitchperfect/internal/modules/prompt/domain"
	"pitchperfect/internal/modules/prompt/dto"
	promptin "pitchperfect/internal/modules/prompt/port/in"
	"pitchperfect/internal/modules/prompt/service"
	apperrors "pitchperfect/internal/platform/errors"
)

type Interactor struct {
	svc *service.PromptService
}

func NewInteractor(svc *service.PromptService) promptin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Read(ctx context.Context, input dto.ReadInput) (dto.ReadOutput, error) {
	ns := domain.Namespace(input.Namespace)
	if ns == "" {
		ns = domain.NamespaceInstructions
	}
	if ns != domain.NamespaceInstructions && ns != domain.NamespaceCustomers {
		return dto.ReadOutput{}, fmt.Errorf("%w: namespace %q", apperrors.ErrInvalidInput, input.Namespace)
	}
	text, found := i.svc.ReadOrEmpty(ctx, ns, input.Name)
	return dto.ReadOutput{Name: input.Name, Text: text, Found: found}, nil
}

func (i *Interactor) ListProfiles(ctx context.Context) ([]dto.ProfileOutput, error) {
	profiles, err := i.svc.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProfileOutput, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, dto.ProfileOutput{Name: p.Name, DisplayName: p.DisplayName, Role: p.Role, Path: p.Path})
	}
	return out, nil
}

func (i *Interactor) LoadSessionPrompts(ctx context.Context, profile string) (dto.SessionPrompts, error) {
	p, err := i.svc.LoadSessionPrompts(ctx, profile)
	if err != nil {
		return dto.SessionPrompts{}, err
	}
	return dto.SessionPrompts{
		Profile:                 profile,
		SystemContext:           p.SystemContext,
		CustomerModel:           p.CustomerModel,
		ResponseEvaluationModel: p.ResponseEvaluationModel,
		MeetingEvaluationModel:  p.MeetingEvaluationModel,
		Missing:                 p.Missing,
	}, nil
}
