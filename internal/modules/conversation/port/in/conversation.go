package in

import (
	"context"

	"pitchperfect/internal/modules/conversation/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error)
	Submit(ctx context.Context, input dto.SubmitInput) (dto.TurnOutput, error)
	Resume(ctx context.Context, input dto.ResumeInput) (dto.SessionOutput, error)
	Reset(ctx context.Context) (dto.ResetOutput, error)
	Active(ctx context.Context) (dto.SessionOutput, error)
}
