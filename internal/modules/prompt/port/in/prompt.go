package in

import (
	"context"

	"pitchperfect/internal/modules/prompt/dto"
)

type Usecase interface {
	Read(ctx context.Context, input dto.ReadInput) (dto.ReadOutput, error)
	ListProfiles(ctx context.Context) ([]dto.ProfileOutput, error)
	LoadSessionPrompts(ctx context.Context, profile string) (dto.SessionPrompts, error)
}
