package in

import (
	"context"

	"pitchperfect/internal/modules/gateway/dto"
)

type Usecase interface {
	Send(ctx context.Context, input dto.SendInput) (dto.SendOutput, error)
}
