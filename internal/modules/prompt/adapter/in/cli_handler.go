package in

import (
	"context"

	promptdto "pitchperfect/internal/modules/prompt/dto"
	promptin "pitchperfect/internal/modules/prompt/port/in"
)

type CLIHandler struct {
	usecase promptin.Usecase
}

func NewCLIHandler(usecase promptin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListProfiles(ctx context.Context) ([]promptdto.ProfileOutput, error) {
	return h.usecase.ListProfiles(ctx)
}

func (h CLIHandler) ReadPrompt(ctx context.Context, namespace, name string) (promptdto.ReadOutput, error) {
	return h.usecase.Read(ctx, promptdto.ReadInput{Namespace: namespace, Name: name})
}
