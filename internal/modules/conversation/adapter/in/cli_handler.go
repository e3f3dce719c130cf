package in

import (
	"context"

	conversationdto "pitchperfect/internal/modules/conversation/dto"
	conversationin "pitchperfect/internal/modules/conversation/port/in"
)

type CLIHandler struct {
	usecase conversationin.Usecase
}

func NewCLIHandler(usecase conversationin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, profile string) (conversationdto.SessionOutput, error) {
	return h.usecase.Start(ctx, conversationdto.StartInput{Profile: profile})
}

func (h CLIHandler) Submit(ctx context.Context, text string) (conversationdto.TurnOutput, error) {
	return h.usecase.Submit(ctx, conversationdto.SubmitInput{Text: text})
}

func (h CLIHandler) Resume(ctx context.Context, filename string) (conversationdto.SessionOutput, error) {
	return h.usecase.Resume(ctx, conversationdto.ResumeInput{Filename: filename})
}

func (h CLIHandler) Reset(ctx context.Context) (conversationdto.ResetOutput, error) {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) Active(ctx context.Context) (conversationdto.SessionOutput, error) {
	return h.usecase.Active(ctx)
}
