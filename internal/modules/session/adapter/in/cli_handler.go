package in

import (
	"context"

	sessiondto "pitchperfect/internal/modules/session/dto"
	sessionin "pitchperfect/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListMeetings(ctx context.Context) ([]sessiondto.MeetingSummaryOutput, error) {
	return h.usecase.ListMeetings(ctx)
}

func (h CLIHandler) ShowMeeting(ctx context.Context, filename string) (sessiondto.MeetingOutput, error) {
	return h.usecase.LoadMeeting(ctx, filename)
}

func (h CLIHandler) ListReports(ctx context.Context) ([]sessiondto.ReportSummaryOutput, error) {
	return h.usecase.ListReports(ctx)
}

func (h CLIHandler) ShowReport(ctx context.Context, filename string) (sessiondto.ReportOutput, error) {
	return h.usecase.ReadReport(ctx, filename)
}

func (h CLIHandler) History(ctx context.Context, customer string, limit int) ([]sessiondto.HistoryEntryOutput, error) {
	return h.usecase.History(ctx, sessiondto.HistoryInput{Customer: customer, Limit: limit})
}

func (h CLIHandler) Reindex(ctx context.Context) (sessiondto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}
