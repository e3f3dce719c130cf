package in

import (
	"context"

	"pitchperfect/internal/modules/session/dto"
)

type Usecase interface {
	SaveMeeting(ctx context.Context, input dto.SaveSessionInput) (dto.SaveOutput, error)
	SaveEvaluations(ctx context.Context, input dto.SaveSessionInput) (dto.SaveOutput, error)
	SaveReport(ctx context.Context, input dto.SaveReportInput) (dto.SaveOutput, error)
	LoadMeeting(ctx context.Context, filename string) (dto.MeetingOutput, error)
	ListMeetings(ctx context.Context) ([]dto.MeetingSummaryOutput, error)
	ListReports(ctx context.Context) ([]dto.ReportSummaryOutput, error)
	ReadReport(ctx context.Context, filename string) (dto.ReportOutput, error)
	History(ctx context.Context, input dto.HistoryInput) ([]dto.HistoryEntryOutput, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
}
