package usecase

import (
	"context"

	"pitchperfect/internal/modules/session/domain"
	sessiondto "pitchperfect/internal/modules/session/dto"
	sessionin "pitchperfect/internal/modules/session/port/in"
	"pitchperfect/internal/modules/session/service"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) SaveMeeting(ctx context.Context, input sessiondto.SaveSessionInput) (sessiondto.SaveOutput, error) {
	filename, err := i.svc.SaveMeeting(ctx, input.Session)
	if err != nil {
		return sessiondto.SaveOutput{}, err
	}
	return sessiondto.SaveOutput{Filename: filename}, nil
}

func (i *Interactor) SaveEvaluations(ctx context.Context, input sessiondto.SaveSessionInput) (sessiondto.SaveOutput, error) {
	filename, err := i.svc.SaveEvaluations(ctx, input.Session)
	if err != nil {
		return sessiondto.SaveOutput{}, err
	}
	return sessiondto.SaveOutput{Filename: filename}, nil
}

func (i *Interactor) SaveReport(ctx context.Context, input sessiondto.SaveReportInput) (sessiondto.SaveOutput, error) {
	filename, err := i.svc.SaveReport(ctx, input.Profile, input.Token, input.Text)
	if err != nil {
		return sessiondto.SaveOutput{}, err
	}
	return sessiondto.SaveOutput{Filename: filename}, nil
}

// LoadMeeting prefers the identity stored in the record and falls back to
// the one encoded in the file name. Token stays empty when neither holds a
// valid meeting token.
func (i *Interactor) LoadMeeting(ctx context.Context, filename string) (sessiondto.MeetingOutput, error) {
	record, err := i.svc.Load(ctx, filename)
	if err != nil {
		return sessiondto.MeetingOutput{}, err
	}
	nameProfile, nameToken, _ := domain.ParseArtifactName(filename, domain.MeetingPrefix, domain.MeetingExtension)

	profile := record.CustomerProfile
	if profile == "" || profile == domain.UnknownCustomer || domain.ValidateProfile(profile) != nil {
		profile = nameProfile
	}
	token := record.MeetingStart
	if domain.ValidateToken(token) != nil {
		token = nameToken
	}
	return sessiondto.MeetingOutput{
		Filename: filename,
		Profile:  profile,
		Token:    token,
		Record:   record,
		Session:  record.Session(profile, token),
	}, nil
}

func (i *Interactor) ListMeetings(ctx context.Context) ([]sessiondto.MeetingSummaryOutput, error) {
	items, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.MeetingSummaryOutput, 0, len(items))
	for _, item := range items {
		out = append(out, sessiondto.MeetingSummaryOutput{
			Filename:        item.Filename,
			CustomerProfile: item.CustomerProfile,
			MeetingStart:    item.MeetingStart,
			Turns:           item.Turns,
			Evaluations:     item.Evaluations,
		})
	}
	return out, nil
}

func (i *Interactor) ListReports(ctx context.Context) ([]sessiondto.ReportSummaryOutput, error) {
	items, err := i.svc.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.ReportSummaryOutput, 0, len(items))
	for _, item := range items {
		out = append(out, sessiondto.ReportSummaryOutput{Filename: item.Filename, Customer: item.Customer, Token: item.Token})
	}
	return out, nil
}

func (i *Interactor) ReadReport(ctx context.Context, filename string) (sessiondto.ReportOutput, error) {
	text, err := i.svc.ReadReport(ctx, filename)
	if err != nil {
		return sessiondto.ReportOutput{}, err
	}
	summary := domain.ReportSummaryFromName(filename)
	return sessiondto.ReportOutput{Filename: filename, Customer: summary.Customer, Text: text}, nil
}

func (i *Interactor) History(ctx context.Context, input sessiondto.HistoryInput) ([]sessiondto.HistoryEntryOutput, error) {
	entries, err := i.svc.History(ctx, input.Customer, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.HistoryEntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, sessiondto.HistoryEntryOutput{
			Filename:     e.Filename,
			Customer:     e.Customer,
			MeetingStart: e.MeetingStart,
			Turns:        e.Turns,
			Evaluations:  e.Evaluations,
			UpdatedAt:    e.UpdatedAt,
		})
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) (sessiondto.ReindexOutput, error) {
	count, err := i.svc.Reindex(ctx)
	if err != nil {
		return sessiondto.ReindexOutput{}, err
	}
	return sessiondto.ReindexOutput{Meetings: count}, nil
}
