package service

import (
	"context"
	"fmt"
	"log/slog"

	"pitchperfect/internal/modules/session/domain"
	sessionout "pitchperfect/internal/modules/session/port/out"
	"pitchperfect/internal/platform/clock"
	apperrors "pitchperfect/internal/platform/errors"
	"pitchperfect/internal/platform/slug"
)

type SessionService struct {
	clock       clock.Clock
	meetings    sessionout.MeetingStore
	evaluations sessionout.TextStore
	reports     sessionout.TextStore
	index       sessionout.MeetingIndexProjector
	logger      *slog.Logger
}

func NewSessionService(
	clock clock.Clock,
	meetings sessionout.MeetingStore,
	evaluations sessionout.TextStore,
	reports sessionout.TextStore,
	index sessionout.MeetingIndexProjector,
	logger *slog.Logger,
) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		clock:       clock,
		meetings:    meetings,
		evaluations: evaluations,
		reports:     reports,
		index:       index,
		logger:      logger,
	}
}

func validateIdentity(profile, token string) error {
	if err := domain.ValidateProfile(profile); err != nil {
		return err
	}
	return domain.ValidateToken(token)
}

// SaveMeeting overwrites the meeting file of s and refreshes the index.
// An index failure is logged; the file remains the source of truth.
func (s *SessionService) SaveMeeting(ctx context.Context, session domain.Session) (string, error) {
	if err := validateIdentity(session.Profile, session.Token); err != nil {
		return "", err
	}
	now := s.clock.Now()
	record := domain.RecordFromSession(session, now)
	filename := domain.MeetingFilename(session.Profile, session.Token)
	if _, err := s.meetings.Save(ctx, filename, record); err != nil {
		return "", err
	}
	s.project(ctx, filename, record)
	return filename, nil
}

func (s *SessionService) project(ctx context.Context, filename string, record domain.MeetingRecord) {
	if s.index == nil {
		return
	}
	summary := domain.SummaryFromRecord(filename, record)
	entry := domain.IndexEntry{
		Filename:     filename,
		Customer:     summary.CustomerProfile,
		MeetingStart: summary.MeetingStart,
		Turns:        summary.Turns,
		Evaluations:  summary.Evaluations,
		UpdatedAt:    s.clock.Now(),
	}
	if err := s.index.Upsert(ctx, entry); err != nil {
		s.logger.Warn("meeting index update failed", "file", filename, "error", err)
	}
}

// SaveEvaluations rewrites the whole evaluation bundle of s.
func (s *SessionService) SaveEvaluations(ctx context.Context, session domain.Session) (string, error) {
	if err := validateIdentity(session.Profile, session.Token); err != nil {
		return "", err
	}
	if len(session.Evaluations) == 0 {
		return "", fmt.Errorf("%w: no evaluations to save", apperrors.ErrInvalidInput)
	}
	filename := domain.EvaluationFilename(session.Profile, session.Token)
	content := domain.RenderEvaluationBundle(session.Evaluations, s.clock.Now())
	if _, err := s.evaluations.Replace(ctx, filename, content); err != nil {
		return "", err
	}
	return filename, nil
}

// SaveReport writes the meeting report once per meeting token.
func (s *SessionService) SaveReport(ctx context.Context, profile, token, text string) (string, error) {
	if err := validateIdentity(profile, token); err != nil {
		return "", err
	}
	filename := domain.ReportFilename(profile, token)
	if _, err := s.reports.Create(ctx, filename, text); err != nil {
		return "", err
	}
	return filename, nil
}

func (s *SessionService) Load(ctx context.Context, filename string) (domain.MeetingRecord, error) {
	if !slug.FileSafe(filename) {
		return domain.MeetingRecord{}, fmt.Errorf("%w: meeting file %q", apperrors.ErrInvalidInput, filename)
	}
	return s.meetings.Load(ctx, filename)
}

func (s *SessionService) List(ctx context.Context) ([]domain.MeetingSummary, error) {
	items, err := s.meetings.List(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortSummaries(items)
	return items, nil
}

func (s *SessionService) ListReports(ctx context.Context) ([]domain.ReportSummary, error) {
	names, err := s.reports.List(ctx, domain.MeetingEvaluationPrefix+"*"+domain.TextExtension)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ReportSummary, 0, len(names))
	for _, name := range names {
		out = append(out, domain.ReportSummaryFromName(name))
	}
	domain.SortReports(out)
	return out, nil
}

func (s *SessionService) ReadReport(ctx context.Context, filename string) (string, error) {
	if !slug.FileSafe(filename) {
		return "", fmt.Errorf("%w: report file %q", apperrors.ErrInvalidInput, filename)
	}
	return s.reports.Read(ctx, filename)
}

func (s *SessionService) History(ctx context.Context, customer string, limit int) ([]domain.IndexEntry, error) {
	if s.index == nil {
		return []domain.IndexEntry{}, nil
	}
	return s.index.History(ctx, customer, limit)
}

// Reindex rebuilds the meeting index from the meeting files.
func (s *SessionService) Reindex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, nil
	}
	items, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.index.Reset(ctx); err != nil {
		return 0, err
	}
	now := s.clock.Now()
	for _, item := range items {
		entry := domain.IndexEntry{
			Filename:     item.Filename,
			Customer:     item.CustomerProfile,
			MeetingStart: item.MeetingStart,
			Turns:        item.Turns,
			Evaluations:  item.Evaluations,
			UpdatedAt:    now,
		}
		if err := s.index.Upsert(ctx, entry); err != nil {
			return 0, err
		}
	}
	s.logger.Info("meeting index rebuilt", "meetings", len(items))
	return len(items), nil
}
