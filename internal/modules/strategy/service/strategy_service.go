package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	gatewaydomain "pitchperfect/internal/modules/gateway/domain"
	gatewaydto "pitchperfect/internal/modules/gateway/dto"
	gatewayin "pitchperfect/internal/modules/gateway/port/in"
	promptdomain "pitchperfect/internal/modules/prompt/domain"
	promptdto "pitchperfect/internal/modules/prompt/dto"
	promptin "pitchperfect/internal/modules/prompt/port/in"
	sessiondomain "pitchperfect/internal/modules/session/domain"
	sessionin "pitchperfect/internal/modules/session/port/in"
	"pitchperfect/internal/modules/strategy/domain"
	strategyout "pitchperfect/internal/modules/strategy/port/out"
	"pitchperfect/internal/platform/clock"
	apperrors "pitchperfect/internal/platform/errors"
)

type StrategyService struct {
	prompts  promptin.Usecase
	gateway  gatewayin.Usecase
	sessions sessionin.Usecase
	store    strategyout.StrategyStore
	clock    clock.Clock
	logger   *slog.Logger
}

func NewStrategyService(
	prompts promptin.Usecase,
	gateway gatewayin.Usecase,
	sessions sessionin.Usecase,
	store strategyout.StrategyStore,
	clock clock.Clock,
	logger *slog.Logger,
) *StrategyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StrategyService{prompts: prompts, gateway: gateway, sessions: sessions, store: store, clock: clock, logger: logger}
}

func (s *StrategyService) Create(ctx context.Context, profile string, force bool) (domain.Strategy, error) {
	profile = strings.TrimSpace(profile)
	if err := sessiondomain.ValidateProfile(profile); err != nil {
		return domain.Strategy{}, err
	}
	exists, err := s.store.Exists(ctx, profile)
	if err != nil {
		return domain.Strategy{}, err
	}
	if exists && !force {
		return domain.Strategy{}, fmt.Errorf("%w: strategy for %s", apperrors.ErrAlreadyExists, profile)
	}

	persona, err := s.require(ctx, string(promptdomain.NamespaceCustomers), profile)
	if err != nil {
		return domain.Strategy{}, err
	}
	template, err := s.require(ctx, string(promptdomain.NamespaceInstructions), promptdomain.StrategyGenerationModel)
	if err != nil {
		return domain.Strategy{}, err
	}
	meetings, err := s.meetings(ctx, profile)
	if err != nil {
		return domain.Strategy{}, err
	}
	reports, err := s.reports(ctx, profile)
	if err != nil {
		return domain.Strategy{}, err
	}

	request := domain.FillTemplate(template, persona, domain.RenderMeetings(meetings), domain.RenderReports(reports))
	out, err := s.gateway.Send(ctx, gatewaydto.SendInput{
		Turns:   []gatewaydto.Turn{{Role: string(sessiondomain.RoleUser), Content: request}},
		Purpose: string(gatewaydomain.PurposeStrategy),
	})
	if err != nil {
		return domain.Strategy{}, err
	}
	if strings.TrimSpace(out.Text) == "" {
		return domain.Strategy{}, fmt.Errorf("%w: strategy came back empty", apperrors.ErrGateway)
	}

	strategy := domain.Strategy{
		Profile:     profile,
		Content:     out.Text,
		GeneratedAt: s.clock.Now(),
		Meetings:    len(meetings),
		Reports:     len(reports),
		Model:       out.Model,
	}
	path, err := s.store.Save(ctx, strategy)
	if err != nil {
		return domain.Strategy{}, err
	}
	strategy.Path = path
	s.logger.Info("strategy generated", "profile", profile, "meetings", len(meetings), "reports", len(reports), "path", path)
	return strategy, nil
}

func (s *StrategyService) Get(ctx context.Context, profile string) (domain.Strategy, error) {
	profile = strings.TrimSpace(profile)
	if err := sessiondomain.ValidateProfile(profile); err != nil {
		return domain.Strategy{}, err
	}
	return s.store.Load(ctx, profile)
}

func (s *StrategyService) require(ctx context.Context, namespace, name string) (string, error) {
	read, err := s.prompts.Read(ctx, promptdto.ReadInput{Namespace: namespace, Name: name})
	if err != nil {
		return "", err
	}
	if !read.Found {
		return "", fmt.Errorf("%w: %s/%s", apperrors.ErrPromptNotFound, namespace, name)
	}
	return read.Text, nil
}

func (s *StrategyService) meetings(ctx context.Context, profile string) ([]domain.MeetingLine, error) {
	all, err := s.sessions.ListMeetings(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.MeetingLine{}
	for _, m := range all {
		if m.CustomerProfile != profile {
			continue
		}
		out = append(out, domain.MeetingLine{Filename: m.Filename, MeetingStart: m.MeetingStart, Turns: m.Turns})
	}
	return out, nil
}

// reports reads every stored report of profile. Unreadable reports are
// logged and left out.
func (s *StrategyService) reports(ctx context.Context, profile string) ([]domain.ReportText, error) {
	all, err := s.sessions.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.ReportText{}
	for _, r := range all {
		if r.Customer != profile {
			continue
		}
		report, err := s.sessions.ReadReport(ctx, r.Filename)
		if err != nil {
			s.logger.Warn("skip unreadable report", "file", r.Filename, "error", err)
			continue
		}
		out = append(out, domain.ReportText{Filename: r.Filename, Text: report.Text})
	}
	return out, nil
}
