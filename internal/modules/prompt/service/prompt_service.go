package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pitchperfect/internal/modules/prompt/domain"
	promptout "pitchperfect/internal/modules/prompt/port/out"
	apperrors "pitchperfect/internal/platform/errors"
	"pitchperfect/internal/platform/logging"
	"pitchperfect/internal/platform/slug"
)

type PromptService struct {
	store  promptout.PromptStore
	logger *slog.Logger
}

func NewPromptService(store promptout.PromptStore, logger *slog.Logger) *PromptService {
	return &PromptService{store: store, logger: logging.OrDefault(logger)}
}

func (s *PromptService) Read(ctx context.Context, namespace domain.Namespace, name string) (string, error) {
	return s.store.Read(ctx, namespace, name)
}

// ReadOrEmpty degrades a missing prompt to "" so callers can carry on with
// partial context. Any other failure is degraded the same way but logged
// at error level.
func (s *PromptService) ReadOrEmpty(ctx context.Context, namespace domain.Namespace, name string) (string, bool) {
	text, err := s.store.Read(ctx, namespace, name)
	if err == nil {
		return text, true
	}
	if errors.Is(err, apperrors.ErrPromptNotFound) {
		s.logger.Warn("prompt missing", slog.String("namespace", string(namespace)), slog.String("name", name))
	} else {
		s.logger.Error("read prompt", slog.String("namespace", string(namespace)), slog.String("name", name), slog.String("error", err.Error()))
	}
	return "", false
}

func (s *PromptService) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	names, err := s.store.List(ctx, domain.NamespaceCustomers)
	if err != nil {
		return nil, err
	}
	profiles := make([]domain.Profile, 0, len(names))
	for _, name := range names {
		body, _ := s.ReadOrEmpty(ctx, domain.NamespaceCustomers, name)
		profiles = append(profiles, domain.ParseProfile(name, name+domain.Extension, body))
	}
	return profiles, nil
}

// SessionPrompts is the prompt snapshot a new meeting starts from.
type SessionPrompts struct {
	SystemContext           string
	CustomerModel           string
	ResponseEvaluationModel string
	MeetingEvaluationModel  string
	Missing                 []string
}

func (s *PromptService) LoadSessionPrompts(ctx context.Context, profile string) (SessionPrompts, error) {
	if !slug.FileSafe(profile) {
		return SessionPrompts{}, fmt.Errorf("%w: customer profile %q", apperrors.ErrInvalidInput, profile)
	}
	out := SessionPrompts{}
	read := func(namespace domain.Namespace, name string) string {
		text, ok := s.ReadOrEmpty(ctx, namespace, name)
		if !ok {
			out.Missing = append(out.Missing, name)
		}
		return text
	}

	persona := read(domain.NamespaceCustomers, profile)
	core := read(domain.NamespaceInstructions, domain.CoreInstruction)
	vendor := read(domain.NamespaceInstructions, domain.VendorModel)
	meeting := read(domain.NamespaceInstructions, domain.MeetingContext)
	out.SystemContext = domain.ComposeSystemContext(core, persona, vendor, meeting)
	out.CustomerModel = persona
	out.ResponseEvaluationModel = read(domain.NamespaceInstructions, domain.ResponseEvaluationModel)

	if text, ok := s.ReadOrEmpty(ctx, domain.NamespaceInstructions, domain.MeetingEvaluationModel); ok {
		out.MeetingEvaluationModel = text
	} else {
		out.MeetingEvaluationModel = read(domain.NamespaceInstructions, domain.ReportModel)
		if out.MeetingEvaluationModel == "" {
			out.Missing = append(out.Missing, domain.MeetingEvaluationModel)
		}
	}
	return out, nil
}
