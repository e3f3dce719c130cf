package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"pitchperfect/internal/modules/conversation/domain"
	gatewaydomain "pitchperfect/internal/modules/gateway/domain"
	gatewaydto "pitchperfect/internal/modules/gateway/dto"
	gatewayin "pitchperfect/internal/modules/gateway/port/in"
	promptin "pitchperfect/internal/modules/prompt/port/in"
	sessiondomain "pitchperfect/internal/modules/session/domain"
	sessiondto "pitchperfect/internal/modules/session/dto"
	sessionin "pitchperfect/internal/modules/session/port/in"
	apperrors "pitchperfect/internal/platform/errors"
	"pitchperfect/internal/platform/id"
)

// TurnResult is what one submitted vendor message produced.
type TurnResult struct {
	Reply      string
	Evaluation string
	Report     string
	Files      Files
	Notices    []string
}

type Files struct {
	Meeting     string
	Evaluations string
	Report      string
}

func (r *TurnResult) notice(format string, args ...any) {
	r.Notices = append(r.Notices, fmt.Sprintf(format, args...))
}

type Engine struct {
	prompts  promptin.Usecase
	gateway  gatewayin.Usecase
	sessions sessionin.Usecase
	tokens   id.Generator
	policy   domain.ReportPolicy
	logger   *slog.Logger
}

func NewEngine(
	prompts promptin.Usecase,
	gateway gatewayin.Usecase,
	sessions sessionin.Usecase,
	tokens id.Generator,
	policy domain.ReportPolicy,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if policy == "" {
		policy = domain.ReportPolicyVendorOnly
	}
	return &Engine{prompts: prompts, gateway: gateway, sessions: sessions, tokens: tokens, policy: policy, logger: logger}
}

// Start snapshots the prompts of profile into a new session. Nothing is
// written until the first completed turn. Missing prompts come back as
// notices.
func (e *Engine) Start(ctx context.Context, profile string) (sessiondomain.Session, []string, error) {
	profile = strings.TrimSpace(profile)
	if err := sessiondomain.ValidateProfile(profile); err != nil {
		return sessiondomain.Session{}, nil, err
	}
	prompts, err := e.prompts.LoadSessionPrompts(ctx, profile)
	if err != nil {
		return sessiondomain.Session{}, nil, err
	}
	notices := make([]string, 0, len(prompts.Missing))
	for _, name := range prompts.Missing {
		notices = append(notices, fmt.Sprintf("prompt %q is missing; continuing without it", name))
	}
	s := sessiondomain.New(profile, e.tokens.New(), prompts.SystemContext, sessiondomain.Models{
		Customer:           prompts.CustomerModel,
		ResponseEvaluation: prompts.ResponseEvaluationModel,
		MeetingEvaluation:  prompts.MeetingEvaluationModel,
	})
	e.logger.Info("meeting started", "profile", profile, "token", s.Token, "missing_prompts", len(prompts.Missing))
	return s, notices, nil
}

// Turn processes one vendor message. When the customer reply cannot be
// obtained the original session is returned unchanged together with an
// error wrapping ErrGateway, so the vendor can resubmit.
func (e *Engine) Turn(ctx context.Context, s sessiondomain.Session, input string) (sessiondomain.Session, TurnResult, error) {
	if s.Ended {
		return s, TurnResult{}, apperrors.ErrConversationEnded
	}
	if strings.TrimSpace(input) == "" {
		return s, TurnResult{}, fmt.Errorf("%w: empty message", apperrors.ErrInvalidInput)
	}

	result := TurnResult{}
	next := s.WithMessage(sessiondomain.RoleUser, input)
	next = e.evaluate(ctx, next, &result)

	if domain.IsTermination(input) {
		next = e.finish(ctx, next, &result)
		return next, result, nil
	}

	reply, err := e.send(ctx, domain.ChatRequest(next), gatewaydomain.PurposeChat)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = fmt.Errorf("%w: customer reply was empty", apperrors.ErrGateway)
	}
	if err != nil {
		e.logger.Warn("customer reply failed; turn not advanced", "profile", s.Profile, "token", s.Token, "error", err)
		return s, TurnResult{}, err
	}
	next = next.WithMessage(sessiondomain.RoleAssistant, reply)
	result.Reply = reply
	e.persist(ctx, next, &result)
	return next, result, nil
}

func (e *Engine) evaluate(ctx context.Context, s sessiondomain.Session, result *TurnResult) sessiondomain.Session {
	req, ok := domain.ResponseEvaluationRequest(s)
	if !ok {
		return s
	}
	text, err := e.send(ctx, req, gatewaydomain.PurposeResponseEvaluation)
	if err != nil {
		e.logger.Warn("response evaluation failed", "token", s.Token, "error", err)
		result.notice("response evaluation unavailable: %v", err)
		return s
	}
	if strings.TrimSpace(text) == "" {
		return s
	}
	result.Evaluation = text
	return s.WithEvaluation(text)
}

// finish ends s. A failed report still ends the meeting.
func (e *Engine) finish(ctx context.Context, s sessiondomain.Session, result *TurnResult) sessiondomain.Session {
	report, err := e.send(ctx, domain.MeetingEvaluationRequest(e.policy, s), gatewaydomain.PurposeMeetingEvaluation)
	switch {
	case err != nil:
		e.logger.Warn("meeting evaluation failed", "token", s.Token, "error", err)
		result.notice("meeting evaluation unavailable: %v", err)
	case strings.TrimSpace(report) == "":
		result.notice("meeting evaluation came back empty; no report written")
	default:
		result.Report = report
		saved, err := e.sessions.SaveReport(ctx, sessiondto.SaveReportInput{Profile: s.Profile, Token: s.Token, Text: report})
		if err != nil {
			e.logger.Error("save report", "token", s.Token, "error", err)
			result.notice("report could not be saved: %v", err)
		} else {
			result.Files.Report = saved.Filename
		}
	}
	ended := s.WithEnded()
	e.persist(ctx, ended, result)
	e.logger.Info("meeting ended", "profile", s.Profile, "token", s.Token, "report", result.Files.Report != "")
	return ended
}

// persist saves the meeting and, when there is anything to bundle, its
// evaluations. Failures become notices.
func (e *Engine) persist(ctx context.Context, s sessiondomain.Session, result *TurnResult) {
	saved, err := e.sessions.SaveMeeting(ctx, sessiondto.SaveSessionInput{Session: s})
	if err != nil {
		e.logger.Error("save meeting", "token", s.Token, "error", err)
		result.notice("meeting could not be saved: %v", err)
	} else {
		result.Files.Meeting = saved.Filename
	}
	if len(s.Evaluations) == 0 {
		return
	}
	bundle, err := e.sessions.SaveEvaluations(ctx, sessiondto.SaveSessionInput{Session: s})
	if err != nil {
		e.logger.Error("save evaluations", "token", s.Token, "error", err)
		result.notice("evaluations could not be saved: %v", err)
		return
	}
	result.Files.Evaluations = bundle.Filename
}

// Save writes s when it holds at least one turn and has not ended; an
// ended meeting was saved when it finished. It returns the meeting file
// name, or "" when there was nothing to save.
func (e *Engine) Save(ctx context.Context, s sessiondomain.Session) (string, error) {
	if !s.HasTurns() || s.Ended {
		return "", nil
	}
	saved, err := e.sessions.SaveMeeting(ctx, sessiondto.SaveSessionInput{Session: s})
	if err != nil {
		return "", err
	}
	return saved.Filename, nil
}

// Resume rebuilds a session from a stored meeting. The meeting keeps its
// token, so later saves overwrite the same files. A meeting whose report
// was already written stays ended.
func (e *Engine) Resume(ctx context.Context, filename string) (sessiondomain.Session, []string, error) {
	loaded, err := e.sessions.LoadMeeting(ctx, filename)
	if err != nil {
		return sessiondomain.Session{}, nil, err
	}
	if err := sessiondomain.ValidateProfile(loaded.Profile); err != nil {
		return sessiondomain.Session{}, nil, fmt.Errorf("resume %s: %w", filename, err)
	}
	s := loaded.Session
	var notices []string
	if s.Token == "" {
		s.Token = e.tokens.New()
		notices = append(notices, fmt.Sprintf("meeting %s had no usable token; later saves use %s", filename, s.Token))
	}
	reported, err := e.reported(ctx, s)
	if err != nil {
		e.logger.Warn("could not check for a meeting report", "file", filename, "error", err)
	}
	s.Ended = reported
	if reported {
		notices = append(notices, fmt.Sprintf("meeting %s has a report and is read-only; start a new meeting to continue", filename))
	}
	e.logger.Info("meeting resumed", "file", filename, "token", s.Token, "messages", len(s.Messages), "ended", s.Ended)
	return s, notices, nil
}

func (e *Engine) reported(ctx context.Context, s sessiondomain.Session) (bool, error) {
	_, err := e.sessions.ReadReport(ctx, sessiondomain.ReportFilename(s.Profile, s.Token))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperrors.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (e *Engine) send(ctx context.Context, req domain.Request, purpose gatewaydomain.Purpose) (string, error) {
	turns := make([]gatewaydto.Turn, 0, len(req.Turns))
	for _, m := range req.Turns {
		turns = append(turns, gatewaydto.Turn{Role: string(m.Role), Content: m.Content})
	}
	out, err := e.gateway.Send(ctx, gatewaydto.SendInput{SystemText: req.System, Turns: turns, Purpose: string(purpose)})
	if err != nil {
		if !errors.Is(err, apperrors.ErrGateway) {
			err = fmt.Errorf("%w: %v", apperrors.ErrGateway, err)
		}
		return "", err
	}
	return out.Text, nil
}
