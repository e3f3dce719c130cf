package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gatewaydto "pitchperfect/internal/modules/gateway/dto"
	promptout "pitchperfect/internal/modules/prompt/adapter/out"
	promptservice "pitchperfect/internal/modules/prompt/service"
	promptusecase "pitchperfect/internal/modules/prompt/usecase"
	sessionout "pitchperfect/internal/modules/session/adapter/out"
	sessiondomain "pitchperfect/internal/modules/session/domain"
	sessiondto "pitchperfect/internal/modules/session/dto"
	sessionin "pitchperfect/internal/modules/session/port/in"
	sessionservice "pitchperfect/internal/modules/session/service"
	sessionusecase "pitchperfect/internal/modules/session/usecase"
	strategyout "pitchperfect/internal/modules/strategy/adapter/out"
	"pitchperfect/internal/modules/strategy/dto"
	strategyin "pitchperfect/internal/modules/strategy/port/in"
	"pitchperfect/internal/modules/strategy/service"
	"pitchperfect/internal/modules/strategy/usecase"
	"pitchperfect/internal/platform/clock"
	apperrors "pitchperfect/internal/platform/errors"
	"pitchperfect/internal/platform/logging"
)

type fakeGateway struct {
	reply string
	err   error
	got   []gatewaydto.SendInput
}

func (f *fakeGateway) Send(_ context.Context, input gatewaydto.SendInput) (gatewaydto.SendOutput, error) {
	f.got = append(f.got, input)
	return gatewaydto.SendOutput{Text: f.reply, Model: "test-model"}, f.err
}

type fixture struct {
	uc       strategyin.Usecase
	gateway  *fakeGateway
	sessions sessionin.Usecase
	dir      string
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func newFixture(t *testing.T, template string) fixture {
	t.Helper()
	ws := t.TempDir()
	write(t, filepath.Join(ws, "customers", "Acme Corp.txt"), "Name: Dana Reyes\nRole: CTO")
	if template != "" {
		write(t, filepath.Join(ws, "prompts", "strategy_generation_model.txt"), template)
	}
	logger := logging.Discard()
	clk := clock.Fixed{At: time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)}
	prompts := promptusecase.NewInteractor(promptservice.NewPromptService(promptout.NewFilePromptStore(filepath.Join(ws, "prompts"), filepath.Join(ws, "customers")), logger))
	meetings := filepath.Join(ws, "meetings")
	sessions := sessionusecase.NewInteractor(sessionservice.NewSessionService(
		clk,
		sessionout.NewFileMeetingStore(meetings, logger),
		sessionout.NewFileTextStore(filepath.Join(meetings, "response_evaluations")),
		sessionout.NewFileTextStore(filepath.Join(meetings, "meeting_evaluations")),
		nil,
		logger,
	))
	gw := &fakeGateway{reply: "1. Open with their reporting pain."}
	dir := filepath.Join(ws, "strategies")
	svc := service.NewStrategyService(prompts, gw, sessions, strategyout.NewVaultStrategyStore(dir), clk, logger)
	return fixture{uc: usecase.NewInteractor(svc), gateway: gw, sessions: sessions, dir: dir}
}

func seedHistory(t *testing.T, f fixture) {
	t.Helper()
	ctx := context.Background()
	for _, profile := range []string{"Acme Corp", "Globex"} {
		s := sessiondomain.New(profile, "20240501_090000", "persona", sessiondomain.Models{Customer: "persona"}).
			WithMessage(sessiondomain.RoleUser, "Hello").
			WithMessage(sessiondomain.RoleAssistant, "Hi")
		if _, err := f.sessions.SaveMeeting(ctx, sessiondto.SaveSessionInput{Session: s}); err != nil {
			t.Fatalf("seed meeting: %v", err)
		}
		if _, err := f.sessions.SaveReport(ctx, sessiondto.SaveReportInput{Profile: profile, Token: "20240501_090000", Text: profile + " report"}); err != nil {
			t.Fatalf("seed report: %v", err)
		}
	}
}

func TestCreateStrategyFillsTemplateFromHistory(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "Profile:\n{}\n\nMeetings:\n{}\n\nReports:\n{}")
	seedHistory(t, f)

	out, err := f.uc.Create(context.Background(), dto.CreateInput{Profile: "Acme Corp"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if out.Meetings != 1 || out.Reports != 1 || out.Model != "test-model" {
		t.Fatalf("unexpected output %+v", out)
	}
	if out.Path != filepath.Join(f.dir, "acme-corp_strategy.md") {
		t.Fatalf("unexpected path %q", out.Path)
	}

	sent := f.gateway.got[0]
	if sent.Purpose != "strategy" || sent.SystemText != "" || len(sent.Turns) != 1 {
		t.Fatalf("unexpected request %+v", sent)
	}
	body := sent.Turns[0].Content
	if !strings.HasPrefix(body, "Profile:\nName: Dana Reyes\nRole: CTO\n\nMeetings:\n- meeting_with_Acme Corp_20240501_090000.json") {
		t.Fatalf("unexpected request body:\n%s", body)
	}
	if !strings.Contains(body, "Acme Corp report") || strings.Contains(body, "Globex") {
		t.Fatalf("request must only carry this customer's reports:\n%s", body)
	}

	stored, err := f.uc.Get(context.Background(), "Acme Corp")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Content != "1. Open with their reporting pain." || stored.Meetings != 1 {
		t.Fatalf("unexpected stored strategy %+v", stored)
	}
}

func TestCreateStrategyRequiresForceToReplace(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "Plan for {} using {} and {}")
	ctx := context.Background()
	if _, err := f.uc.Create(ctx, dto.CreateInput{Profile: "Acme Corp"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.uc.Create(ctx, dto.CreateInput{Profile: "Acme Corp"}); !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	f.gateway.reply = "2. Revised plan."
	out, err := f.uc.Create(ctx, dto.CreateInput{Profile: "Acme Corp", Force: true})
	if err != nil {
		t.Fatalf("forced create: %v", err)
	}
	if out.Content != "2. Revised plan." {
		t.Fatalf("unexpected content %q", out.Content)
	}
	body := f.gateway.got[0].Turns[0].Content
	if !strings.Contains(body, "No previous meetings") || !strings.Contains(body, "No previous evaluations") {
		t.Fatalf("empty history must use fallback text:\n%s", body)
	}
}

func TestCreateStrategyFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	noTemplate := newFixture(t, "")
	if _, err := noTemplate.uc.Create(ctx, dto.CreateInput{Profile: "Acme Corp"}); !errors.Is(err, apperrors.ErrPromptNotFound) {
		t.Fatalf("expected ErrPromptNotFound for missing template, got %v", err)
	}

	f := newFixture(t, "{} {} {}")
	if _, err := f.uc.Create(ctx, dto.CreateInput{Profile: "Nobody"}); !errors.Is(err, apperrors.ErrPromptNotFound) {
		t.Fatalf("expected ErrPromptNotFound for unknown profile, got %v", err)
	}
	f.gateway.err = apperrors.ErrGateway
	if _, err := f.uc.Create(ctx, dto.CreateInput{Profile: "Acme Corp"}); !errors.Is(err, apperrors.ErrGateway) {
		t.Fatalf("expected ErrGateway, got %v", err)
	}
	f.gateway.err = nil
	f.gateway.reply = " "
	if _, err := f.uc.Create(ctx, dto.CreateInput{Profile: "Acme Corp"}); !errors.Is(err, apperrors.ErrGateway) {
		t.Fatalf("expected ErrGateway for empty strategy, got %v", err)
	}
	if _, err := f.uc.Get(ctx, "Acme Corp"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("failed creation must not store a strategy, got %v", err)
	}
	if _, err := f.uc.Create(ctx, dto.CreateInput{Profile: "a/b"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
