package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pitchperfect/internal/modules/session/adapter/out"
	"pitchperfect/internal/modules/session/domain"
	sessiondto "pitchperfect/internal/modules/session/dto"
	sessionin "pitchperfect/internal/modules/session/port/in"
	"pitchperfect/internal/modules/session/service"
	"pitchperfect/internal/modules/session/usecase"
	"pitchperfect/internal/platform/clock"
	apperrors "pitchperfect/internal/platform/errors"
	"pitchperfect/internal/platform/logging"
)

type fixture struct {
	uc          sessionin.Usecase
	meetings    string
	evaluations string
	reports     string
}

func newFixture(t *testing.T, withIndex bool) fixture {
	t.Helper()
	root := t.TempDir()
	f := fixture{
		meetings:    filepath.Join(root, "meetings"),
		evaluations: filepath.Join(root, "meetings", "response_evaluations"),
		reports:     filepath.Join(root, "meetings", "meeting_evaluations"),
	}
	var projector *out.SQLiteMeetingProjector
	if withIndex {
		var err error
		projector, err = out.NewSQLiteMeetingProjector(filepath.Join(root, ".pitch", "pitch.db"))
		if err != nil {
			t.Fatalf("open projector: %v", err)
		}
		t.Cleanup(func() { _ = projector.Close() })
	}
	clk := clock.Fixed{At: time.Date(2024, 1, 1, 10, 5, 0, 0, time.UTC)}
	var svc *service.SessionService
	if projector != nil {
		svc = service.NewSessionService(clk, out.NewFileMeetingStore(f.meetings, logging.Discard()), out.NewFileTextStore(f.evaluations), out.NewFileTextStore(f.reports), projector, logging.Discard())
	} else {
		svc = service.NewSessionService(clk, out.NewFileMeetingStore(f.meetings, logging.Discard()), out.NewFileTextStore(f.evaluations), out.NewFileTextStore(f.reports), nil, logging.Discard())
	}
	f.uc = usecase.NewInteractor(svc)
	return f
}

func sampleSession(profile, token string) domain.Session {
	return domain.New(profile, token, "persona", domain.Models{Customer: "persona", ResponseEvaluation: "rubric", MeetingEvaluation: "meeting rubric"}).
		WithMessage(domain.RoleUser, "Hello").
		WithEvaluation("e1").
		WithMessage(domain.RoleAssistant, "Who are you?")
}

func TestSaveAndLoadMeetingRoundTrip(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)
	ctx := context.Background()
	s := sampleSession("Acme Corp", "20240101_100000")

	saved, err := f.uc.SaveMeeting(ctx, sessiondto.SaveSessionInput{Session: s})
	if err != nil {
		t.Fatalf("save meeting: %v", err)
	}
	if saved.Filename != "meeting_with_Acme Corp_20240101_100000.json" {
		t.Fatalf("unexpected filename %q", saved.Filename)
	}

	loaded, err := f.uc.LoadMeeting(ctx, saved.Filename)
	if err != nil {
		t.Fatalf("load meeting: %v", err)
	}
	if loaded.Profile != "Acme Corp" || loaded.Token != "20240101_100000" {
		t.Fatalf("unexpected identity %q %q", loaded.Profile, loaded.Token)
	}
	if len(loaded.Session.Messages) != len(s.Messages) || loaded.Session.Ended {
		t.Fatalf("unexpected session %+v", loaded.Session)
	}
	for i := range s.Messages {
		if loaded.Session.Messages[i] != s.Messages[i] {
			t.Fatalf("message %d differs: %+v vs %+v", i, loaded.Session.Messages[i], s.Messages[i])
		}
	}

	history, err := f.uc.History(ctx, sessiondto.HistoryInput{Customer: "Acme Corp"})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Turns != 2 || history[0].Evaluations != 1 {
		t.Fatalf("unexpected history %+v", history)
	}
}

func TestSaveMeetingRejectsUnsafeProfile(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)
	for _, profile := range []string{"", "../etc", "a/b"} {
		_, err := f.uc.SaveMeeting(context.Background(), sessiondto.SaveSessionInput{Session: sampleSession(profile, "20240101_100000")})
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%q: expected ErrInvalidInput, got %v", profile, err)
		}
	}
	if _, err := os.Stat(f.meetings); !os.IsNotExist(err) {
		t.Fatalf("nothing must be written for invalid profiles, stat err=%v", err)
	}
}

func TestSaveEvaluationsRewritesWholeBundle(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)
	ctx := context.Background()
	s := sampleSession("acme", "20240101_100000")

	if _, err := f.uc.SaveEvaluations(ctx, sessiondto.SaveSessionInput{Session: s}); err != nil {
		t.Fatalf("save first bundle: %v", err)
	}
	s = s.WithEvaluation("e2").WithEvaluation("e3")
	saved, err := f.uc.SaveEvaluations(ctx, sessiondto.SaveSessionInput{Session: s})
	if err != nil {
		t.Fatalf("save second bundle: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(f.evaluations, saved.Filename))
	if err != nil {
		t.Fatalf("read bundle: %v", err)
	}
	text := string(raw)
	if strings.Count(text, "--- Meeting Evaluation ") != 1 || strings.Count(text, "--- Evaluation #") != 3 {
		t.Fatalf("expected one header and three sections, got:\n%s", text)
	}
	if !strings.Contains(text, "--- Evaluation #3 ---\ne3\n") {
		t.Fatalf("missing third section:\n%s", text)
	}

	empty := domain.New("acme", "20240101_100000", "persona", domain.Models{})
	if _, err := f.uc.SaveEvaluations(ctx, sessiondto.SaveSessionInput{Session: empty}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty evaluations, got %v", err)
	}
}

func TestSaveEvaluationsShorterBundleLeavesNoStaleSections(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)
	ctx := context.Background()

	longer := sampleSession("acme", "20240101_100000").
		WithEvaluation("e2").WithEvaluation("e3").WithEvaluation("e4")
	if _, err := f.uc.SaveEvaluations(ctx, sessiondto.SaveSessionInput{Session: longer}); err != nil {
		t.Fatalf("save four evaluations: %v", err)
	}
	shorter := sampleSession("acme", "20240101_100000").
		WithEvaluation("f2").WithEvaluation("f3")
	saved, err := f.uc.SaveEvaluations(ctx, sessiondto.SaveSessionInput{Session: shorter})
	if err != nil {
		t.Fatalf("save three evaluations: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(f.evaluations, saved.Filename))
	if err != nil {
		t.Fatalf("read bundle: %v", err)
	}
	text := string(raw)
	if strings.Count(text, "--- Evaluation #") != 3 {
		t.Fatalf("expected exactly three sections, got:\n%s", text)
	}
	if strings.Contains(text, "--- Evaluation #4 ---") || strings.Contains(text, "e4") {
		t.Fatalf("stale fourth evaluation survived:\n%s", text)
	}
	if !strings.Contains(text, "--- Evaluation #3 ---\nf3\n") {
		t.Fatalf("missing rewritten third section:\n%s", text)
	}
}

func TestSaveReportIsWriteOnce(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)
	ctx := context.Background()
	input := sessiondto.SaveReportInput{Profile: "acme", Token: "20240101_100000", Text: "overall: good"}

	saved, err := f.uc.SaveReport(ctx, input)
	if err != nil {
		t.Fatalf("save report: %v", err)
	}
	if saved.Filename != "meeting_evaluation_acme_20240101_100000.txt" {
		t.Fatalf("unexpected report filename %q", saved.Filename)
	}
	input.Text = "overwritten"
	if _, err := f.uc.SaveReport(ctx, input); !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	reports, err := f.uc.ListReports(ctx)
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if len(reports) != 1 || reports[0].Customer != "acme" {
		t.Fatalf("unexpected reports %+v", reports)
	}
	report, err := f.uc.ReadReport(ctx, saved.Filename)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if report.Text != "overall: good" {
		t.Fatalf("report must keep its first content, got %q", report.Text)
	}
}

func TestListMeetingsSortedAndIdempotent(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)
	ctx := context.Background()
	for _, s := range []domain.Session{
		sampleSession("acme", "20240101_100000"),
		sampleSession("globex", "20240301_100000"),
		sampleSession("initech", "20240101_100000"),
	} {
		if _, err := f.uc.SaveMeeting(ctx, sessiondto.SaveSessionInput{Session: s}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	legacy := `{"customer_profile":"umbrella","vendor_messages":[{"content":"v1"},{"content":"v2"}],"customer_responses":[{"content":"c1"}],"timestamp":"20231201_090000"}`
	if err := os.WriteFile(filepath.Join(f.meetings, "meeting_with_umbrella_20231201_090000.json"), []byte(legacy), 0o644); err != nil {
		t.Fatalf("write legacy: %v", err)
	}
	if err := os.WriteFile(filepath.Join(f.meetings, "meeting_with_broken_20240401_100000.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}

	first, err := f.uc.ListMeetings(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	order := []string{"globex", "acme", "initech", "umbrella"}
	if len(first) != len(order) {
		t.Fatalf("expected %d meetings, got %+v", len(order), first)
	}
	for i, profile := range order {
		if first[i].CustomerProfile != profile {
			t.Fatalf("position %d: expected %s, got %+v", i, profile, first)
		}
	}
	if first[3].Turns != 3 || first[3].MeetingStart != "20231201_090000" {
		t.Fatalf("legacy meeting not upgraded: %+v", first[3])
	}

	second, err := f.uc.ListMeetings(ctx)
	if err != nil {
		t.Fatalf("list again: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("list is not idempotent at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestLoadMeetingErrors(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)
	ctx := context.Background()
	if _, err := f.uc.LoadMeeting(ctx, "meeting_with_nobody_20240101_100000.json"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := os.MkdirAll(f.meetings, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(f.meetings, "meeting_with_bad_20240101_100000.json"), []byte("nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := f.uc.LoadMeeting(ctx, "meeting_with_bad_20240101_100000.json"); !errors.Is(err, apperrors.ErrCorruptFile) {
		t.Fatalf("expected ErrCorruptFile, got %v", err)
	}
	if _, err := f.uc.LoadMeeting(ctx, "../secrets.json"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReindexRebuildsFromFiles(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)
	ctx := context.Background()
	if _, err := f.uc.SaveMeeting(ctx, sessiondto.SaveSessionInput{Session: sampleSession("acme", "20240101_100000")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	legacy := `{"customer_profile":"umbrella","vendor_messages":[{"content":"v1"}],"customer_responses":[],"timestamp":"20231201_090000"}`
	if err := os.WriteFile(filepath.Join(f.meetings, "meeting_with_umbrella_20231201_090000.json"), []byte(legacy), 0o644); err != nil {
		t.Fatalf("write legacy: %v", err)
	}

	result, err := f.uc.Reindex(ctx)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if result.Meetings != 2 {
		t.Fatalf("expected 2 indexed meetings, got %d", result.Meetings)
	}
	history, err := f.uc.History(ctx, sessiondto.HistoryInput{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 || history[1].Customer != "umbrella" {
		t.Fatalf("unexpected history %+v", history)
	}
}
