package domain_test

import (
	"errors"
	"testing"

	"pitchperfect/internal/modules/session/domain"
	apperrors "pitchperfect/internal/platform/errors"
)

func TestSessionValueSemantics(t *testing.T) {
	t.Parallel()
	base := domain.New("acme", "20240101_100000", "persona", domain.Models{})
	next := base.WithMessage(domain.RoleUser, "Hello").WithEvaluation("ok")
	if len(base.Messages) != 1 || len(base.Evaluations) != 0 {
		t.Fatalf("base mutated: %+v", base)
	}
	if len(next.Messages) != 2 || len(next.Evaluations) != 1 {
		t.Fatalf("unexpected next: %+v", next)
	}
	if !next.HasTurns() || base.HasTurns() {
		t.Fatal("HasTurns mismatch")
	}
}

func TestPreviousAssistantLooksBeforeLatestUser(t *testing.T) {
	t.Parallel()
	s := domain.New("acme", "20240101_100000", "persona", domain.Models{}).
		WithMessage(domain.RoleUser, "v1")
	if _, ok := s.PreviousAssistant(); ok {
		t.Fatal("first vendor message has no previous customer message")
	}
	s = s.WithMessage(domain.RoleAssistant, "c1").WithMessage(domain.RoleUser, "v2")
	prev, ok := s.PreviousAssistant()
	if !ok || prev != "c1" {
		t.Fatalf("expected c1, got %q %v", prev, ok)
	}
	_, last, _ := s.LastUser()
	if last != "v2" {
		t.Fatalf("expected v2, got %q", last)
	}
	if got := s.VendorMessages(); len(got) != 2 || got[1] != "v2" {
		t.Fatalf("unexpected vendor messages %v", got)
	}
}

func TestArtifactNames(t *testing.T) {
	t.Parallel()
	if got := domain.MeetingFilename("Acme Corp", "20240101_100000"); got != "meeting_with_Acme Corp_20240101_100000.json" {
		t.Fatalf("unexpected meeting filename %q", got)
	}
	profile, token, ok := domain.ParseArtifactName("meeting_evaluation_big_co_20240101_100000.txt", domain.MeetingEvaluationPrefix, domain.TextExtension)
	if !ok || profile != "big_co" || token != "20240101_100000" {
		t.Fatalf("unexpected parse %q %q %v", profile, token, ok)
	}
	if _, _, ok := domain.ParseArtifactName("meeting_evaluation_notes.txt", domain.MeetingEvaluationPrefix, domain.TextExtension); ok {
		t.Fatal("name without token must not parse")
	}
	if summary := domain.ReportSummaryFromName("meeting_evaluation_notes.txt"); summary.Customer != domain.UnknownCustomer {
		t.Fatalf("unexpected summary %+v", summary)
	}
	for _, bad := range []string{"", "a/b", `a\b`, ".."} {
		if err := domain.ValidateProfile(bad); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%q: expected invalid input, got %v", bad, err)
		}
	}
}

func TestSortSummariesNewestFirstThenFilename(t *testing.T) {
	t.Parallel()
	items := []domain.MeetingSummary{
		{Filename: "b.json", MeetingStart: "20240101_100000"},
		{Filename: "c.json", MeetingStart: "20240301_100000"},
		{Filename: "a.json", MeetingStart: "20240101_100000"},
		{Filename: "z.json", MeetingStart: ""},
	}
	domain.SortSummaries(items)
	order := []string{"c.json", "a.json", "b.json", "z.json"}
	for i, name := range order {
		if items[i].Filename != name {
			t.Fatalf("position %d: expected %s, got %+v", i, name, items)
		}
	}
}
