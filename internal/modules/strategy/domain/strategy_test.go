package domain_test

import (
	"strings"
	"testing"

	"pitchperfect/internal/modules/strategy/domain"
)

func TestFillTemplatePlaceholdersInOrder(t *testing.T) {
	t.Parallel()
	got := domain.FillTemplate("P={} M={} R={} tail {}", "persona", "meetings", "reports")
	if got != "P=persona M=meetings R=reports tail {}" {
		t.Fatalf("unexpected fill %q", got)
	}
}

func TestFillTemplateAppendsSectionsWithoutPlaceholders(t *testing.T) {
	t.Parallel()
	got := domain.FillTemplate("Write a plan.\n", "persona", domain.NoMeetings, domain.NoEvaluations)
	want := "Write a plan.\n\nCustomer Profile:\npersona\n\nPrevious Meetings:\nNo previous meetings\n\nPrevious Evaluations:\nNo previous evaluations"
	if got != want {
		t.Fatalf("unexpected fill %q", got)
	}
}

func TestRenderMeetingsAndReports(t *testing.T) {
	t.Parallel()
	if domain.RenderMeetings(nil) != domain.NoMeetings || domain.RenderReports(nil) != domain.NoEvaluations {
		t.Fatal("empty inputs must render the fallback text")
	}
	meetings := domain.RenderMeetings([]domain.MeetingLine{{Filename: "a.json", MeetingStart: "20240101_100000", Turns: 4}})
	if meetings != "- a.json (started 20240101_100000, 4 messages)" {
		t.Fatalf("unexpected meetings %q", meetings)
	}
	reports := domain.RenderReports([]domain.ReportText{{Filename: "r1.txt", Text: "good\n"}, {Filename: "r2.txt", Text: "better"}})
	if !strings.Contains(reports, "### r1.txt\ngood\n\n### r2.txt\nbetter") {
		t.Fatalf("unexpected reports %q", reports)
	}
	if domain.Filename("Acme Corp") != "acme-corp_strategy.md" {
		t.Fatalf("unexpected filename %q", domain.Filename("Acme Corp"))
	}
}
