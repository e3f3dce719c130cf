package domain

import (
	"fmt"
	"strings"
	"time"

	"pitchperfect/internal/platform/slug"
)

const (
	placeholder = "{}"

	NoMeetings    = "No previous meetings"
	NoEvaluations = "No previous evaluations"
)

type Strategy struct {
	Profile     string
	Content     string
	GeneratedAt time.Time
	Meetings    int
	Reports     int
	Model       string
	Path        string
}

func Filename(profile string) string {
	return slug.Make(profile) + "_strategy.md"
}

// MeetingLine is one previous meeting as listed in the strategy context.
type MeetingLine struct {
	Filename     string
	MeetingStart string
	Turns        int
}

type ReportText struct {
	Filename string
	Text     string
}

func RenderMeetings(items []MeetingLine) string {
	if len(items) == 0 {
		return NoMeetings
	}
	var b strings.Builder
	for _, m := range items {
		fmt.Fprintf(&b, "- %s (started %s, %d messages)\n", m.Filename, m.MeetingStart, m.Turns)
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderReports(items []ReportText) string {
	if len(items) == 0 {
		return NoEvaluations
	}
	parts := make([]string, 0, len(items))
	for _, r := range items {
		parts = append(parts, fmt.Sprintf("### %s\n%s", r.Filename, strings.TrimSpace(r.Text)))
	}
	return strings.Join(parts, "\n\n")
}

// FillTemplate substitutes the first three "{}" placeholders with the
// profile, meetings and reports, in that order. A template without all
// three placeholders gets them appended as labelled sections instead.
func FillTemplate(template, profile, meetings, reports string) string {
	if strings.Count(template, placeholder) >= 3 {
		out := template
		for _, value := range []string{profile, meetings, reports} {
			out = strings.Replace(out, placeholder, value, 1)
		}
		return out
	}
	return strings.TrimRight(template, "\n") +
		"\n\nCustomer Profile:\n" + profile +
		"\n\nPrevious Meetings:\n" + meetings +
		"\n\nPrevious Evaluations:\n" + reports
}
