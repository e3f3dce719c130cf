package domain

import (
	"sort"
	"time"
)

type MeetingSummary struct {
	Filename        string
	CustomerProfile string
	MeetingStart    string
	Turns           int
	Evaluations     int
}

func SummaryFromRecord(filename string, r MeetingRecord) MeetingSummary {
	profile := r.CustomerProfile
	if profile == "" {
		profile = UnknownCustomer
	}
	return MeetingSummary{
		Filename:        filename,
		CustomerProfile: profile,
		MeetingStart:    r.MeetingStart,
		Turns:           len(r.Conversation),
		Evaluations:     len(r.VendorEvaluations),
	}
}

// SortSummaries orders newest first. Ties and empty starts fall back to
// the file name.
func SortSummaries(items []MeetingSummary) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].MeetingStart != items[j].MeetingStart {
			return items[i].MeetingStart > items[j].MeetingStart
		}
		return items[i].Filename < items[j].Filename
	})
}

type ReportSummary struct {
	Filename string
	Customer string
	Token    string
}

// ReportSummaryFromName derives the customer from the report file name.
func ReportSummaryFromName(name string) ReportSummary {
	profile, token, ok := ParseArtifactName(name, MeetingEvaluationPrefix, TextExtension)
	if !ok {
		return ReportSummary{Filename: name, Customer: UnknownCustomer}
	}
	return ReportSummary{Filename: name, Customer: profile, Token: token}
}

func SortReports(items []ReportSummary) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Token != items[j].Token {
			return items[i].Token > items[j].Token
		}
		return items[i].Filename < items[j].Filename
	})
}

// IndexEntry is one row of the meeting index.
type IndexEntry struct {
	Filename     string
	Customer     string
	MeetingStart string
	Turns        int
	Evaluations  int
	UpdatedAt    time.Time
}
