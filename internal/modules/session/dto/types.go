package dto

import (
	"time"

	"pitchperfect/internal/modules/session/domain"
)

type SaveSessionInput struct {
	Session domain.Session
}

type SaveReportInput struct {
	Profile string
	Token   string
	Text    string
}

type SaveOutput struct {
	Filename string
}

type MeetingOutput struct {
	Filename string
	Profile  string
	Token    string
	Record   domain.MeetingRecord
	// Session is the record rebuilt as a live, not ended session.
	Session domain.Session
}

type MeetingSummaryOutput struct {
	Filename        string
	CustomerProfile string
	MeetingStart    string
	Turns           int
	Evaluations     int
}

type ReportSummaryOutput struct {
	Filename string
	Customer string
	Token    string
}

type ReportOutput struct {
	Filename string
	Customer string
	Text     string
}

type HistoryInput struct {
	Customer string
	Limit    int
}

type HistoryEntryOutput struct {
	Filename     string
	Customer     string
	MeetingStart string
	Turns        int
	Evaluations  int
	UpdatedAt    time.Time
}

type ReindexOutput struct {
	Meetings int
}
