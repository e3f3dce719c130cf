package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "pitchperfect/internal/platform/errors"
)

// EntryTimestampLayout stamps conversation entries and evaluation bundles.
const EntryTimestampLayout = "2006-01-02 15:04:05"

type ConversationEntry struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// MeetingRecord is the on-disk form of a session.
type MeetingRecord struct {
	CustomerProfile         string              `json:"customer_profile"`
	Conversation            []ConversationEntry `json:"conversation"`
	VendorEvaluations       []string            `json:"vendor_evaluations"`
	MeetingStart            string              `json:"meeting_start"`
	CustomerModel           string              `json:"customer_model"`
	ResponseEvaluationModel string              `json:"response_evaluation_model"`
	MeetingEvaluationModel  string              `json:"meeting_evaluation_model"`

	// Dropped counts conversation entries discarded at decode because
	// their role was neither user nor assistant.
	Dropped int `json:"-"`
}

// RecordFromSession restamps every conversation entry with at.
func RecordFromSession(s Session, at time.Time) MeetingRecord {
	stamp := at.Format(EntryTimestampLayout)
	conversation := s.Conversation()
	entries := make([]ConversationEntry, 0, len(conversation))
	for _, m := range conversation {
		entries = append(entries, ConversationEntry{Role: string(m.Role), Content: m.Content, Timestamp: stamp})
	}
	profile := s.Profile
	if profile == "" {
		profile = UnknownCustomer
	}
	return MeetingRecord{
		CustomerProfile:         profile,
		Conversation:            entries,
		VendorEvaluations:       append([]string{}, s.Evaluations...),
		MeetingStart:            s.Token,
		CustomerModel:           s.Models.Customer,
		ResponseEvaluationModel: s.Models.ResponseEvaluation,
		MeetingEvaluationModel:  s.Models.MeetingEvaluation,
	}
}

// Session rebuilds a live session. The captured customer model becomes
// the system message.
func (r MeetingRecord) Session(profile, token string) Session {
	s := New(profile, token, r.CustomerModel, Models{
		Customer:           r.CustomerModel,
		ResponseEvaluation: r.ResponseEvaluationModel,
		MeetingEvaluation:  r.MeetingEvaluationModel,
	})
	for _, entry := range r.Conversation {
		if !IsTurnRole(entry.Role) {
			continue
		}
		s.Messages = append(s.Messages, Message{Role: Role(entry.Role), Content: entry.Content})
	}
	s.Evaluations = append(s.Evaluations, r.VendorEvaluations...)
	return s
}

type legacyEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type storedRecord struct {
	MeetingRecord
	VendorMessages    *[]legacyEntry `json:"vendor_messages"`
	CustomerResponses []legacyEntry  `json:"customer_responses"`
	Timestamp         string         `json:"timestamp"`
	ReportModel       string         `json:"report_model"`
}

// DecodeMeetingRecord reads either schema. Records carrying
// vendor_messages are upgraded by interleaving vendor i with customer i.
func DecodeMeetingRecord(raw []byte) (MeetingRecord, error) {
	var stored storedRecord
	if err := json.Unmarshal(raw, &stored); err != nil {
		return MeetingRecord{}, fmt.Errorf("%w: %v", apperrors.ErrCorruptFile, err)
	}
	record := stored.MeetingRecord
	if stored.VendorMessages != nil {
		record = upgradeLegacy(stored)
	}
	if record.MeetingEvaluationModel == "" {
		record.MeetingEvaluationModel = stored.ReportModel
	}
	record.Conversation, record.Dropped = keepTurns(record.Conversation)
	if record.VendorEvaluations == nil {
		record.VendorEvaluations = []string{}
	}
	return record, nil
}

// IsTurnRole reports whether role may appear after the system message.
func IsTurnRole(role string) bool {
	return role == string(RoleUser) || role == string(RoleAssistant)
}

func keepTurns(entries []ConversationEntry) ([]ConversationEntry, int) {
	kept := make([]ConversationEntry, 0, len(entries))
	for _, entry := range entries {
		if IsTurnRole(entry.Role) {
			kept = append(kept, entry)
		}
	}
	return kept, len(entries) - len(kept)
}

func upgradeLegacy(stored storedRecord) MeetingRecord {
	record := stored.MeetingRecord
	vendor := *stored.VendorMessages
	customer := stored.CustomerResponses
	conversation := make([]ConversationEntry, 0, len(vendor)+len(customer))
	for i := 0; i < len(vendor) || i < len(customer); i++ {
		if i < len(vendor) {
			conversation = append(conversation, legacyToEntry(vendor[i], RoleUser, stored.Timestamp))
		}
		if i < len(customer) {
			conversation = append(conversation, legacyToEntry(customer[i], RoleAssistant, stored.Timestamp))
		}
	}
	record.Conversation = conversation
	record.MeetingStart = stored.Timestamp
	return record
}

func legacyToEntry(item legacyEntry, fallback Role, timestamp string) ConversationEntry {
	role := strings.TrimSpace(item.Role)
	if !IsTurnRole(role) {
		role = string(fallback)
	}
	return ConversationEntry{Role: role, Content: item.Content, Timestamp: timestamp}
}

// RenderEvaluationBundle formats every evaluation of a meeting under one
// header stamped with at.
func RenderEvaluationBundle(evaluations []string, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Meeting Evaluation %s ---\n\n", at.Format(EntryTimestampLayout))
	for i, text := range evaluations {
		fmt.Fprintf(&b, "\n--- Evaluation #%d ---\n", i+1)
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}
