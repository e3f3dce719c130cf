package domain

import (
	"fmt"
	"strings"

	sessiondomain "pitchperfect/internal/modules/session/domain"
	apperrors "pitchperfect/internal/platform/errors"
)

// TerminationPhrase ends a meeting and asks for the final report.
const TerminationPhrase = "freeze and report"

func IsTermination(input string) bool {
	return strings.ToLower(strings.TrimSpace(input)) == TerminationPhrase
}

// ReportPolicy selects what the meeting evaluation request carries.
type ReportPolicy string

const (
	// ReportPolicyVendorOnly sends the customer context header and every
	// vendor message, each as its own user turn.
	ReportPolicyVendorOnly ReportPolicy = "vendor_only"
	// ReportPolicyTranscript sends the full interleaved conversation with
	// the customer model prepended to the rubric.
	ReportPolicyTranscript ReportPolicy = "transcript"
)

func ParseReportPolicy(raw string) (ReportPolicy, error) {
	switch p := ReportPolicy(strings.TrimSpace(raw)); p {
	case "":
		return ReportPolicyVendorOnly, nil
	case ReportPolicyVendorOnly, ReportPolicyTranscript:
		return p, nil
	default:
		return "", fmt.Errorf("%w: report policy %q", apperrors.ErrInvalidInput, raw)
	}
}

// Request is a model call in session terms, before it reaches the gateway.
type Request struct {
	System string
	Turns  []sessiondomain.Message
}

// ResponseEvaluationRequest grades the latest vendor message against the
// customer message it answered. ok is false when there is no vendor
// message yet.
func ResponseEvaluationRequest(s sessiondomain.Session) (Request, bool) {
	_, vendor, ok := s.LastUser()
	if !ok {
		return Request{}, false
	}
	lead := "Initial vendor pitch:\n\n"
	if previous, found := s.PreviousAssistant(); found {
		lead = fmt.Sprintf("Customer's previous message: %s\n\n", previous)
	}
	return Request{
		System: s.Models.ResponseEvaluation,
		Turns: []sessiondomain.Message{{
			Role:    sessiondomain.RoleUser,
			Content: lead + fmt.Sprintf("Vendor's response: %s", vendor),
		}},
	}, true
}

func MeetingContextHeader(customerModel string) string {
	return fmt.Sprintf("Customer Context:\n%s\n\nVendor Messages to Evaluate:", customerModel)
}

// MeetingEvaluationRequest builds the final report request for s.
func MeetingEvaluationRequest(policy ReportPolicy, s sessiondomain.Session) Request {
	if policy == ReportPolicyTranscript {
		return Request{
			System: s.Models.Customer + "\n" + s.Models.MeetingEvaluation,
			Turns:  s.Conversation(),
		}
	}
	turns := []sessiondomain.Message{{Role: sessiondomain.RoleUser, Content: MeetingContextHeader(s.Models.Customer)}}
	for _, text := range s.VendorMessages() {
		turns = append(turns, sessiondomain.Message{Role: sessiondomain.RoleUser, Content: text})
	}
	return Request{System: s.Models.MeetingEvaluation, Turns: turns}
}

// ChatRequest is the customer reply request: the system message travels
// as system text and every other message as a turn.
func ChatRequest(s sessiondomain.Session) Request {
	return Request{System: s.SystemText(), Turns: s.Conversation()}
}
