package out

import (
	"context"
	"fmt"
	"strings"

	"pitchperfect/internal/modules/gateway/domain"
	gatewayout "pitchperfect/internal/modules/gateway/port/out"
)

// MockCompleter answers without any network access. Replies are derived
// from the request so that a session can be walked end to end offline.
type MockCompleter struct{}

var _ gatewayout.Completer = (*MockCompleter)(nil)

func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

func (m *MockCompleter) Complete(ctx context.Context, req domain.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	last := ""
	if n := len(req.Turns); n > 0 {
		last = excerpt(req.Turns[n-1].Content, 60)
	}
	switch req.Purpose {
	case domain.PurposeChat:
		return fmt.Sprintf("Interesting. Can you tell me more about how that helps us? (re: %q)", last), nil
	case domain.PurposeResponseEvaluation:
		return fmt.Sprintf("Score: 7/10\nStrength: clear message.\nImprove: tie %q to a customer outcome.", last), nil
	case domain.PurposeMeetingEvaluation:
		return fmt.Sprintf("Meeting evaluation over %d turns.\nOverall: solid discovery, weak close.", len(req.Turns)), nil
	case domain.PurposeStrategy:
		return "## Strategy\n\n1. Lead with the customer's stated priorities.\n2. Quantify value early.\n3. Close with a concrete next step.", nil
	default:
		return "", nil
	}
}

func excerpt(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
