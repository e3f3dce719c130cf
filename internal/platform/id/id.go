package id

import (
	"pitchperfect/internal/platform/clock"
)

// TokenLayout is the layout of meeting tokens, e.g. 20250114_093012.
const TokenLayout = "20060102_150405"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// MeetingToken derives the meeting start token from the clock. All
// artifacts of one meeting embed the token it produced at start.
type MeetingToken struct {
	Clock clock.Clock
}

func (g MeetingToken) New() string {
	return g.Clock.Now().Format(TokenLayout)
}
