package domain

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Models are the prompt texts captured when the session started.
type Models struct {
	Customer           string
	ResponseEvaluation string
	MeetingEvaluation  string
}

// Session is the state of one meeting. Messages[0] is always the system
// message. Methods return modified copies; a Session value is never
// shared mutably.
type Session struct {
	Profile     string
	Token       string
	Messages    []Message
	Evaluations []string
	Models      Models
	Ended       bool
}

func New(profile, token, systemText string, models Models) Session {
	return Session{
		Profile:     profile,
		Token:       token,
		Messages:    []Message{{Role: RoleSystem, Content: systemText}},
		Evaluations: []string{},
		Models:      models,
	}
}

func (s Session) Clone() Session {
	out := s
	out.Messages = append([]Message(nil), s.Messages...)
	out.Evaluations = append([]string{}, s.Evaluations...)
	return out
}

func (s Session) WithMessage(role Role, content string) Session {
	out := s.Clone()
	out.Messages = append(out.Messages, Message{Role: role, Content: content})
	return out
}

func (s Session) WithEvaluation(text string) Session {
	out := s.Clone()
	out.Evaluations = append(out.Evaluations, text)
	return out
}

func (s Session) WithEnded() Session {
	out := s.Clone()
	out.Ended = true
	return out
}

func (s Session) SystemText() string {
	if len(s.Messages) == 0 || s.Messages[0].Role != RoleSystem {
		return ""
	}
	return s.Messages[0].Content
}

// Conversation returns every non-system message in order.
func (s Session) Conversation() []Message {
	out := make([]Message, 0, len(s.Messages))
	for _, m := range s.Messages {
		if m.Role != RoleSystem {
			out = append(out, m)
		}
	}
	return out
}

// HasTurns reports whether anything beyond the system message exists.
func (s Session) HasTurns() bool {
	return len(s.Messages) > 1
}

// LastUser returns the index and text of the latest user message.
func (s Session) LastUser() (int, string, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleUser {
			return i, s.Messages[i].Content, true
		}
	}
	return -1, "", false
}

// PreviousAssistant returns the latest assistant message strictly before
// the latest user message.
func (s Session) PreviousAssistant() (string, bool) {
	idx, _, ok := s.LastUser()
	if !ok {
		return "", false
	}
	for i := idx - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleAssistant {
			return s.Messages[i].Content, true
		}
	}
	return "", false
}

// VendorMessages returns the content of every user message in order.
func (s Session) VendorMessages() []string {
	out := []string{}
	for _, m := range s.Messages {
		if m.Role == RoleUser {
			out = append(out, m.Content)
		}
	}
	return out
}
