package dto

type ReadInput struct {
	Namespace string
	Name      string
}

type ReadOutput struct {
	Name  string
	Text  string
	Found bool
}

type ProfileOutput struct {
	Name        string
	DisplayName string
	Role        string
	Path        string
}

// SessionPrompts is everything a new meeting snapshots from the store.
// Missing lists the logical names that could not be read.
type SessionPrompts struct {
	Profile                 string
	SystemContext           string
	CustomerModel           string
	ResponseEvaluationModel string
	MeetingEvaluationModel  string
	Missing                 []string
}
