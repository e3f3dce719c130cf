package dto

type StartInput struct {
	Profile string
}

type SubmitInput struct {
	Text string
}

type ResumeInput struct {
	Filename string
}

type MessageOutput struct {
	Role    string
	Content string
}

type SessionOutput struct {
	Profile         string
	Token           string
	MeetingFilename string
	Messages        []MessageOutput
	Evaluations     []string
	Ended           bool
	Notices         []string
}

// Artifacts names the files a turn wrote. Empty names were not written.
type Artifacts struct {
	Meeting     string
	Evaluations string
	Report      string
}

type TurnOutput struct {
	Session    SessionOutput
	Reply      string
	Evaluation string
	Ended      bool
	Report     string
	Files      Artifacts
	Notices    []string
}

type ResetOutput struct {
	SavedFilename string
	Notices       []string
}
