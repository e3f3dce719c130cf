package usecase

import (
	"context"
	"sync"

	"pitchperfect/internal/modules/conversation/dto"
	conversationin "pitchperfect/internal/modules/conversation/port/in"
	"pitchperfect/internal/modules/conversation/service"
	sessiondomain "pitchperfect/internal/modules/session/domain"
	apperrors "pitchperfect/internal/platform/errors"
)

// Interactor owns the single active session of the process. Calls are
// serialised.
type Interactor struct {
	engine *service.Engine

	mu     sync.Mutex
	active *sessiondomain.Session
}

func NewInteractor(engine *service.Engine) conversationin.Usecase {
	return &Interactor{engine: engine}
}

// Start supersedes any active session after a best-effort save.
func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	s, notices, err := i.engine.Start(ctx, input.Profile)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	notices = append(i.supersede(ctx), notices...)
	i.active = &s
	return toSessionOutput(s, notices), nil
}

func (i *Interactor) Submit(ctx context.Context, input dto.SubmitInput) (dto.TurnOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.active == nil {
		return dto.TurnOutput{}, apperrors.ErrNoActiveSession
	}
	next, result, err := i.engine.Turn(ctx, *i.active, input.Text)
	if err != nil {
		return dto.TurnOutput{}, err
	}
	i.active = &next
	return dto.TurnOutput{
		Session:    toSessionOutput(next, nil),
		Reply:      result.Reply,
		Evaluation: result.Evaluation,
		Ended:      next.Ended,
		Report:     result.Report,
		Files: dto.Artifacts{
			Meeting:     result.Files.Meeting,
			Evaluations: result.Files.Evaluations,
			Report:      result.Files.Report,
		},
		Notices: result.Notices,
	}, nil
}

func (i *Interactor) Resume(ctx context.Context, input dto.ResumeInput) (dto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	s, notices, err := i.engine.Resume(ctx, input.Filename)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	if i.active == nil || i.active.Token != s.Token || i.active.Profile != s.Profile {
		notices = append(i.supersede(ctx), notices...)
	}
	i.active = &s
	return toSessionOutput(s, notices), nil
}

func (i *Interactor) Reset(ctx context.Context) (dto.ResetOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := dto.ResetOutput{}
	if i.active != nil {
		filename, err := i.engine.Save(ctx, *i.active)
		if err != nil {
			out.Notices = append(out.Notices, "meeting could not be saved: "+err.Error())
		}
		out.SavedFilename = filename
	}
	i.active = nil
	return out, nil
}

func (i *Interactor) Active(_ context.Context) (dto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.active == nil {
		return dto.SessionOutput{}, apperrors.ErrNoActiveSession
	}
	return toSessionOutput(*i.active, nil), nil
}

func (i *Interactor) supersede(ctx context.Context) []string {
	if i.active == nil {
		return nil
	}
	if _, err := i.engine.Save(ctx, *i.active); err != nil {
		return []string{"previous meeting could not be saved: " + err.Error()}
	}
	return nil
}

func toSessionOutput(s sessiondomain.Session, notices []string) dto.SessionOutput {
	messages := make([]dto.MessageOutput, 0, len(s.Messages))
	for _, m := range s.Messages {
		messages = append(messages, dto.MessageOutput{Role: string(m.Role), Content: m.Content})
	}
	meeting := ""
	if s.HasTurns() {
		meeting = sessiondomain.MeetingFilename(s.Profile, s.Token)
	}
	return dto.SessionOutput{
		Profile:         s.Profile,
		Token:           s.Token,
		MeetingFilename: meeting,
		Messages:        messages,
		Evaluations:     append([]string{}, s.Evaluations...),
		Ended:           s.Ended,
		Notices:         notices,
	}
}
