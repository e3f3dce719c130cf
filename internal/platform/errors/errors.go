package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrPromptNotFound    = errors.New("prompt not found")
	ErrGateway           = errors.New("language model call failed")
	ErrCorruptFile       = errors.New("corrupt file")
	ErrNoActiveSession   = errors.New("no active session")
	ErrConversationEnded = errors.New("conversation has ended")
)
