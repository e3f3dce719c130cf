package out

import (
	"context"

	"pitchperfect/internal/modules/session/domain"
)

type MeetingStore interface {
	Save(ctx context.Context, filename string, record domain.MeetingRecord) (string, error)
	Load(ctx context.Context, filename string) (domain.MeetingRecord, error)
	List(ctx context.Context) ([]domain.MeetingSummary, error)
}

// TextStore keeps plain text artifacts of one kind in a directory.
type TextStore interface {
	// Replace writes content atomically, overwriting any previous file.
	Replace(ctx context.Context, filename, content string) (string, error)
	// Create fails with ErrAlreadyExists when filename is present.
	Create(ctx context.Context, filename, content string) (string, error)
	Read(ctx context.Context, filename string) (string, error)
	List(ctx context.Context, pattern string) ([]string, error)
}

type MeetingIndexProjector interface {
	Upsert(ctx context.Context, entry domain.IndexEntry) error
	History(ctx context.Context, customer string, limit int) ([]domain.IndexEntry, error)
	Reset(ctx context.Context) error
}
