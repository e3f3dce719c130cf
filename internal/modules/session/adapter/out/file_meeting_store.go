package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/renameio/v2"

	"pitchperfect/internal/modules/session/domain"
	sessionout "pitchperfect/internal/modules/session/port/out"
	apperrors "pitchperfect/internal/platform/errors"
)

type FileMeetingStore struct {
	dir    string
	logger *slog.Logger
}

var _ sessionout.MeetingStore = (*FileMeetingStore)(nil)

func NewFileMeetingStore(dir string, logger *slog.Logger) *FileMeetingStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileMeetingStore{dir: dir, logger: logger}
}

func (s *FileMeetingStore) Save(_ context.Context, filename string, record domain.MeetingRecord) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create meetings dir: %w", err)
	}
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal meeting: %w", err)
	}
	path := filepath.Join(s.dir, filename)
	if err := renameio.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write meeting: %w", err)
	}
	return path, nil
}

func (s *FileMeetingStore) Load(_ context.Context, filename string) (domain.MeetingRecord, error) {
	path := filepath.Join(s.dir, filename)
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.MeetingRecord{}, fmt.Errorf("%w: meeting %s", apperrors.ErrNotFound, filename)
		}
		return domain.MeetingRecord{}, fmt.Errorf("read meeting: %w", err)
	}
	record, err := domain.DecodeMeetingRecord(payload)
	if err != nil {
		return domain.MeetingRecord{}, fmt.Errorf("decode meeting %s: %w", filename, err)
	}
	if record.Dropped > 0 {
		s.logger.Warn("dropped conversation entries with unknown roles", "file", filename, "count", record.Dropped)
	}
	return record, nil
}

// List skips unreadable or malformed files after logging them.
func (s *FileMeetingStore) List(_ context.Context) ([]domain.MeetingSummary, error) {
	names, err := doublestar.Glob(os.DirFS(s.dir), domain.MeetingPrefix+"*"+domain.MeetingExtension, doublestar.WithFilesOnly())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.MeetingSummary{}, nil
		}
		return nil, fmt.Errorf("glob meetings: %w", err)
	}
	out := make([]domain.MeetingSummary, 0, len(names))
	for _, name := range names {
		payload, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			s.logger.Warn("skip unreadable meeting", "file", name, "error", err)
			continue
		}
		record, err := domain.DecodeMeetingRecord(payload)
		if err != nil {
			s.logger.Warn("skip malformed meeting", "file", name, "error", err)
			continue
		}
		out = append(out, domain.SummaryFromRecord(name, record))
	}
	return out, nil
}
