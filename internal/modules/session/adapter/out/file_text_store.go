package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/renameio/v2"

	sessionout "pitchperfect/internal/modules/session/port/out"
	apperrors "pitchperfect/internal/platform/errors"
)

type FileTextStore struct {
	dir string
}

var _ sessionout.TextStore = (*FileTextStore)(nil)

func NewFileTextStore(dir string) *FileTextStore {
	return &FileTextStore{dir: dir}
}

func (s *FileTextStore) Replace(_ context.Context, filename, content string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create dir %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, filename)
	if err := renameio.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return path, nil
}

func (s *FileTextStore) Create(_ context.Context, filename, content string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create dir %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, filename)
	// The content is complete on disk before the name appears; the link
	// fails when the name is already taken.
	pending, err := renameio.TempFile(s.dir, path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", filename, err)
	}
	defer func() { _ = pending.Cleanup() }()
	if _, err := pending.WriteString(content); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	if err := pending.Chmod(0o644); err != nil {
		return "", fmt.Errorf("chmod %s: %w", filename, err)
	}
	if err := pending.Sync(); err != nil {
		return "", fmt.Errorf("sync %s: %w", filename, err)
	}
	if err := os.Link(pending.Name(), path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, filename)
		}
		return "", fmt.Errorf("link %s: %w", filename, err)
	}
	return path, nil
}

func (s *FileTextStore) Read(_ context.Context, filename string) (string, error) {
	payload, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", apperrors.ErrNotFound, filename)
		}
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	return string(payload), nil
}

func (s *FileTextStore) List(_ context.Context, pattern string) ([]string, error) {
	names, err := doublestar.Glob(os.DirFS(s.dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(names)
	return names, nil
}
