package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"pitchperfect/internal/modules/prompt/domain"
	promptout "pitchperfect/internal/modules/prompt/port/out"
	apperrors "pitchperfect/internal/platform/errors"
	"pitchperfect/internal/platform/slug"
)

// FilePromptStore reads prompt bodies straight from disk on every call so
// edits show up in the next meeting.
type FilePromptStore struct {
	dirs map[domain.Namespace]string
}

func NewFilePromptStore(promptsDir, customersDir string) promptout.PromptStore {
	return &FilePromptStore{dirs: map[domain.Namespace]string{
		domain.NamespaceInstructions: promptsDir,
		domain.NamespaceCustomers:    customersDir,
	}}
}

func (s *FilePromptStore) Read(_ context.Context, namespace domain.Namespace, name string) (string, error) {
	dir, err := s.dir(namespace)
	if err != nil {
		return "", err
	}
	if !slug.FileSafe(name) {
		return "", fmt.Errorf("%w: prompt name %q", apperrors.ErrInvalidInput, name)
	}
	path := filepath.Join(dir, name+domain.Extension)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", apperrors.ErrPromptNotFound, path)
		}
		return "", fmt.Errorf("read prompt %s: %w", path, err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *FilePromptStore) List(_ context.Context, namespace domain.Namespace) ([]string, error) {
	dir, err := s.dir(namespace)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("stat prompt dir: %w", err)
	}
	matches, err := doublestar.Glob(os.DirFS(dir), "*"+domain.Extension, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob prompts: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, domain.Extension))
	}
	sort.Strings(names)
	return names, nil
}

func (s *FilePromptStore) dir(namespace domain.Namespace) (string, error) {
	dir, ok := s.dirs[namespace]
	if !ok {
		return "", fmt.Errorf("%w: prompt namespace %q", apperrors.ErrInvalidInput, namespace)
	}
	return dir, nil
}
