package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/renameio/v2"

	"pitchperfect/internal/modules/strategy/domain"
	strategyout "pitchperfect/internal/modules/strategy/port/out"
	apperrors "pitchperfect/internal/platform/errors"
	"pitchperfect/internal/platform/markdown"
)

const (
	schemaVersion = 1
	blockStart    = "<!-- pitch:strategy:start -->"
	blockEnd      = "<!-- pitch:strategy:end -->"
)

type strategyMeta struct {
	SchemaVersion int       `yaml:"schema_version"`
	Profile       string    `yaml:"profile"`
	GeneratedAt   time.Time `yaml:"generated_at"`
	Meetings      int       `yaml:"meetings"`
	Reports       int       `yaml:"reports"`
	Model         string    `yaml:"model"`
}

// VaultStrategyStore keeps one markdown note per customer with the
// generation metadata in YAML frontmatter. The generated text lives in a
// managed block; notes written around it survive regeneration.
type VaultStrategyStore struct {
	dir string
}

var _ strategyout.StrategyStore = (*VaultStrategyStore)(nil)

func NewVaultStrategyStore(dir string) *VaultStrategyStore {
	return &VaultStrategyStore{dir: dir}
}

func (s *VaultStrategyStore) path(profile string) string {
	return filepath.Join(s.dir, domain.Filename(profile))
}

func (s *VaultStrategyStore) Exists(_ context.Context, profile string) (bool, error) {
	_, err := os.Stat(s.path(profile))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat strategy: %w", err)
}

func (s *VaultStrategyStore) Save(_ context.Context, strategy domain.Strategy) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create strategies dir: %w", err)
	}
	meta := strategyMeta{
		SchemaVersion: schemaVersion,
		Profile:       strategy.Profile,
		GeneratedAt:   strategy.GeneratedAt,
		Meetings:      strategy.Meetings,
		Reports:       strategy.Reports,
		Model:         strategy.Model,
	}
	path := s.path(strategy.Profile)
	body, err := s.existingBody(path)
	if err != nil {
		return "", err
	}
	if body == "" {
		body = fmt.Sprintf("# Strategy for %s\n\n", strategy.Profile)
	}
	body = markdown.ReplaceManagedBlock(body, blockStart, blockEnd, strategy.Content)
	rendered, err := markdown.Render(meta, body)
	if err != nil {
		return "", err
	}
	if err := renameio.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write strategy note: %w", err)
	}
	return path, nil
}

func (s *VaultStrategyStore) Load(_ context.Context, profile string) (domain.Strategy, error) {
	path := s.path(profile)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Strategy{}, fmt.Errorf("%w: strategy for %s", apperrors.ErrNotFound, profile)
		}
		return domain.Strategy{}, fmt.Errorf("read strategy: %w", err)
	}
	var meta strategyMeta
	body, err := markdown.Decode(string(raw), &meta)
	if err != nil {
		return domain.Strategy{}, fmt.Errorf("%w: %s: %v", apperrors.ErrCorruptFile, path, err)
	}
	if meta.Profile == "" {
		meta.Profile = profile
	}
	out := domain.Strategy{
		Profile:     meta.Profile,
		Content:     content(body),
		GeneratedAt: meta.GeneratedAt,
		Meetings:    meta.Meetings,
		Reports:     meta.Reports,
		Model:       meta.Model,
		Path:        path,
	}
	return out, nil
}

// existingBody returns the note body of a previous generation, if any.
func (s *VaultStrategyStore) existingBody(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read strategy: %w", err)
	}
	body, err := markdown.Decode(string(raw), &strategyMeta{})
	if err != nil {
		// Unreadable frontmatter: regenerate from scratch.
		return "", nil
	}
	return body, nil
}

func content(body string) string {
	if block, ok := markdown.ManagedBlock(body, blockStart, blockEnd); ok {
		return block
	}
	return stripHeading(body)
}

func stripHeading(body string) string {
	body = strings.TrimLeft(body, "\n")
	if strings.HasPrefix(body, "# ") {
		if idx := strings.Index(body, "\n"); idx >= 0 {
			body = body[idx+1:]
		} else {
			body = ""
		}
	}
	return strings.TrimSpace(body)
}
