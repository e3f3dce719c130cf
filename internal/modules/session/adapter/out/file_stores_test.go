package out

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pitchperfect/internal/modules/session/domain"
	apperrors "pitchperfect/internal/platform/errors"
	"pitchperfect/internal/platform/logging"
)

func TestFileMeetingStoreSaveLoadList(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := NewFileMeetingStore(dir, logging.Discard())
	ctx := context.Background()

	record := domain.MeetingRecord{
		CustomerProfile: "acme",
		Conversation:    []domain.ConversationEntry{{Role: "user", Content: "Hello", Timestamp: "2024-01-01 10:00:00"}},
		MeetingStart:    "20240101_100000",
		CustomerModel:   "persona",
	}
	path, err := store.Save(ctx, "meeting_with_acme_20240101_100000.json", record)
	require.NoError(t, err)
	require.FileExists(t, path)

	loaded, err := store.Load(ctx, "meeting_with_acme_20240101_100000.json")
	require.NoError(t, err)
	require.Equal(t, "persona", loaded.CustomerModel)
	require.Len(t, loaded.Conversation, 1)
	require.Empty(t, loaded.VendorEvaluations)

	_, err = store.Load(ctx, "meeting_with_acme_20990101_000000.json")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "meeting_with_broken_20240101_110000.json"), []byte("{oops"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{}"), 0o644))
	_, err = store.Load(ctx, "meeting_with_broken_20240101_110000.json")
	require.ErrorIs(t, err, apperrors.ErrCorruptFile)

	first, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Equal(t, "acme", first[0].CustomerProfile)
	require.Equal(t, 1, first[0].Turns)

	second, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestFileMeetingStoreListMissingDir(t *testing.T) {
	t.Parallel()
	store := NewFileMeetingStore(filepath.Join(t.TempDir(), "absent"), logging.Discard())
	items, err := store.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestFileTextStoreReplaceAndCreate(t *testing.T) {
	t.Parallel()
	store := NewFileTextStore(filepath.Join(t.TempDir(), "reports"))
	ctx := context.Background()

	_, err := store.Replace(ctx, "response_evaluation_acme_20240101_100000.txt", "one")
	require.NoError(t, err)
	_, err = store.Replace(ctx, "response_evaluation_acme_20240101_100000.txt", "two")
	require.NoError(t, err)
	text, err := store.Read(ctx, "response_evaluation_acme_20240101_100000.txt")
	require.NoError(t, err)
	require.Equal(t, "two", text)

	_, err = store.Create(ctx, "meeting_evaluation_acme_20240101_100000.txt", "report")
	require.NoError(t, err)
	_, err = store.Create(ctx, "meeting_evaluation_acme_20240101_100000.txt", "again")
	require.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	text, err = store.Read(ctx, "meeting_evaluation_acme_20240101_100000.txt")
	require.NoError(t, err)
	require.Equal(t, "report", text)

	names, err := store.List(ctx, "meeting_evaluation_*.txt")
	require.NoError(t, err)
	require.Equal(t, []string{"meeting_evaluation_acme_20240101_100000.txt"}, names)

	_, err = store.Read(ctx, "missing.txt")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFileTextStoreCreateLeavesOnlyTheFinalFile(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "reports")
	store := NewFileTextStore(dir)
	ctx := context.Background()

	path, err := store.Create(ctx, "meeting_evaluation_acme_20240101_100000.txt", "report")
	require.NoError(t, err)
	_, err = store.Create(ctx, "meeting_evaluation_acme_20240101_100000.txt", "again")
	require.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "meeting_evaluation_acme_20240101_100000.txt", entries[0].Name())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}
