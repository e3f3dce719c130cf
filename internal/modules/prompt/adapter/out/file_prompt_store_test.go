package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	promptadapter "pitchperfect/internal/modules/prompt/adapter/out"
	"pitchperfect/internal/modules/prompt/domain"
	apperrors "pitchperfect/internal/platform/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadTrimsAndSeesEdits(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	prompts, customers := filepath.Join(root, "prompts"), filepath.Join(root, "customers")
	store := promptadapter.NewFilePromptStore(prompts, customers)
	ctx := context.Background()

	writeFile(t, filepath.Join(prompts, "core_instruction.txt"), "\n  Stay in character.  \n")
	got, err := store.Read(ctx, domain.NamespaceInstructions, "core_instruction")
	require.NoError(t, err)
	require.Equal(t, "Stay in character.", got)

	writeFile(t, filepath.Join(prompts, "core_instruction.txt"), "Be brief.")
	got, err = store.Read(ctx, domain.NamespaceInstructions, "core_instruction")
	require.NoError(t, err)
	require.Equal(t, "Be brief.", got)

	writeFile(t, filepath.Join(customers, "Acme Corp.txt"), "Name: Dana\n")
	got, err = store.Read(ctx, domain.NamespaceCustomers, "Acme Corp")
	require.NoError(t, err)
	require.Equal(t, "Name: Dana", got)
}

func TestReadMissingAndInvalid(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	store := promptadapter.NewFilePromptStore(filepath.Join(root, "prompts"), filepath.Join(root, "customers"))

	_, err := store.Read(context.Background(), domain.NamespaceInstructions, "vendor_model")
	require.ErrorIs(t, err, apperrors.ErrPromptNotFound)

	_, err = store.Read(context.Background(), domain.NamespaceCustomers, "../secrets")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = store.Read(context.Background(), domain.Namespace("projects"), "x")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestListSortedAndMissingDir(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	customers := filepath.Join(root, "customers")
	store := promptadapter.NewFilePromptStore(filepath.Join(root, "prompts"), customers)

	names, err := store.List(context.Background(), domain.NamespaceCustomers)
	require.NoError(t, err)
	require.Empty(t, names)

	writeFile(t, filepath.Join(customers, "Zeta.txt"), "z")
	writeFile(t, filepath.Join(customers, "Acme Corp.txt"), "a")
	writeFile(t, filepath.Join(customers, "notes.md"), "ignored")
	require.NoError(t, os.MkdirAll(filepath.Join(customers, "archive.txt"), 0o755))

	names, err = store.List(context.Background(), domain.NamespaceCustomers)
	require.NoError(t, err)
	require.Equal(t, []string{"Acme Corp", "Zeta"}, names)
}
