package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadStatusesMissingFile(t *testing.T) {
	entries, err := ReadStatuses(filepath.Join(t.TempDir(), "absent.txt"))
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestReadStatuses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identifiers.txt")
	content := "plainbook\nfinished,Done\n\nskipped,No Eligible Documents\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	entries, err := ReadStatuses(path)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, StatusEntry{Identifier: "plainbook"}, entries[0])
	assert.Equal(t, StatusEntry{Identifier: "finished", Status: StatusDone}, entries[1])
	assert.Equal(t, StatusEntry{Identifier: "skipped", Status: StatusNoEligible}, entries[2])
}

func TestUpdateStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identifiers.txt")
	require.NoError(t, os.WriteFile(path, []byte("first\nsecond\nthird\n"), 0o644))

	require.NoError(t, UpdateStatus(path, "second", StatusDone))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond,Done\nthird\n", string(data), "order preserved, only the target annotated")
}

func TestUpdateStatusAppendsUnknown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identifiers.txt")
	require.NoError(t, os.WriteFile(path, []byte("first\n"), 0o644))

	require.NoError(t, UpdateStatus(path, "newbook", StatusNoEligible))

	entries, err := ReadStatuses(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "newbook", entries[1].Identifier)
	assert.Equal(t, StatusNoEligible, entries[1].Status)
}
