package icons

import (
	"os"
	"path/filepath"
	"testing"

	"querry/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePack(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("<svg/>"), 0o644))
	}
	return dir
}

func TestNamesFiltersAndSorts(t *testing.T) {
	dir := writePack(t, "1F680.svg", "1F4A6.svg", "notes.txt", "logo.PNG")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.svg"), 0o755))

	names, err := New(dir, "1F4A6.svg").Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"1F4A6.svg", "1F680.svg", "logo.PNG"}, names)
}

func TestSearchMatchesFragmentIgnoringCase(t *testing.T) {
	pack := New(writePack(t, "1F680.svg", "1F4A6.svg", "folder-open.svg", "Folder.png"), "1F4A6.svg")

	got, err := pack.Search("folder")
	require.NoError(t, err)
	assert.Equal(t, []string{"Folder.png", "folder-open.svg"}, got)

	got, err = pack.Search(" 1f6 ")
	require.NoError(t, err)
	assert.Equal(t, []string{"1F680.svg"}, got)

	got, err = pack.Search("")
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = pack.Search("rocket")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestNamesMissingDir(t *testing.T) {
	names, err := New(filepath.Join(t.TempDir(), "absent"), "1F4A6.svg").Names()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestResolve(t *testing.T) {
	dir := writePack(t, "1F680.svg")
	pack := New(dir, "1F4A6.svg")

	path, err := pack.Resolve("1F680.svg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "1F680.svg"), path)

	_, err = pack.Resolve("1F4A6.svg")
	assert.ErrorIs(t, err, models.ErrNotFound)

	for _, bad := range []string{"", "..", "../secret.svg", "a/b.svg", `a\b.svg`, "x..svg", "run.sh"} {
		_, err := pack.Resolve(bad)
		assert.ErrorIs(t, err, models.ErrValidation, "name %q", bad)
	}
}

func TestPick(t *testing.T) {
	dir := writePack(t, "A.svg", "B.svg")
	pack := New(dir, "fallback.svg")
	for i := 0; i < 20; i++ {
		assert.Contains(t, []string{"A.svg", "B.svg"}, pack.Pick())
	}

	empty := New(t.TempDir(), "fallback.svg")
	assert.Equal(t, "fallback.svg", empty.Pick())
}
