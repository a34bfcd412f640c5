package advisory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLayoutAndFilenames(t *testing.T) {
	store := NewStore(t.TempDir(), "OpenOffice")
	require.NoError(t, store.EnsureLayout())

	t.Run("bulletin html is product scoped", func(t *testing.T) {
		path, err := store.SaveBulletin([]byte("<html></html>"))
		require.NoError(t, err)
		assert.Equal(t, "openoffice_advisory.html", filepath.Base(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", string(data))
	})

	t.Run("record filename derives from the identifier", func(t *testing.T) {
		path, err := store.SaveCVE(CVE{CVEID: "CVE-2021-33035", AffectedVersion: "4.1.8", Description: "d"})
		require.NoError(t, err)
		assert.Equal(t, "CVE-2021-33035.json", filepath.Base(path))
	})

	t.Run("references summary contains the wire field names", func(t *testing.T) {
		path, err := store.SaveReferences([]Reference{{CVEID: "CVE-2021-1", Version: "4.1.8", Summary: "s", Link: "https://example.org/1.html"}})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"cve_id": "CVE-2021-1"`)
		assert.Contains(t, string(data), `"version": "4.1.8"`)
		assert.Contains(t, string(data), `"link": "https://example.org/1.html"`)
	})
}

func TestStoreRoundtripAndRereadFailure(t *testing.T) {
	store := NewStore(t.TempDir(), "OpenOffice")
	require.NoError(t, store.EnsureLayout())

	record := CVE{CVEID: "CVE-2020-13958", AffectedVersion: "4.1.7", Description: "desc", SourceURL: "https://example.org/a.html"}
	path, err := store.SaveCVE(record)
	require.NoError(t, err)

	t.Run("persisted record reads back unchanged", func(t *testing.T) {
		loaded, err := store.LoadCVE(path)
		require.NoError(t, err)
		assert.Equal(t, record, loaded)
	})

	t.Run("malformed document yields an error, not a panic", func(t *testing.T) {
		broken := filepath.Join(filepath.Dir(path), "CVE-2020-0.json")
		require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0o644))

		_, err := store.LoadCVE(broken)
		assert.Error(t, err)
	})

	t.Run("missing document yields an error", func(t *testing.T) {
		_, err := store.LoadCVE(filepath.Join(filepath.Dir(path), "does-not-exist.json"))
		assert.Error(t, err)
	})
}

func TestStoreListCVEFilesSorted(t *testing.T) {
	store := NewStore(t.TempDir(), "OpenOffice")
	require.NoError(t, store.EnsureLayout())

	for _, cveID := range []string{"CVE-2021-2", "CVE-2019-1", "CVE-2020-3"} {
		_, err := store.SaveCVE(CVE{CVEID: cveID, AffectedVersion: "v", Description: "d"})
		require.NoError(t, err)
	}

	paths, err := store.ListCVEFiles()
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, "CVE-2019-1.json", filepath.Base(paths[0]))
	assert.Equal(t, "CVE-2020-3.json", filepath.Base(paths[1]))
	assert.Equal(t, "CVE-2021-2.json", filepath.Base(paths[2]))
}
