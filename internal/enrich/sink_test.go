package enrich

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSink(t *testing.T) {
	t.Parallel()

	t.Run("writes sanitized filenames", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		s := NewDirSink(dir)

		require.NoError(t, s.Save("Jane Doe", "https://a.com/x", "page body"))

		data, err := os.ReadFile(filepath.Join(dir, "Jane_Doe_https___a_com_x.txt"))
		require.NoError(t, err)
		assert.Equal(t, "page body", string(data))
	})

	t.Run("truncates long urls", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		s := NewDirSink(dir)

		longURL := "https://example.com/a/very/long/path/that/keeps/going"
		require.NoError(t, s.Save("x", longURL, "body"))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		// name + separator + 30 url chars + extension
		assert.LessOrEqual(t, len(entries[0].Name()), len("x")+1+30+len(".txt"))
	})

	t.Run("creates the directory on demand", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "nested", "debug")
		s := NewDirSink(dir)

		require.NoError(t, s.Save("x", "https://a.com", "body"))
		assert.DirExists(t, dir)
	})
}
