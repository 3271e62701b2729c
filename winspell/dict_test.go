package winspell_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/winspell/winspell"
)

func TestLoadDict_Formats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"dict.json": `{"words": ["winspell", "Cogent Core"]}`,
		"dict.yaml": "words:\n  - winspell\n  - Cogent Core\n",
		"dict.toml": "words = [\"winspell\", \"Cogent Core\"]\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		d, err := winspell.LoadDict(path)
		require.NoError(t, err, name)
		assert.Equal(t, []string{"winspell", "Cogent Core"}, d.Words, name)
	}
}

func TestLoadDict_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := winspell.LoadDict(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = winspell.LoadDict(bad)
	assert.Error(t, err)

	txt := filepath.Join(dir, "dict.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	_, err = winspell.LoadDict(txt)
	assert.ErrorContains(t, err, "unknown dictionary format")
}

func TestDict_ContainsAndMerge(t *testing.T) {
	var empty *winspell.Dict
	assert.False(t, empty.Contains("x"))
	assert.Zero(t, empty.Len())

	d := empty.Merge(winspell.NewDict("Kafka"), nil, winspell.NewDict("Cogent Core"))
	assert.Equal(t, 2, d.Len())
	assert.True(t, d.Contains("kafka"))
	assert.True(t, d.Contains("core"))
	assert.True(t, d.Contains("cogent core"))
	assert.False(t, d.Contains("cogentcore"))
	assert.False(t, d.Contains(""))
}

func TestWatchDict_Reloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"words":["one"]}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var current atomic.Pointer[winspell.Dict]
	err := winspell.WatchDict(ctx, path, func(d *winspell.Dict) { current.Store(d) }, log.New(os.Stderr))
	require.NoError(t, err)
	require.True(t, current.Load().Contains("one"))

	require.NoError(t, os.WriteFile(path, []byte(`{"words":["two"]}`), 0o644))
	assert.Eventually(t, func() bool {
		return current.Load().Contains("two")
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatchDict_MissingFile(t *testing.T) {
	err := winspell.WatchDict(context.Background(), filepath.Join(t.TempDir(), "nope.json"), func(*winspell.Dict) {}, log.New(os.Stderr))
	assert.Error(t, err)
}
