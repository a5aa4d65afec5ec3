package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replaceFile swaps in new contents with a rename so the watcher never sees
// a half-written file.
func replaceFile(t *testing.T, path string, data []byte) {
	t.Helper()
	tmp := filepath.Join(filepath.Dir(path), ".kinds.tmp")
	require.NoError(t, os.WriteFile(tmp, data, 0o600))
	require.NoError(t, os.Rename(tmp, path))
}

func TestKindWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinds.yaml")
	require.NoError(t, os.WriteFile(path, defaultKindsYAML, 0o600))

	kw, err := WatchKinds(path)
	require.NoError(t, err)
	defer kw.Close()

	replaceFile(t, path, []byte(`
kinds:
  dummy:
    name: Dummy
    behavior: grunt
    health: 10
    poise: 10
    damage: 1
    attack_duration: 0.5
    cooldown: 1
`))

	select {
	case kinds := <-kw.Tables:
		assert.Equal(t, []string{"dummy"}, kinds.IDs())
	case err := <-kw.Errors:
		t.Fatalf("reload failed: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}

func TestKindWatcherReportsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinds.yaml")
	require.NoError(t, os.WriteFile(path, defaultKindsYAML, 0o600))

	kw, err := WatchKinds(path)
	require.NoError(t, err)
	defer kw.Close()

	replaceFile(t, path, []byte("kinds: [not, a, map]"))

	select {
	case err := <-kw.Errors:
		assert.Error(t, err)
	case <-kw.Tables:
		t.Fatal("a broken file must not produce a table")
	case <-time.After(5 * time.Second):
		t.Fatal("no error within 5s")
	}
}

func TestKindWatcherCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinds.yaml")
	require.NoError(t, os.WriteFile(path, defaultKindsYAML, 0o600))

	kw, err := WatchKinds(path)
	require.NoError(t, err)
	assert.NoError(t, kw.Close())
	assert.NoError(t, kw.Close())
}

func TestKindWatcherWaitsOutTruncatingSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinds.yaml")
	require.NoError(t, os.WriteFile(path, defaultKindsYAML, 0o600))

	kw, err := WatchKinds(path)
	require.NoError(t, err)
	defer kw.Close()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o600)
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	time.Sleep(kindReloadDebounce / 5)
	_, err = f.WriteString(`
kinds:
  dummy:
    name: Dummy
    behavior: grunt
    health: 10
    poise: 10
    damage: 1
    attack_duration: 0.5
    cooldown: 1
`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case kinds := <-kw.Tables:
		assert.Equal(t, []string{"dummy"}, kinds.IDs())
	case err := <-kw.Errors:
		t.Fatalf("reloaded a half-written file: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}
