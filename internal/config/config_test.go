package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jrlgen/internal/eventbus"
)

type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(event eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }
func (b *recordingBus) Close() {}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "/data/", cfg.Root)
	assert.Equal(t, "/data/all-files.txt", cfg.Index)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.UI.ShowHelp)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromPath_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), FileName, `
root = "/comics/"
index = "https://example.com/all-files.txt"

[logging]
level = "debug"
file = "jrlgen.log"
`)
	cs := NewConfigServiceWithPaths(nil)

	cfg, err := cs.LoadFromPath(path)

	require.NoError(t, err)
	assert.Equal(t, "/comics/", cfg.Root)
	assert.Equal(t, "https://example.com/all-files.txt", cfg.Index)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "jrlgen.log", cfg.Logging.File)
	// untouched sections keep defaults
	assert.True(t, cfg.UI.ShowHelp)
}

func TestLoadFromPath_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "jrlgen.yaml", `
root: /books/
ui:
  show_help: false
`)
	cs := NewConfigServiceWithPaths(nil)

	cfg, err := cs.LoadFromPath(path)

	require.NoError(t, err)
	assert.Equal(t, "/books/", cfg.Root)
	assert.Equal(t, "/data/all-files.txt", cfg.Index)
	assert.False(t, cfg.UI.ShowHelp)
}

func TestLoadFromPath_EmptyYAMLKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "jrlgen.yml", "")

	cfg, err := NewConfigServiceWithPaths(nil).LoadFromPath(path)

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPath_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.toml")},
		{"unknown toml key", writeFile(t, dir, "unknown.toml", `colour = "red"`)},
		{"unknown yaml key", writeFile(t, dir, "unknown.yaml", "colour: red\n")},
		{"malformed toml", writeFile(t, dir, "bad.toml", `root = `)},
		{"empty index", writeFile(t, dir, "empty.toml", `index = ""`)},
		{"bad log level", writeFile(t, dir, "level.toml", "[logging]\nlevel = \"loud\"\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfigServiceWithPaths(nil).LoadFromPath(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestSaveToPath_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cs := NewConfigServiceWithPaths(nil)

	cfg := DefaultConfig()
	cfg.Root = "/srv/"
	cfg.Logging.File = "debug.log"

	for _, name := range []string{"nested/config.toml", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, cs.SaveToPath(cfg, path))

			loaded, err := cs.LoadFromPath(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoad_FirstExistingCandidate(t *testing.T) {
	dir := t.TempDir()
	second := writeFile(t, dir, "second.toml", `root = "/second/"`)
	bus := &recordingBus{}
	cs := NewConfigServiceWithPaths(bus, filepath.Join(dir, "first.toml"), second)

	cfg, path, err := cs.Load()

	require.NoError(t, err)
	assert.Equal(t, second, path)
	assert.Equal(t, "/second/", cfg.Root)
	require.Len(t, bus.events, 1)
	assert.Equal(t, eventbus.ConfigLoadedEvent{Path: second, Root: "/second/", Index: "/data/all-files.txt"}, bus.events[0])
}

func TestLoad_DefaultsWhenNothingFound(t *testing.T) {
	bus := &recordingBus{}
	cs := NewConfigServiceWithPaths(bus, filepath.Join(t.TempDir(), "missing.toml"))

	cfg, path, err := cs.Load()

	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)
	require.Len(t, bus.events, 1)
	assert.Equal(t, eventbus.EventConfigLoaded, bus.events[0].Type())
}

func TestLoad_BrokenCandidateIsAnError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.toml", "root = [")
	cs := NewConfigServiceWithPaths(nil, path)

	_, gotPath, err := cs.Load()

	assert.Error(t, err)
	assert.Equal(t, path, gotPath)
}
