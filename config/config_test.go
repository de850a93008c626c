package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/delaneyj/geomtoy/geomtoy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		cfg, err := Decode(strings.NewReader("epsilon: 0.0001\nwatchdog_ms: 250\nbind_priority: 10\n"), FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, 0.0001, cfg.Epsilon)
		assert.Equal(t, 250*time.Millisecond, cfg.Watchdog())
		require.NotNil(t, cfg.BindPriority)
		assert.Equal(t, 10, *cfg.BindPriority)
		assert.Nil(t, cfg.OnPriority)
	})

	t.Run("toml", func(t *testing.T) {
		cfg, err := Decode(strings.NewReader("epsilon = 0.0001\nwatchdog_ms = 250\non_priority = 5\n"), FormatTOML)
		require.NoError(t, err)
		assert.Equal(t, 0.0001, cfg.Epsilon)
		require.NotNil(t, cfg.OnPriority)
		assert.Equal(t, 5, *cfg.OnPriority)
	})

	t.Run("empty yaml keeps defaults", func(t *testing.T) {
		cfg, err := Decode(strings.NewReader(""), FormatYAML)
		require.NoError(t, err)
		assert.Empty(t, cfg.Options())
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Decode(strings.NewReader("epsilon: [1"), FormatYAML)
		assert.Error(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Decode(strings.NewReader(""), Format("ini"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "world.toml")
	require.NoError(t, os.WriteFile(path, []byte("epsilon = 1e-6\nwatchdog_ms = 40\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	w := geomtoy.NewWorld(cfg.Options()...)
	assert.Equal(t, 1e-6, w.Options().Epsilon())
	assert.Equal(t, 40*time.Millisecond, w.Options().Watchdog())
	assert.Equal(t, geomtoy.DefaultBindPriority, w.Options().BindPriority())

	_, err = Load(filepath.Join(dir, "world.ini"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEpsilonIsClamped(t *testing.T) {
	cfg := &Config{Epsilon: 1}
	w := geomtoy.NewWorld(cfg.Options()...)
	assert.Equal(t, geomtoy.MaxEpsilon, w.Options().Epsilon())
}
