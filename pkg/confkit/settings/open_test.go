package settings_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/confkit/pkg/confkit/driver"
	"github.com/randalmurphal/confkit/pkg/confkit/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDefaultsToMemory(t *testing.T) {
	drv, err := settings.Open(settings.New(nil))
	require.NoError(t, err)
	defer drv.Close()

	assert.IsType(t, &driver.Memory{}, drv)
}

func TestOpenJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	drv, err := settings.Open(settings.New(map[string]any{
		"backend": settings.BackendJSONFile,
		"path":    path,
	}))
	require.NoError(t, err)
	defer drv.Close()

	ctx := context.Background()
	require.NoError(t, drv.Set(ctx, []string{"id", "GLOBAL", "k"}, "v"))

	v, err := drv.Get(ctx, []string{"id", "GLOBAL", "k"})
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestOpenSQLite(t *testing.T) {
	drv, err := settings.Open(settings.New(map[string]any{
		"backend":      settings.BackendSQLite,
		"path":         filepath.Join(t.TempDir(), "settings.db"),
		"busy_timeout": "2s",
	}))
	require.NoError(t, err)
	defer drv.Close()

	ctx := context.Background()
	require.NoError(t, drv.Set(ctx, []string{"id", "GLOBAL", "k"}, "v"))

	v, err := drv.Get(ctx, []string{"id", "GLOBAL", "k"})
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestOpenPathRequired(t *testing.T) {
	for _, backend := range []string{settings.BackendJSONFile, settings.BackendSQLite} {
		_, err := settings.Open(settings.New(map[string]any{"backend": backend}))
		assert.ErrorContains(t, err, "path is required", backend)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := settings.Open(settings.New(map[string]any{"backend": "redis"}))
	assert.ErrorContains(t, err, `unknown backend "redis"`)
}

func TestOpenFromYAMLEndToEnd(t *testing.T) {
	doc := "backend: jsonfile\npath: " + filepath.Join(t.TempDir(), "conf.json") + "\n"
	s, err := settings.FromYAML([]byte(doc))
	require.NoError(t, err)

	drv, err := settings.Open(s)
	require.NoError(t, err)
	defer drv.Close()

	assert.IsType(t, &driver.JSONFile{}, drv)
}
