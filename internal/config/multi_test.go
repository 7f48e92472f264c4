package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDefaultConfigIsIdempotent(t *testing.T) {
	useTempRoot(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)
	assert.FileExists(t, path)

	again, err := InitDefaultConfig()
	assert.ErrorIs(t, err, os.ErrExist)
	assert.Equal(t, path, again)

	label, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "Default", label)
}

func TestCurrentLabelWithoutSelection(t *testing.T) {
	useTempRoot(t)

	_, err := CurrentLabel()
	assert.ErrorIs(t, err, ErrNoConfig)

	_, err = ActiveConfigPath()
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestProfileLifecycle(t *testing.T) {
	useTempRoot(t)
	_, err := InitDefaultConfig()
	require.NoError(t, err)

	_, err = CreateEmptyConfig("prod")
	require.NoError(t, err)
	_, err = CreateEmptyConfig("prod")
	assert.Error(t, err)

	require.NoError(t, SwitchConfig("prod"))
	require.NoError(t, RenameConfig("prod", "live"))

	active, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "live", active)

	list, err := ListConfigs()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Default", list[0].Label)
	assert.Equal(t, "live", list[1].Label)
	assert.True(t, list[1].Active)

	switched, err := RemoveConfig("live")
	require.NoError(t, err)
	assert.True(t, switched)

	active, err = CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "Default", active)

	_, err = RemoveConfig("Default")
	assert.Error(t, err)
}

func TestAddConfigImportsOtherFormats(t *testing.T) {
	useTempRoot(t)
	src := filepath.Join(t.TempDir(), "shop.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"base_url": "https://shop.test"}`), 0644))

	require.NoError(t, AddConfig("shop", src))

	path, err := ConfigPathByLabel("shop")
	require.NoError(t, err)

	cfg, err := loadYAML(path)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.test", cfg.BaseURL)

	assert.Error(t, AddConfig("shop", src))
}

func TestLabelValidation(t *testing.T) {
	useTempRoot(t)

	_, err := CreateEmptyConfig("  ")
	assert.Error(t, err)
	_, err = CreateEmptyConfig("../escape")
	assert.Error(t, err)
	assert.Error(t, SwitchConfig("missing"))
	_, err = ConfigPathByLabel("missing")
	assert.Error(t, err)
}
