package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LANDINGKIT_CONFIG_DIR", dir)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	assert.Equal(t, []string{"product", "testimonials", "worn-by-favorites", "order-bump"}, c.Categories)
	assert.Equal(t, []int{400, 600, 800, 1200}, c.Widths)
	assert.Equal(t, 85, c.WebPQuality)
	assert.Equal(t, 85, c.JPEGQuality)
	assert.Equal(t, 20, c.LQIPSize)
	assert.Equal(t, 30, c.LQIPQuality)
	assert.Equal(t, 2.0, c.LQIPBlur)
	assert.Equal(t, filepath.Join("images", "manifest.json"), c.Manifest)
	assert.Equal(t, "cwebp", c.CWebPBin)
	assert.Equal(t, "sips", c.ResizeBin)
	assert.Equal(t, 1, c.Workers)
	assert.True(t, c.Headless)
	assert.Equal(t, 1920, c.ViewportWidth)
	assert.Equal(t, 1080, c.ViewportHeight)
}

func TestLoadMergedWithoutProfileUsesDefaults(t *testing.T) {
	useTempRoot(t)

	cfg, used, err := LoadMerged(Options{ProjectDir: "/srv/site", Workers: 4})
	require.NoError(t, err)

	assert.Contains(t, used, "default config in memory")
	assert.Equal(t, "/srv/site", cfg.ProjectDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, filepath.Join("/srv/site", "index.html"), cfg.HTMLPath())
	assert.Equal(t, filepath.Join("/srv/site", "images", "manifest.json"), cfg.ManifestPath())
}

func TestLoadMergedActiveProfileThenFlags(t *testing.T) {
	root := useTempRoot(t)

	path, err := CreateEmptyConfig("staging")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("webp_quality: 70\nheadless: false\nwidths: [800, 400, 400, -1]\n"), 0644))
	require.NoError(t, SwitchConfig("staging"))

	cfg, used, err := LoadMerged(Options{JPEGQuality: 90})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "configs", "staging.yaml"), used)
	assert.Equal(t, 70, cfg.WebPQuality)
	assert.Equal(t, 90, cfg.JPEGQuality)
	assert.False(t, cfg.Headless)
	assert.Equal(t, []int{400, 800}, cfg.Widths)
	// untouched keys keep their defaults
	assert.Equal(t, "cwebp", cfg.CWebPBin)
}

func TestLoadMergedIgnoreConfig(t *testing.T) {
	useTempRoot(t)
	_, err := InitDefaultConfig()
	require.NoError(t, err)

	cfg, used, err := LoadMerged(Options{IgnoreConfig: true, Headful: true, Strict: true})
	require.NoError(t, err)
	assert.Equal(t, "(ignored config)", used)
	assert.False(t, cfg.Headless)
	assert.True(t, cfg.Strict)
}

func TestLoadFileFormats(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"site.yaml": "html_file: landing.html\nworkers: 3\n",
		"site.json": `{"html_file": "landing.html", "workers": 3}`,
		"site.toml": "html_file = \"landing.html\"\nworkers = 3\n",
	}

	for name, body := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))

			cfg, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "landing.html", cfg.HTMLFile)
			assert.Equal(t, 3, cfg.Workers)
			assert.Equal(t, 85, cfg.WebPQuality)
		})
	}

	_, err := LoadFile(filepath.Join(dir, "site.ini"))
	assert.Error(t, err)
}

func TestLoadMergedConfigFile(t *testing.T) {
	useTempRoot(t)
	path := filepath.Join(t.TempDir(), "landing.toml")
	require.NoError(t, os.WriteFile(path, []byte("resize_bin = \"\"\nbase_url = \"https://example.test\"\n"), 0644))

	cfg, used, err := LoadMerged(Options{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Empty(t, cfg.ResizeBin)
	assert.Equal(t, "https://example.test", cfg.BaseURL)
}

func TestNormalizeDefaultsClampsValues(t *testing.T) {
	c := &Config{WebPQuality: 140, Workers: -2, LQIPBlur: -1}
	normalizeDefaults(c)

	assert.Equal(t, 85, c.WebPQuality)
	assert.Equal(t, 1, c.Workers)
	assert.Equal(t, 0.0, c.LQIPBlur)
	assert.Equal(t, []int{400, 600, 800, 1200}, c.Widths)
	assert.Equal(t, filepath.Join("images", "manifest.json"), c.Manifest)
}

func TestResolveKeepsAbsolutePaths(t *testing.T) {
	c := &Config{ProjectDir: "/site"}
	assert.Equal(t, "/abs/x.html", c.Resolve("/abs/x.html"))
	assert.Equal(t, filepath.Join("/site", "images", "product"), c.CategoryDir("product"))
}
