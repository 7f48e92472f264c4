package cmd

import (
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/brogergvhs/landingkit/internal/manifest"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCWebP answers -version and otherwise copies its input to the -o path,
// resolving both relative to its own working directory like the real tool.
const fakeCWebP = `#!/bin/sh
if [ "$1" = "-version" ]; then echo 1.4.0; exit 0; fi
prev=""; in=""; out=""
for a in "$@"; do
  if [ "$prev" = "-o" ]; then out="$a"; fi
  if [ "$a" = "-o" ]; then in="$prev"; fi
  prev="$a"
done
cp "$in" "$out"
`

// setupSite lays out a project under a relative directory "site", puts a
// fake cwebp on PATH and points the command flags at it.
func setupSite(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake cwebp is a shell script")
	}

	root := t.TempDir()
	t.Chdir(root)

	bin := filepath.Join(root, "bin")
	require.NoError(t, os.MkdirAll(bin, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "cwebp"), []byte(fakeCWebP), 0755))
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	img := imaging.New(600, 400, color.NRGBA{R: 0xe8, G: 0xb4, B: 0xb8, A: 0xff})

	product := filepath.Join("site", "images", "product")
	require.NoError(t, os.MkdirAll(product, 0755))
	require.NoError(t, imaging.Save(img, filepath.Join(product, "a.png")))

	worn := filepath.Join("site", "images", "worn-by-favorites")
	require.NoError(t, os.MkdirAll(worn, 0755))
	f, err := os.Create(filepath.Join(worn, "b.webp"))
	require.NoError(t, err)
	require.NoError(t, webp.Encode(f, img, &webp.Options{Quality: 80}))
	require.NoError(t, f.Close())

	flagIgnoreConfig = true
	flagProject = "site"
	flagCategories = []string{"product"}
	flagWidths = []int{400}
	flagCWebPBin = "cwebp"
	flagResizeBin = "builtin"
	t.Cleanup(func() {
		flagIgnoreConfig = false
		flagProject = ""
		flagCategories = nil
		flagWidths = nil
		flagCWebPBin = ""
		flagResizeBin = ""
		flagReprocessCategory = ""
		flagReplace = false
	})

	return filepath.Join("site", "images", "manifest.json")
}

func TestConvertWithRelativeProjectRunsToolOnProjectPaths(t *testing.T) {
	manifestPath := setupSite(t)

	require.NoError(t, runConvert(nil, nil))

	m, err := manifest.Load(manifestPath)
	require.NoError(t, err)

	e, ok := m.Lookup("product", "a.png")
	require.True(t, ok)
	assert.Equal(t, "images/product/a.png", e.Original)
	assert.Equal(t, map[string]string{"400": "a-400.webp", manifest.OriginalKey: "a.webp"}, e.WebP)
	assert.Equal(t, map[string]string{"400": "a-400.jpg"}, e.JPEG)
	assert.FileExists(t, filepath.Join("site", "images", "product", "a-400.webp"))
	assert.Equal(t, []int{400}, m.ImageSizes)
}

func TestReprocessMergesIntoExistingManifest(t *testing.T) {
	manifestPath := setupSite(t)

	require.NoError(t, runConvert(nil, nil))
	require.NoError(t, runReprocess(nil, nil))

	m, err := manifest.Load(manifestPath)
	require.NoError(t, err)

	_, ok := m.Lookup("product", "a.png")
	assert.True(t, ok, "convert entries survive the merge")

	e, ok := m.Lookup("worn-by-favorites", "b.webp")
	require.True(t, ok)
	assert.Equal(t, "b-400.webp", e.WebP["400"])
	// the source already is b.webp, so no original copy is recorded
	assert.NotContains(t, e.WebP, manifest.OriginalKey)
	assert.Equal(t, "b-400.jpg", e.JPEG["400"])
}

func TestReprocessReplaceDropsOldRecords(t *testing.T) {
	manifestPath := setupSite(t)

	m := manifest.New([]int{400}, 85)
	m.Set("worn-by-favorites", "gone.webp", manifest.NewEntry("images/worn-by-favorites/gone.webp"))
	require.NoError(t, m.Save(manifestPath))

	flagReplace = true
	require.NoError(t, runReprocess(nil, nil))

	m, err := manifest.Load(manifestPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.webp"}, m.EntryNames("worn-by-favorites"))
}
