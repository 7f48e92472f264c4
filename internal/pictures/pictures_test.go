package pictures

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brogergvhs/landingkit/internal/htmlpatch"
	"github.com/brogergvhs/landingkit/internal/manifest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullEntry(base string) manifest.Entry {
	e := manifest.NewEntry("images/product/" + base + ".jpeg")
	for _, w := range []int{400, 600, 800, 1200} {
		e.WebP[manifest.WidthKey(w)] = base + "-" + manifest.WidthKey(w) + ".webp"
		e.JPEG[manifest.WidthKey(w)] = base + "-" + manifest.WidthKey(w) + ".jpg"
	}
	e.WebP[manifest.OriginalKey] = base + ".webp"
	e.LQIP = base + "-lqip.jpg"
	e.Dimensions = &manifest.Dimensions{Width: 1200, Height: 1600}
	return e
}

func testManifest() *manifest.Manifest {
	m := manifest.New([]int{400, 600, 800, 1200}, 85)
	m.Set("product", "product-01.jpeg", fullEntry("product-01"))

	bump := manifest.NewEntry("images/order-bump/seamless-thong.jpg")
	bump.WebP["400"] = "seamless-thong-400.webp"
	bump.JPEG["400"] = "seamless-thong-400.jpg"
	m.Set("order-bump", "seamless-thong.jpg", bump)
	return m
}

func TestElementHero(t *testing.T) {
	out := Element(fullEntry("product-01"), "product", Options{
		Type:      "hero",
		Alt:       `Pink "Pilates" Set`,
		ClassName: "main-img",
		Width:     600,
		Height:    800,
	})

	assert.True(t, strings.HasPrefix(out, `<picture data-lazy="hero" class="responsive-image"`))
	assert.Contains(t, out, `data-srcset="./images/product/product-01-400.webp 400w, ./images/product/product-01-600.webp 600w, ./images/product/product-01-800.webp 800w, ./images/product/product-01-1200.webp 1200w"`)
	assert.Contains(t, out, `data-src="./images/product/product-01-800.jpg"`)
	assert.Contains(t, out, `loading="eager"`)
	assert.Contains(t, out, `fetchpriority="high"`)
	assert.Contains(t, out, `width="600"`)
	assert.Contains(t, out, `height="800"`)
	assert.Contains(t, out, `alt="Pink &#34;Pilates&#34; Set"`)
	assert.Contains(t, out, `data-lqip="./images/product/product-01-lqip.jpg"`)
	assert.Contains(t, out, `viewBox='0 0 3 4'`)
}

func TestElementOnlyListsProducedWidths(t *testing.T) {
	m := testManifest()
	out, err := ElementFor(m, "order-bump", "seamless-thong.jpg", Options{Type: "order-bump", Prefix: "/assets/img/"})
	require.NoError(t, err)

	assert.Contains(t, out, `data-srcset="/assets/img/order-bump/seamless-thong-400.webp 400w"`)
	assert.NotContains(t, out, "600w")
	// no 800px JPEG: fall back to the widest one
	assert.Contains(t, out, `data-src="/assets/img/order-bump/seamless-thong-400.jpg"`)
	// no dimensions recorded
	assert.Contains(t, out, `width="800"`)
	assert.Contains(t, out, `data-lqip=""`)

	_, err = ElementFor(m, "order-bump", "missing.jpg", Options{})
	assert.Error(t, err)
}

func TestRewriteKeepsAltAndClass(t *testing.T) {
	doc := `<div><img class="main-img fade-in" src="./images/product/product-01.jpeg" alt="Hero shot"></div>
<img src="images/order-bump/seamless-thong.jpg" alt="Seamless Thong">
<img src="images/other/x.jpg">`

	out, results := Rewrite(doc, testManifest(), []Target{
		{Category: "product", Name: "product-01.jpeg", Options: Options{Type: "hero"}},
		{Category: "order-bump", Name: "seamless-thong.jpg", Options: Options{Type: "order-bump", ClassName: "order-bump-image"}},
		{Category: "product", Name: "absent.jpeg"},
	})

	require.Len(t, results, 3)
	assert.Equal(t, 1, results[0].Count)
	assert.Equal(t, 1, results[1].Count)
	assert.Error(t, results[2].Err)

	assert.Equal(t, 2, strings.Count(out, "<picture"))
	assert.Contains(t, out, `alt="Hero shot"`)
	assert.Contains(t, out, `class="main-img fade-in"`)
	assert.Contains(t, out, `class="order-bump-image"`)
	assert.Contains(t, out, `<img src="images/other/x.jpg">`)
}

func TestDefaultTargets(t *testing.T) {
	m := testManifest()
	m.Set("worn-by-favorites", "alix-earle.webp", manifest.NewEntry("alix-earle.webp"))

	targets := DefaultTargets(m)
	require.Len(t, targets, 3)

	byName := map[string]Target{}
	for _, tg := range targets {
		byName[tg.Name] = tg
	}
	assert.Equal(t, "hero", byName["product-01.jpeg"].Type)
	assert.Equal(t, "order-bump", byName["seamless-thong.jpg"].Type)
	assert.Equal(t, "influencer", byName["alix-earle.webp"].Type)
	assert.Equal(t, "alix earle", byName["alix-earle.webp"].Alt)
}

func TestRewriteFileInsertsAssetsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	page := `<html><head><title>x</title></head><body><img src="./images/product/product-01.jpeg" alt="a"></body></html>`
	require.NoError(t, os.WriteFile(path, []byte(page), 0644))

	targets := []Target{{Category: "product", Name: "product-01.jpeg", Options: Options{Type: "hero"}}}

	_, patched, err := RewriteFile(path, testManifest(), targets, FileOptions{Script: LazyScript})
	require.NoError(t, err)
	require.Len(t, patched, 2)
	assert.Equal(t, htmlpatch.StatusApplied, patched[0].Status)

	_, patched, err = RewriteFile(path, testManifest(), targets, FileOptions{Script: LazyScript})
	require.NoError(t, err)
	assert.Equal(t, htmlpatch.StatusSkipped, patched[0].Status)
	assert.Equal(t, htmlpatch.StatusSkipped, patched[1].Status)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(b), `id="responsive-image-styles"`))
	assert.Equal(t, 1, strings.Count(string(b), "advanced-lazy-loading.js"))
	assert.Equal(t, 1, strings.Count(string(b), "<picture"))
}

func TestReport(t *testing.T) {
	r := Report(testManifest())

	hero := r.Images["product"]["product-01.jpeg"]
	assert.Equal(t, "1200x1600", hero.Original)
	assert.Equal(t, 5, hero.WebPVersions)
	assert.Equal(t, 4, hero.JPEGVersions)
	assert.True(t, hero.HasLQIP)
	assert.Equal(t, "480KB", hero.EstimatedWebPSavings)

	bump := r.Images["order-bump"]["seamless-thong.jpg"]
	assert.Equal(t, "unknownxunknown", bump.Original)
	assert.False(t, bump.HasLQIP)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, r.Save(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Contains(t, decoded, "totalSavings")
}
