package placeholder

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/brogergvhs/landingkit/internal/ui"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalogIsValid(t *testing.T) {
	cat := BuiltinCatalog()
	require.Len(t, cat, 4)

	names := map[string]bool{}
	for _, s := range cat {
		require.NoError(t, s.Validate(), s.Name)
		names[s.FileName()] = true
		assert.Equal(t, DefaultQuality, s.quality())
	}

	assert.True(t, names["adhesive-bra-cups.jpg"])
	assert.True(t, names["seamless-thong.jpg"])
	assert.True(t, names["pilates-socks.jpg"])
	assert.True(t, names["bundle-banner.jpg"])
}

func TestRenderPaintsBackgroundAndShapes(t *testing.T) {
	s := Spec{
		Name:       "probe",
		Width:      40,
		Height:     40,
		Background: "#0000ff",
		Shapes: []Shape{
			{Kind: Rect, Box: Box{0, 0, 20, 20}, Fill: "#ff0000"},
		},
	}

	img, err := Render(s, NewFonts(""))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())

	r, g, b, _ := img.At(5, 5).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)

	r, _, b, _ = img.At(35, 35).RGBA()
	assert.Zero(t, r)
	assert.Equal(t, uint32(0xffff), b)
}

func TestRenderGradientClampsAfterSpan(t *testing.T) {
	s := bundleBanner()
	img, err := Render(s, nil)
	require.NoError(t, err)

	top := img.At(2, 0)
	bottom := img.At(2, 190)
	r0, _, _, _ := top.RGBA()
	r1, _, b1, _ := bottom.RGBA()
	assert.Greater(t, r0, r1)
	assert.Equal(t, uint32(0xffff), b1)
}

func TestValidateRejectsBadInput(t *testing.T) {
	cases := map[string]Spec{
		"no name":      {Width: 10, Height: 10},
		"zero size":    {Name: "a"},
		"bad color":    {Name: "a", Width: 1, Height: 1, Background: "pinkish"},
		"bad shape":    {Name: "a", Width: 1, Height: 1, Shapes: []Shape{{Kind: "star"}}},
		"path in name": {Name: "../a", Width: 1, Height: 1},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, s.Validate())
		})
	}
}

func TestGenerateWritesJPEGs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "order-bump")
	var out bytes.Buffer

	g := &Generator{Fonts: NewFonts(filepath.Join(t.TempDir(), "missing.ttf")), Status: ui.NewStatus(&out)}
	written, err := g.Generate(dir, BuiltinCatalog())
	require.NoError(t, err)
	require.Len(t, written, 4)
	assert.True(t, g.Fonts.Fallback())

	img, err := imaging.Open(filepath.Join(dir, "bundle-banner.jpg"))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	assert.Contains(t, out.String(), "Created pilates-socks.jpg")
}

func TestGenerateReportsFailures(t *testing.T) {
	var out bytes.Buffer
	g := &Generator{Status: ui.NewStatus(&out)}

	written, err := g.Generate(t.TempDir(), []Spec{
		{Name: "ok", Width: 8, Height: 8},
		{Name: "broken", Width: 0, Height: 8},
	})
	assert.Error(t, err)
	assert.Len(t, written, 1)
	assert.Contains(t, out.String(), "broken.jpg")
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	body := `placeholders:
  - name: tote
    width: 120
    height: 80
    background: "#FAFAFA"
    shapes:
      - {kind: dot, box: [60, 40, 10, 0], fill: "#E8B4B8"}
    title: {value: "Tote", x: 60, y: 70, size: 12, color: "#2C2C2C"}
    badges:
      - {label: "New", box: [4, 4, 40, 20], fill: "#28a745"}
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cat, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, cat, 1)
	assert.Equal(t, Dot, cat[0].Shapes[0].Kind)
	assert.Equal(t, "Tote", cat[0].Title.Value)

	require.NoError(t, os.WriteFile(path, []byte("placeholders: []\n"), 0644))
	_, err = LoadCatalog(path)
	assert.Error(t, err)
}
