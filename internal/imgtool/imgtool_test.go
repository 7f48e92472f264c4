package imgtool

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

// fakeRunner records invocations and creates the file named after -o/--out.
type fakeRunner struct {
	calls  []call
	stderr string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	if f.err != nil {
		return "", f.stderr, f.err
	}
	for i, a := range args {
		if (a == "-o" || a == "--out") && i+1 < len(args) {
			if err := os.WriteFile(args[i+1], []byte("out"), 0644); err != nil {
				return "", "", err
			}
		}
	}
	return "", f.stderr, nil
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 255), G: 180, B: uint8(y % 255), A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestCWebPArgs(t *testing.T) {
	c := CWebP{Quality: 85}

	assert.Equal(t, []string{"-q", "85", "-resize", "400", "0", "in.jpg", "-o", "out.webp"}, c.Args("in.jpg", "out.webp", 400))
	assert.Equal(t, []string{"-q", "85", "in.jpg", "-o", "out.webp"}, c.Args("in.jpg", "out.webp", 0))
}

func TestSipsArgs(t *testing.T) {
	s := Sips{Quality: 85}

	assert.Equal(t,
		[]string{"-Z", "600", "in.png", "-s", "format", "jpeg", "-s", "formatOptions", "85", "--out", "out.jpg"},
		s.Args("in.png", "out.jpg", 600))
	assert.Equal(t, "1200", s.Args("a", "b", 0)[1])
}

func TestCWebPEncodeUsesRunner(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "a-400.webp")
	r := &fakeRunner{}

	c := CWebP{Bin: "/opt/bin/cwebp", Quality: 80, Runner: r}
	require.NoError(t, c.Encode(context.Background(), "a.jpg", out, 400))

	require.Len(t, r.calls, 1)
	assert.Equal(t, "/opt/bin/cwebp", r.calls[0].name)
	assert.FileExists(t, out)
}

func TestToolFailureCarriesStderr(t *testing.T) {
	r := &fakeRunner{err: errors.New("exit status 255"), stderr: "Could not process file"}

	err := Sips{Quality: 85, Runner: r}.ResizeJPEG(context.Background(), "a.webp", "a-400.jpg", 400)
	require.Error(t, err)

	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "sips", te.Tool)
	assert.Contains(t, err.Error(), "Could not process file")
}

func TestSelectFallsBackWhenMissing(t *testing.T) {
	r := &fakeRunner{err: ErrToolMissing}

	enc, err := SelectWebP(context.Background(), "cwebp", 85, r)
	assert.ErrorIs(t, err, ErrToolMissing)
	assert.IsType(t, NativeWebP{}, enc)

	res, err := SelectJPEG(context.Background(), "", 85, r)
	require.NoError(t, err)
	assert.IsType(t, NativeJPEG{}, res)

	enc, err = SelectWebP(context.Background(), "cwebp", 85, &fakeRunner{})
	require.NoError(t, err)
	assert.IsType(t, CWebP{}, enc)
}

func TestExecRunnerMissingBinary(t *testing.T) {
	_, _, err := ExecRunner{}.Run(context.Background(), "landingkit-no-such-tool")
	assert.ErrorIs(t, err, ErrToolMissing)
}

func TestNativeWebPResizesToWidth(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	out := filepath.Join(dir, "src-100.webp")
	writePNG(t, src, 200, 100)

	require.NoError(t, NativeWebP{Quality: 85}.Encode(context.Background(), src, out, 100))

	w, h, err := Dimensions(out)
	require.NoError(t, err)
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)

	mime, ok := Sniff(out)
	assert.True(t, ok)
	assert.Equal(t, "image/webp", mime)
}

func TestNativeJPEGNeverUpscales(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	writePNG(t, src, 300, 150)

	small := filepath.Join(dir, "src-100.jpg")
	require.NoError(t, NativeJPEG{Quality: 85}.ResizeJPEG(context.Background(), src, small, 100))
	w, h, err := Dimensions(small)
	require.NoError(t, err)
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)

	big := filepath.Join(dir, "src-1200.jpg")
	require.NoError(t, NativeJPEG{Quality: 85}.ResizeJPEG(context.Background(), src, big, 1200))
	w, _, err = Dimensions(big)
	require.NoError(t, err)
	assert.Equal(t, 300, w)
}

func TestLQIPFromWebP(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.webp")

	img := image.NewNRGBA(image.Rect(0, 0, 64, 48))
	f, err := os.Create(src)
	require.NoError(t, err)
	require.NoError(t, webp.Encode(f, img, &webp.Options{Quality: 90}))
	require.NoError(t, f.Close())

	out := filepath.Join(dir, "src-lqip.jpg")
	require.NoError(t, LQIP(src, out, 20, 30, 2))

	w, h, err := Dimensions(out)
	require.NoError(t, err)
	assert.Equal(t, 20, w)
	assert.Equal(t, 20, h)
}

func TestSniffRejectsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not an image at all"), 0644))

	_, ok := Sniff(path)
	assert.False(t, ok)

	_, _, err := Dimensions(path)
	assert.Error(t, err)
}
