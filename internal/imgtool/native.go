package imgtool

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/brogergvhs/landingkit/internal/util"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Decode opens jpeg, png or webp sources, honouring EXIF orientation.
func Decode(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// NativeWebP mirrors CWebP in-process: width scales to that exact width.
type NativeWebP struct {
	Quality int
}

func (NativeWebP) Name() string { return BuiltinName + " webp" }

func (n NativeWebP) Encode(ctx context.Context, in, out string, width int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := Decode(in)
	if err != nil {
		return err
	}
	if width > 0 && img.Bounds().Dx() != width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(n.Quality)}); err != nil {
		return fmt.Errorf("error encoding to webp: %w", err)
	}

	return util.WriteFileAtomic(out, buf.Bytes(), 0644)
}

// NativeJPEG mirrors Sips: the longest side is fitted into width and the
// image is never upscaled.
type NativeJPEG struct {
	Quality int
}

func (NativeJPEG) Name() string { return BuiltinName + " jpeg" }

func (n NativeJPEG) ResizeJPEG(ctx context.Context, in, out string, width int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if width <= 0 {
		width = DefaultJPEGWidth
	}

	img, err := Decode(in)
	if err != nil {
		return err
	}

	return saveJPEG(imaging.Fit(img, width, width, imaging.Lanczos), out, n.Quality)
}

func saveJPEG(img image.Image, out string, quality int) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("encode jpeg %s: %w", out, err)
	}
	return util.WriteFileAtomic(out, buf.Bytes(), 0644)
}

// SelectWebP returns the cwebp wrapper unless bin asks for the built-in
// encoder or the binary cannot be found.
func SelectWebP(ctx context.Context, bin string, quality int, r Runner) (WebPEncoder, error) {
	if bin == BuiltinName {
		return NativeWebP{Quality: quality}, nil
	}

	c := CWebP{Bin: bin, Quality: quality, Runner: r}
	if err := c.Available(ctx); err != nil {
		return NativeWebP{Quality: quality}, err
	}
	return c, nil
}

// SelectJPEG is SelectWebP for the JPEG fallback resizer. An empty bin also
// means built-in since sips only exists on macOS.
func SelectJPEG(ctx context.Context, bin string, quality int, r Runner) (JPEGResizer, error) {
	if bin == "" || bin == BuiltinName {
		return NativeJPEG{Quality: quality}, nil
	}

	s := Sips{Bin: bin, Quality: quality, Runner: r}
	if err := s.Available(ctx); err != nil {
		return NativeJPEG{Quality: quality}, err
	}
	return s, nil
}
