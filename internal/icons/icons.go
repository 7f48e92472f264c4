// Package icons draws the PWA icon set and the favicon.
package icons

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/brogergvhs/landingkit/internal/placeholder"
	"github.com/brogergvhs/landingkit/internal/ui"
	"github.com/brogergvhs/landingkit/internal/util"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

var Sizes = []int{72, 96, 128, 144, 152, 192, 384, 512}

const (
	FaviconSize = 32
	BrandText   = "Pink Pilates"
	// brand caption only fits from this size up
	brandMinSize = 192
)

var (
	gradFrom = color.RGBA{0xE8, 0xB4, 0xB8, 0xff}
	gradTo   = color.RGBA{0xD4, 0xA5, 0xA9, 0xff}
	emblem   = color.RGBA{0xff, 0xff, 0xff, 0xe6}
)

func FileName(size int) string {
	return fmt.Sprintf("icon-%dx%d.png", size, size)
}

func diagonal(size float64) gg.Gradient {
	g := gg.NewLinearGradient(0, 0, size, size)
	g.AddColorStop(0, gradFrom)
	g.AddColorStop(1, gradTo)
	return g
}

// Render draws a size x size app icon: gradient disc with a white rim,
// the garment emblem and, on large sizes, the brand caption.
func Render(size int, fonts *placeholder.Fonts) image.Image {
	s := float64(size)
	dc := gg.NewContext(size, size)

	dc.DrawCircle(s/2, s/2, s/2-2)
	dc.SetFillStyle(diagonal(s))
	dc.FillPreserve()
	dc.SetColor(color.White)
	dc.SetLineWidth(2)
	dc.Stroke()

	dc.Push()
	dc.Translate(s/2, s/2)
	dc.SetColor(emblem)

	// wrap top
	dc.MoveTo(-s*0.15, -s*0.05)
	dc.CubicTo(-s*0.15, -s*0.15, -s*0.05, -s*0.2, 0, -s*0.2)
	dc.CubicTo(s*0.05, -s*0.2, s*0.15, -s*0.15, s*0.15, -s*0.05)
	dc.LineTo(s*0.12, s*0.05)
	dc.CubicTo(s*0.08, s*0.08, s*0.02, s*0.1, 0, s*0.1)
	dc.CubicTo(-s*0.02, s*0.1, -s*0.08, s*0.08, -s*0.12, s*0.05)
	dc.ClosePath()
	dc.Fill()

	// pants
	dc.DrawEllipse(0, s*0.15, s*0.12, s*0.08)
	dc.Fill()

	dc.SetColor(color.White)
	dc.DrawCircle(0, -s*0.05, s*0.02)
	dc.Fill()
	dc.Pop()

	if size >= brandMinSize {
		dc.SetFontFace(fonts.Face(s * 0.08))
		dc.SetColor(color.White)
		dc.DrawStringAnchored(BrandText, s/2, s-10, 0.5, 0)
	}

	return dc.Image()
}

// RenderFavicon draws the small rounded-square "P" mark.
func RenderFavicon(fonts *placeholder.Fonts) image.Image {
	s := float64(FaviconSize)
	dc := gg.NewContext(FaviconSize, FaviconSize)

	dc.DrawRoundedRectangle(0, 0, s, s, 6)
	dc.SetFillStyle(diagonal(s))
	dc.Fill()

	dc.SetFontFace(fonts.Face(14))
	dc.SetColor(color.White)
	dc.DrawStringAnchored("P", s/2, 22, 0.5, 0)

	return dc.Image()
}

// Generate writes every icon size plus favicon.png into dir. A size that
// fails is reported and the rest are still written.
func Generate(dir string, fonts *placeholder.Fonts, status *ui.Status) ([]string, error) {
	var (
		written []string
		failed  int
	)

	save := func(name string, img image.Image) {
		var buf bytes.Buffer
		err := imaging.Encode(&buf, img, imaging.PNG)
		if err != nil {
			err = fmt.Errorf("encode %s: %w", name, err)
		} else {
			path := filepath.Join(dir, name)
			if err = util.WriteFileAtomic(path, buf.Bytes(), 0644); err == nil {
				written = append(written, path)
				status.Printf("Generated: %s", name)
				return
			}
		}
		failed++
		status.Fail("%s: %v", name, err)
	}

	for _, size := range Sizes {
		save(FileName(size), Render(size, fonts))
	}
	save("favicon.png", RenderFavicon(fonts))

	if failed > 0 {
		return written, fmt.Errorf("%d of %d icons failed", failed, len(Sizes)+1)
	}
	return written, nil
}
