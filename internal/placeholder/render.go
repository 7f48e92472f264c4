package placeholder

import (
	"image"
	"strings"

	"github.com/fogleman/gg"
)

const lineSpacing = 1.15

// Render draws s onto a fresh canvas. Drawing order: background, shapes,
// texts, badges, header.
func Render(s Spec, fonts *Fonts) (image.Image, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	dc := gg.NewContext(s.Width, s.Height)
	w, h := float64(s.Width), float64(s.Height)

	bg := s.Background
	if bg == "" {
		bg = "#ffffff"
	}
	setColor(dc, bg)
	dc.Clear()

	if g := s.Gradient; g != nil {
		span := g.Span
		if span <= 0 {
			span = h
		}
		from, _ := parseColor(g.From)
		to, _ := parseColor(g.To)

		grad := gg.NewLinearGradient(0, 0, 0, span)
		grad.AddColorStop(0, from)
		grad.AddColorStop(1, to)
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()
	}

	for _, sh := range s.Shapes {
		drawShape(dc, sh)
	}

	for _, t := range s.allTexts() {
		drawText(dc, fonts, t)
	}

	for _, b := range s.Badges {
		drawBadge(dc, fonts, b, 14)
	}
	if s.Header != nil {
		drawBadge(dc, fonts, *s.Header, 28)
	}

	return dc.Image(), nil
}

func setColor(dc *gg.Context, s string) {
	c, err := parseColor(s)
	if err != nil {
		dc.SetRGB(0, 0, 0)
		return
	}
	dc.SetColor(c)
}

func drawShape(dc *gg.Context, sh Shape) {
	b := sh.Box
	stroke := sh.Width
	if stroke <= 0 {
		stroke = 1
	}

	switch sh.Kind {
	case Line:
		dc.DrawLine(b[0], b[1], b[2], b[3])
		setColor(dc, firstColor(sh.Stroke, sh.Fill))
		dc.SetLineWidth(stroke)
		dc.Stroke()
		return
	case Ellipse:
		dc.DrawEllipse((b[0]+b[2])/2, (b[1]+b[3])/2, (b[2]-b[0])/2, (b[3]-b[1])/2)
	case Rect:
		dc.DrawRectangle(b[0], b[1], b[2]-b[0], b[3]-b[1])
	case Dot:
		dc.DrawCircle(b[0], b[1], b[2])
	}

	fillAndStroke(dc, sh.Fill, sh.Stroke, stroke)
}

func fillAndStroke(dc *gg.Context, fill, stroke string, width float64) {
	if fill != "" {
		setColor(dc, fill)
		if stroke != "" {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if stroke != "" {
		setColor(dc, stroke)
		dc.SetLineWidth(width)
		dc.Stroke()
	}
	dc.ClearPath()
}

func firstColor(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return "#000000"
}

func drawText(dc *gg.Context, fonts *Fonts, t Text) {
	if t.Value == "" {
		return
	}
	size := t.Size
	if size <= 0 {
		size = 18
	}

	dc.SetFontFace(fonts.Face(size))
	setColor(dc, firstColor(t.Color, "#2C2C2C"))

	lines := strings.Split(t.Value, "\n")
	step := dc.FontHeight() * lineSpacing
	top := t.Y - step*float64(len(lines)-1)/2

	for i, line := range lines {
		dc.DrawStringAnchored(line, t.X, top+step*float64(i), 0.5, 0.35)
	}
}

func drawBadge(dc *gg.Context, fonts *Fonts, b Badge, defaultSize float64) {
	box := b.Box
	dc.DrawRectangle(box[0], box[1], box[2]-box[0], box[3]-box[1])
	fillAndStroke(dc, b.Fill, b.Stroke, 1)

	size := b.Size
	if size <= 0 {
		size = defaultSize
	}
	drawText(dc, fonts, Text{
		Value: b.Label,
		X:     (box[0] + box[2]) / 2,
		Y:     (box[1] + box[3]) / 2,
		Size:  size,
		Color: "#ffffff",
	})
}
