package placeholder

import (
	"errors"
	"fmt"
	"os"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

const DefaultQuality = 95

type ShapeKind string

const (
	Ellipse ShapeKind = "ellipse"
	Rect    ShapeKind = "rect"
	Line    ShapeKind = "line"
	// Dot uses Box as [cx, cy, r, _].
	Dot ShapeKind = "dot"
)

// Box is x0, y0, x1, y1 in canvas pixels.
type Box [4]float64

type Shape struct {
	Kind   ShapeKind `yaml:"kind"`
	Box    Box       `yaml:"box"`
	Fill   string    `yaml:"fill,omitempty"`
	Stroke string    `yaml:"stroke,omitempty"`
	Width  float64   `yaml:"width,omitempty"`
}

// Text is drawn centered on X, Y. "\n" starts a new line.
type Text struct {
	Value string  `yaml:"value"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Size  float64 `yaml:"size"`
	Color string  `yaml:"color"`
}

// Badge is a filled rectangle with a centered white label.
type Badge struct {
	Label  string  `yaml:"label"`
	Box    Box     `yaml:"box"`
	Fill   string  `yaml:"fill"`
	Stroke string  `yaml:"stroke,omitempty"`
	Size   float64 `yaml:"size,omitempty"`
}

// Gradient paints the background top to bottom, From at y=0 and To from
// y=Span downwards.
type Gradient struct {
	From string  `yaml:"from"`
	To   string  `yaml:"to"`
	Span float64 `yaml:"span"`
}

type Spec struct {
	Name       string    `yaml:"name"`
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	Background string    `yaml:"background"`
	Gradient   *Gradient `yaml:"gradient,omitempty"`
	Shapes     []Shape   `yaml:"shapes,omitempty"`
	Title      *Text     `yaml:"title,omitempty"`
	Subtitle   *Text     `yaml:"subtitle,omitempty"`
	Texts      []Text    `yaml:"texts,omitempty"`
	Badges     []Badge   `yaml:"badges,omitempty"`
	Header     *Badge    `yaml:"header,omitempty"`
	Quality    int       `yaml:"quality,omitempty"`
}

func (s Spec) FileName() string {
	if strings.Contains(s.Name, ".") {
		return s.Name
	}
	return s.Name + ".jpg"
}

func (s Spec) quality() int {
	if s.Quality <= 0 || s.Quality > 100 {
		return DefaultQuality
	}
	return s.Quality
}

func (s Spec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("placeholder: missing name")
	}
	if strings.ContainsAny(s.Name, `/\`) {
		return fmt.Errorf("placeholder %s: name must not contain path separators", s.Name)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("placeholder %s: invalid size %dx%d", s.Name, s.Width, s.Height)
	}

	var colors []string
	colors = append(colors, s.Background)
	if s.Gradient != nil {
		colors = append(colors, s.Gradient.From, s.Gradient.To)
	}
	for _, sh := range s.Shapes {
		switch sh.Kind {
		case Ellipse, Rect, Line, Dot:
		default:
			return fmt.Errorf("placeholder %s: unknown shape %q", s.Name, sh.Kind)
		}
		colors = append(colors, sh.Fill, sh.Stroke)
	}
	for _, t := range s.allTexts() {
		colors = append(colors, t.Color)
	}
	for _, b := range s.allBadges() {
		colors = append(colors, b.Fill, b.Stroke)
	}

	for _, c := range colors {
		if c == "" {
			continue
		}
		if _, err := parseColor(c); err != nil {
			return fmt.Errorf("placeholder %s: %w", s.Name, err)
		}
	}
	return nil
}

func (s Spec) allTexts() []Text {
	var out []Text
	if s.Title != nil {
		out = append(out, *s.Title)
	}
	if s.Subtitle != nil {
		out = append(out, *s.Subtitle)
	}
	return append(out, s.Texts...)
}

func (s Spec) allBadges() []Badge {
	out := append([]Badge(nil), s.Badges...)
	if s.Header != nil {
		out = append(out, *s.Header)
	}
	return out
}

var named = map[string]string{
	"white": "#ffffff",
	"black": "#000000",
}

func parseColor(s string) (colorful.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := named[v]; ok {
		v = hex
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}

type catalogFile struct {
	Placeholders []Spec `yaml:"placeholders"`
}

// LoadCatalog reads a YAML file with a top level "placeholders" list.
func LoadCatalog(path string) ([]Spec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Placeholders) == 0 {
		return nil, fmt.Errorf("%s: no placeholders defined", path)
	}

	for _, s := range f.Placeholders {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Placeholders, nil
}
