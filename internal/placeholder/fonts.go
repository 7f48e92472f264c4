package placeholder

import (
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Fonts hands out faces of one TrueType file by point size. When the file
// is missing or unreadable every size maps to the fixed 7x13 bitmap face.
type Fonts struct {
	path string

	mu       sync.Mutex
	faces    map[float64]font.Face
	fallback bool
}

func NewFonts(path string) *Fonts {
	return &Fonts{path: path, faces: map[float64]font.Face{}, fallback: path == ""}
}

// Fallback reports whether the bitmap face is in use.
func (f *Fonts) Fallback() bool {
	if f == nil {
		return true
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fallback
}

func (f *Fonts) Face(points float64) font.Face {
	if f == nil {
		return basicfont.Face7x13
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fallback {
		return basicfont.Face7x13
	}
	if face, ok := f.faces[points]; ok {
		return face
	}

	face, err := gg.LoadFontFace(f.path, points)
	if err != nil {
		f.fallback = true
		return basicfont.Face7x13
	}
	f.faces[points] = face
	return face
}
