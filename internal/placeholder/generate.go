package placeholder

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/brogergvhs/landingkit/internal/ui"
	"github.com/brogergvhs/landingkit/internal/util"

	"github.com/disintegration/imaging"
)

type Generator struct {
	Fonts  *Fonts
	Status *ui.Status
	Log    *ui.Logger
}

// Generate renders every spec of catalog into dir as a JPEG. A spec that
// fails is reported and skipped; the returned paths are the files written.
func (g *Generator) Generate(dir string, catalog []Spec) ([]string, error) {
	var (
		written []string
		failed  int
	)

	for _, s := range catalog {
		path := filepath.Join(dir, s.FileName())
		if err := g.one(s, path); err != nil {
			failed++
			g.Status.Fail("%s: %v", s.FileName(), err)
			continue
		}
		written = append(written, path)
		g.Status.Pass("Created %s", s.FileName())
	}

	if g.Fonts.Fallback() && g.Log != nil {
		g.Log.Warnf("TrueType font unavailable, captions use the built-in bitmap face")
	}

	if failed > 0 {
		return written, fmt.Errorf("%d of %d placeholders failed", failed, len(catalog))
	}
	return written, nil
}

func (g *Generator) one(s Spec, path string) error {
	img, err := Render(s, g.Fonts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(s.quality())); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	return util.WriteFileAtomic(path, buf.Bytes(), 0644)
}
