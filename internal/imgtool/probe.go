package imgtool

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/chai2010/webp"
	"github.com/gabriel-vasile/mimetype"
)

// Dimensions reads the header of a jpeg, png or webp file.
func Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = f.Close() }()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("read dimensions of %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

var rasterTypes = []string{"image/jpeg", "image/png", "image/webp"}

// Sniff returns the detected MIME type of path and whether it is one of the
// raster formats the converter can read.
func Sniff(path string) (string, bool) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", false
	}
	return mt.String(), mimetype.EqualsAny(mt.String(), rasterTypes...)
}
