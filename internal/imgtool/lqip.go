package imgtool

import (
	"github.com/disintegration/imaging"
)

// LQIP writes a size x size, blurred, low quality JPEG preview of in.
// The square target ignores the source aspect ratio; the preview is
// stretched back by CSS anyway.
func LQIP(in, out string, size, quality int, sigma float64) error {
	img, err := Decode(in)
	if err != nil {
		return err
	}

	small := imaging.Resize(img, size, size, imaging.Lanczos)
	if sigma > 0 {
		small = imaging.Blur(small, sigma)
	}

	return saveJPEG(small, out, quality)
}
