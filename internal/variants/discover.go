package variants

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brogergvhs/landingkit/internal/imgtool"
)

// Source is one input image of a category directory.
type Source struct {
	Path string
	// Name is the file name, used as the manifest key.
	Name string
	// Base is the stem the variants are named after.
	Base string
}

var sourceExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// generatedMarkers lists the name fragments of files this package writes,
// so a second run does not treat its own output as input.
func generatedMarkers(widths []int) []string {
	out := []string{"-lqip"}
	for _, w := range widths {
		out = append(out, fmt.Sprintf("-%d.", w))
	}
	return out
}

func isGenerated(name string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// Discover lists jpg/jpeg/png sources of dir (any case). Generated
// variants and files whose content is not an image are skipped. A trailing
// "-original" is dropped from the variant stem.
func Discover(dir string, widths []int) ([]Source, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	markers := generatedMarkers(widths)
	var (
		out     []Source
		skipped []string
	)

	for _, e := range entries {
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if e.IsDir() || !sourceExts[ext] || isGenerated(name, markers) {
			continue
		}

		path := filepath.Join(dir, name)
		if mime, ok := imgtool.Sniff(path); !ok {
			skipped = append(skipped, fmt.Sprintf("%s (%s)", name, mime))
			continue
		}

		base := strings.TrimSuffix(name, filepath.Ext(name))
		base = strings.TrimSuffix(base, "-original")

		out = append(out, Source{Path: path, Name: name, Base: base})
	}

	return out, skipped, nil
}

// DiscoverWebP lists existing .webp files of dir, skipping width variants.
func DiscoverWebP(dir string, widths []int) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	markers := generatedMarkers(widths)
	var out []Source

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.ToLower(filepath.Ext(name)) != ".webp" || isGenerated(name, markers) {
			continue
		}

		out = append(out, Source{
			Path: filepath.Join(dir, name),
			Name: name,
			Base: strings.TrimSuffix(name, filepath.Ext(name)),
		})
	}

	return out, nil
}
