// Package manifest records which generated image variants exist for each
// source image. The document is what the picture-element rewriter and the
// lazy loader read back.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/brogergvhs/landingkit/internal/util"
)

var ErrNotFound = errors.New("manifest not found")

// OriginalKey is the WebP map key of the full-size variant.
const OriginalKey = "original"

func WidthKey(w int) string {
	return strconv.Itoa(w)
}

type Manifest struct {
	GeneratedAt string                      `json:"generated_at"`
	ImageSizes  []int                       `json:"image_sizes"`
	WebPQuality int                         `json:"webp_quality"`
	Categories  map[string]map[string]Entry `json:"categories"`
}

func New(widths []int, quality int) *Manifest {
	return &Manifest{
		ImageSizes:  append([]int(nil), widths...),
		WebPQuality: quality,
		Categories:  map[string]map[string]Entry{},
	}
}

// Load reads an existing manifest. A missing file yields ErrNotFound so the
// caller can decide whether to start from New.
func Load(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	if m.Categories == nil {
		m.Categories = map[string]map[string]Entry{}
	}

	return &m, nil
}

// Save stamps generated_at and writes the document atomically.
func (m *Manifest) Save(path string) error {
	m.GeneratedAt = time.Now().UTC().Format(time.RFC3339)

	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	return util.WriteFileAtomic(path, append(b, '\n'), 0644)
}

// Set replaces the record for one source image.
func (m *Manifest) Set(category, name string, e Entry) {
	if m.Categories == nil {
		m.Categories = map[string]map[string]Entry{}
	}

	cat, ok := m.Categories[category]
	if !ok {
		cat = map[string]Entry{}
		m.Categories[category] = cat
	}
	cat[name] = e
}

// Merge overwrites the given records and keeps every other record of the
// category untouched.
func (m *Manifest) Merge(category string, entries map[string]Entry) {
	for name, e := range entries {
		m.Set(category, name, e)
	}
}

// ReplaceCategory drops whatever the category held before.
func (m *Manifest) ReplaceCategory(category string, entries map[string]Entry) {
	delete(m.Categories, category)
	if len(entries) == 0 {
		return
	}
	m.Merge(category, entries)
}

func (m *Manifest) Lookup(category, name string) (Entry, bool) {
	cat, ok := m.Categories[category]
	if !ok {
		return Entry{}, false
	}
	e, ok := cat[name]
	return e, ok
}

// CategoryNames returns the categories in sorted order.
func (m *Manifest) CategoryNames() []string {
	names := make([]string, 0, len(m.Categories))
	for c := range m.Categories {
		names = append(names, c)
	}
	sort.Strings(names)
	return names
}

// EntryNames returns the image names of a category in sorted order.
func (m *Manifest) EntryNames(category string) []string {
	cat := m.Categories[category]
	names := make([]string, 0, len(cat))
	for n := range cat {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type Stats struct {
	Categories int
	Entries    int
	WebP       int
	JPEG       int
	LQIP       int
}

func (s Stats) Variants() int {
	return s.WebP + s.JPEG
}

func (m *Manifest) Stats() Stats {
	var s Stats
	s.Categories = len(m.Categories)
	for _, cat := range m.Categories {
		for _, e := range cat {
			s.Entries++
			s.WebP += len(e.WebP)
			s.JPEG += len(e.JPEG)
			if e.LQIP != "" {
				s.LQIP++
			}
		}
	}
	return s
}
