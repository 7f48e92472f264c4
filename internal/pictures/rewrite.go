package pictures

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/brogergvhs/landingkit/internal/htmlpatch"
	"github.com/brogergvhs/landingkit/internal/manifest"
	"github.com/brogergvhs/landingkit/internal/util"

	"github.com/PuerkitoBio/goquery"
)

// Target selects the <img> tags replaced by one manifest record.
type Target struct {
	Category string
	Name     string
	// Match overrides the default tag pattern, which matches any <img>
	// whose src ends in images/<category>/<name>.
	Match string
	Options
}

func (t Target) pattern() (*regexp.Regexp, error) {
	if t.Match != "" {
		return regexp.Compile(t.Match)
	}
	src := regexp.QuoteMeta("images/" + t.Category + "/" + t.Name)
	return regexp.Compile(`<img\b[^>]*\ssrc="(?:\.?/)?` + src + `"[^>]*>`)
}

type Result struct {
	Category string
	Name     string
	Count    int
	Err      error
}

// Rewrite swaps matching <img> tags for <picture> elements. Alt text and
// class are taken from the replaced tag unless the target sets them.
func Rewrite(doc string, m *manifest.Manifest, targets []Target) (string, []Result) {
	results := make([]Result, 0, len(targets))

	for _, t := range targets {
		res := Result{Category: t.Category, Name: t.Name}

		entry, ok := m.Lookup(t.Category, t.Name)
		if !ok {
			res.Err = fmt.Errorf("image data not found: %s/%s", t.Category, t.Name)
			results = append(results, res)
			continue
		}

		re, err := t.pattern()
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		doc = re.ReplaceAllStringFunc(doc, func(tag string) string {
			opts := t.Options
			alt, class := tagAttrs(tag)
			if opts.Alt == "" {
				opts.Alt = alt
			}
			if opts.ClassName == "" {
				opts.ClassName = class
			}
			res.Count++
			return Element(entry, t.Category, opts)
		})

		results = append(results, res)
	}

	return doc, results
}

func tagAttrs(tag string) (alt, class string) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(tag))
	if err != nil {
		return "", ""
	}
	img := d.Find("img").First()
	alt, _ = img.Attr("alt")
	class, _ = img.Attr("class")
	return alt, class
}

// DefaultTargets covers every record of the manifest. The first product
// image is the hero; the other categories use their matching profile.
func DefaultTargets(m *manifest.Manifest) []Target {
	var out []Target
	for _, cat := range m.CategoryNames() {
		for i, name := range m.EntryNames(cat) {
			kind := profileForCategory(cat)
			if cat == "product" && i == 0 {
				kind = "hero"
			}
			opts := Options{Type: kind}
			if kind == "influencer" {
				opts.Alt = strings.ReplaceAll(strings.TrimSuffix(name, ".webp"), "-", " ")
			}
			out = append(out, Target{Category: cat, Name: name, Options: opts})
		}
	}
	return out
}

// LazyScript is the loader that swaps data-srcset into srcset.
const LazyScript = `<script src="./advanced-lazy-loading.js" defer></script>`

// AssetPatches inserts the image CSS into <head> and the lazy loader before
// </body>, once each.
func AssetPatches(script string) []htmlpatch.Patch {
	patches := []htmlpatch.Patch{{
		Name:           "responsive image styles",
		Kind:           htmlpatch.KindBefore,
		Anchor:         "</head>",
		Content:        ImageCSS(),
		SkipIfSelector: "#" + styleID,
	}}
	if script != "" {
		patches = append(patches, htmlpatch.Patch{
			Name:    "lazy loading script",
			Kind:    htmlpatch.KindBeforeLast,
			Anchor:  "</body>",
			Content: script,
			Guard:   script,
		})
	}
	return patches
}

type FileOptions struct {
	DryRun bool
	Script string
}

// RewriteFile applies AssetPatches and Rewrite to an HTML file in place.
func RewriteFile(path string, m *manifest.Manifest, targets []Target, opts FileOptions) ([]Result, []htmlpatch.Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	doc, patched := htmlpatch.Apply(string(b), AssetPatches(opts.Script))
	doc, results := Rewrite(doc, m, targets)

	if opts.DryRun || doc == string(b) {
		return results, patched, nil
	}

	return results, patched, util.WriteFileAtomic(path, []byte(doc), 0644)
}
