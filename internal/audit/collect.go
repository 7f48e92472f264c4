package audit

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var reBackgroundURL = regexp.MustCompile(`url\((?:["']?)([^"')]+)(?:["']?)\)`)

// Ref is one image reference found in the page.
type Ref struct {
	// Raw is the value as written in the markup.
	Raw string `json:"raw"`
	// Resolved is an absolute URL for remote pages, a file path otherwise.
	Resolved string `json:"resolved"`
	Attr     string `json:"attr"`
	Remote   bool   `json:"remote"`
}

type collector struct {
	src  *Source
	refs []Ref
	seen map[string]bool
}

// CollectImages lists every image the page references, de-duplicated by
// resolved location, in discovery order: img, then picture sources, then
// inline background images.
func CollectImages(src *Source) []Ref {
	c := &collector{src: src, seen: map[string]bool{}}

	src.Doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		for _, attr := range []string{"src", "data-src"} {
			if v, ok := img.Attr(attr); ok {
				c.add(v, "img["+attr+"]")
			}
		}
		for _, attr := range []string{"srcset", "data-srcset"} {
			c.addSrcset(img, "img", attr)
		}
	})

	src.Doc.Find("source").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range []string{"srcset", "data-srcset"} {
			c.addSrcset(s, "source", attr)
		}
	})

	src.Doc.Find("[style]").Each(func(_ int, el *goquery.Selection) {
		style, _ := el.Attr("style")
		if !strings.Contains(strings.ToLower(style), "background-image") {
			return
		}
		for _, m := range reBackgroundURL.FindAllStringSubmatch(style, -1) {
			c.add(m[1], "style")
		}
	})

	return c.refs
}

func (c *collector) addSrcset(sel *goquery.Selection, tag, attr string) {
	ss, ok := sel.Attr(attr)
	if !ok {
		return
	}
	for _, cand := range SplitSrcset(ss) {
		c.add(cand, tag+"["+attr+"]")
	}
}

func (c *collector) add(raw, attr string) {
	raw = strings.TrimSpace(raw)
	l := strings.ToLower(raw)
	if raw == "" || strings.HasPrefix(l, "data:") || strings.HasPrefix(l, "javascript:") {
		return
	}

	resolved, remote := resolve(c.src, raw)
	if c.seen[resolved] {
		return
	}
	c.seen[resolved] = true

	c.refs = append(c.refs, Ref{Raw: raw, Resolved: resolved, Attr: attr, Remote: remote})
}

// SplitSrcset returns the URLs of a srcset value without descriptors.
func SplitSrcset(ss string) []string {
	var out []string
	for _, p := range strings.Split(ss, ",") {
		parts := strings.Fields(p)
		if len(parts) > 0 {
			out = append(out, parts[0])
		}
	}
	return out
}

func resolve(src *Source, raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return raw, isRemote(raw)
	}

	if u.IsAbs() {
		if u.Scheme == "file" {
			return u.Path, false
		}
		return u.String(), isRemote(raw)
	}

	// protocol-relative: a remote page lends its scheme, a file gets https
	if u.Host != "" && !src.Remote {
		u.Scheme = "https"
		return u.String(), true
	}

	if src.Remote {
		base, err := url.Parse(src.Base)
		if err != nil {
			return raw, false
		}
		return base.ResolveReference(u).String(), true
	}

	// site-root and relative paths both live under the page directory
	p := strings.TrimPrefix(u.Path, "/")
	return filepath.Join(src.Base, filepath.FromSlash(p)), false
}
