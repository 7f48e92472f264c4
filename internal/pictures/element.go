package pictures

import (
	"fmt"
	"html"
	"path"
	"strings"

	"github.com/brogergvhs/landingkit/internal/manifest"
)

type Options struct {
	// Type selects a Profile (hero, gallery, testimonial, influencer,
	// order-bump).
	Type      string
	Alt       string
	ClassName string
	Width     int
	Height    int
	// Prefix is the URL prefix of the images directory, "./images" if empty.
	Prefix string
}

// Element renders the <picture> for one manifest record. Only widths the
// record actually has are listed in the srcsets.
func Element(e manifest.Entry, category string, opts Options) string {
	kind, prof := ProfileFor(opts.Type)

	prefix := strings.TrimRight(opts.Prefix, "/")
	if prefix == "" {
		prefix = "./images"
	}
	url := func(file string) string { return prefix + "/" + category + "/" + file }

	webpSet := srcset(e.WebP, prof.Sizes, url)
	jpegSet := srcset(e.JPEG, prof.Sizes, url)

	width, height := opts.Width, opts.Height
	if (width == 0 || height == 0) && e.Dimensions != nil {
		width, height = e.Dimensions.Width, e.Dimensions.Height
	}
	if width == 0 || height == 0 {
		width, height = 800, 600
	}

	lqip := ""
	if e.LQIP != "" {
		lqip = url(e.LQIP)
	}

	placeholder := fmt.Sprintf("data:image/svg+xml,%%3Csvg xmlns='http://www.w3.org/2000/svg' viewBox='%s'%%3E%%3C/svg%%3E",
		aspectViewBox(prof.AspectRatio))

	var b strings.Builder
	fmt.Fprintf(&b, "<picture data-lazy=\"%s\" class=\"responsive-image\" data-aspect-ratio=\"%s\">\n", kind, prof.AspectRatio)
	if webpSet != "" {
		fmt.Fprintf(&b, "    <source\n        type=\"image/webp\"\n        data-srcset=\"%s\"\n        sizes=\"%s\"\n    />\n",
			webpSet, prof.SizesAttr)
	}

	b.WriteString("    <img\n")
	attr := func(name, value string) {
		fmt.Fprintf(&b, "        %s=\"%s\"\n", name, value)
	}
	attr("src", placeholder)
	if jpegSet != "" {
		attr("data-srcset", jpegSet)
	}
	attr("data-src", fallbackSrc(e, url))
	attr("sizes", prof.SizesAttr)
	attr("alt", html.EscapeString(opts.Alt))
	attr("loading", prof.Loading)
	attr("fetchpriority", prof.FetchPriority)
	attr("decoding", "async")
	attr("width", fmt.Sprint(width))
	attr("height", fmt.Sprint(height))
	attr("data-aspect-ratio", prof.AspectRatio)
	attr("data-lqip", lqip)
	attr("class", html.EscapeString(opts.ClassName))
	b.WriteString("    />\n</picture>")

	return b.String()
}

// ElementFor looks the record up first.
func ElementFor(m *manifest.Manifest, category, name string, opts Options) (string, error) {
	e, ok := m.Lookup(category, name)
	if !ok {
		return "", fmt.Errorf("image data not found: %s/%s", category, name)
	}
	return Element(e, category, opts), nil
}

func srcset(files map[string]string, sizes []int, url func(string) string) string {
	parts := make([]string, 0, len(sizes))
	for _, w := range sizes {
		if f, ok := files[manifest.WidthKey(w)]; ok {
			parts = append(parts, fmt.Sprintf("%s %dw", url(f), w))
		}
	}
	return strings.Join(parts, ", ")
}

// fallbackSrc prefers the 800px JPEG, then the widest JPEG, then the
// source file itself.
func fallbackSrc(e manifest.Entry, url func(string) string) string {
	if f, ok := e.JPEG[manifest.WidthKey(800)]; ok {
		return url(f)
	}
	if ws := manifest.Widths(e.JPEG); len(ws) > 0 {
		return url(e.JPEG[manifest.WidthKey(ws[len(ws)-1])])
	}
	return url(path.Base(e.Original))
}
