// Package pictures rewrites plain <img> tags into responsive <picture>
// elements backed by the image manifest.
package pictures

import "strings"

type Profile struct {
	Sizes         []int
	Loading       string
	FetchPriority string
	AspectRatio   string
	SizesAttr     string
}

var Profiles = map[string]Profile{
	"hero": {
		Sizes:         []int{400, 600, 800, 1200},
		Loading:       "eager",
		FetchPriority: "high",
		AspectRatio:   "3/4",
		SizesAttr:     "(max-width: 480px) 100vw, (max-width: 768px) 50vw, (max-width: 1024px) 40vw, 600px",
	},
	"gallery": {
		Sizes:         []int{400, 600, 800},
		Loading:       "lazy",
		FetchPriority: "auto",
		AspectRatio:   "3/4",
		SizesAttr:     "(max-width: 480px) 100vw, (max-width: 768px) 50vw, (max-width: 1024px) 33vw, 400px",
	},
	"testimonial": {
		Sizes:         []int{400, 600, 800},
		Loading:       "lazy",
		FetchPriority: "low",
		AspectRatio:   "4/3",
		SizesAttr:     "(max-width: 480px) 100vw, (max-width: 768px) 50vw, 600px",
	},
	"influencer": {
		Sizes:         []int{400, 600, 800},
		Loading:       "lazy",
		FetchPriority: "low",
		AspectRatio:   "1/1",
		SizesAttr:     "(max-width: 480px) 120px, (max-width: 768px) 150px, 200px",
	},
	"order-bump": {
		Sizes:         []int{400, 600},
		Loading:       "lazy",
		FetchPriority: "low",
		AspectRatio:   "4/3",
		SizesAttr:     "(max-width: 480px) 100vw, 150px",
	},
}

// ProfileFor falls back to gallery for unknown types.
func ProfileFor(kind string) (string, Profile) {
	if p, ok := Profiles[kind]; ok {
		return kind, p
	}
	return "gallery", Profiles["gallery"]
}

// categoryProfiles maps the image directories to how they are shown.
var categoryProfiles = map[string]string{
	"product":           "gallery",
	"testimonials":      "testimonial",
	"worn-by-favorites": "influencer",
	"order-bump":        "order-bump",
}

func profileForCategory(category string) string {
	if k, ok := categoryProfiles[category]; ok {
		return k
	}
	return "gallery"
}

func aspectViewBox(ratio string) string {
	w, h, ok := strings.Cut(ratio, "/")
	if !ok {
		return "0 0 1 1"
	}
	return "0 0 " + strings.TrimSpace(w) + " " + strings.TrimSpace(h)
}
