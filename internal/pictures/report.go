package pictures

import (
	"fmt"
	"time"

	"github.com/brogergvhs/landingkit/internal/manifest"
	"github.com/brogergvhs/landingkit/internal/util"
)

type ImageReport struct {
	Original                   string `json:"original"`
	WebPVersions               int    `json:"webpVersions"`
	JPEGVersions               int    `json:"jpegVersions"`
	HasLQIP                    bool   `json:"hasLQIP"`
	EstimatedWebPSavings       string `json:"estimatedWebpSavings"`
	EstimatedResponsiveSavings string `json:"estimatedResponsiveSavings"`
}

type Savings struct {
	WebP       float64 `json:"webp"`
	Responsive float64 `json:"responsive"`
}

type PerformanceReport struct {
	Generated    string                            `json:"generated"`
	Images       map[string]map[string]ImageReport `json:"images"`
	TotalSavings Savings                           `json:"totalSavings"`
}

// Rough rules of thumb: WebP saves about a quarter of the pixel budget and
// serving a fitting width about 60%.
const (
	webpSavingRatio       = 0.25
	responsiveSavingRatio = 0.6
)

// Report summarizes the variant coverage of every manifest record.
func Report(m *manifest.Manifest) PerformanceReport {
	r := PerformanceReport{
		Generated: time.Now().UTC().Format(time.RFC3339),
		Images:    map[string]map[string]ImageReport{},
	}

	for cat, entries := range m.Categories {
		r.Images[cat] = map[string]ImageReport{}

		for name, e := range entries {
			pixels := 0.0
			original := "unknownxunknown"
			if e.Dimensions != nil {
				pixels = float64(e.Dimensions.Width * e.Dimensions.Height)
				original = fmt.Sprintf("%dx%d", e.Dimensions.Width, e.Dimensions.Height)
			}

			webp := pixels * webpSavingRatio
			responsive := pixels * responsiveSavingRatio

			r.Images[cat][name] = ImageReport{
				Original:                   original,
				WebPVersions:               len(e.WebP),
				JPEGVersions:               len(e.JPEG),
				HasLQIP:                    e.LQIP != "",
				EstimatedWebPSavings:       fmt.Sprintf("%.0fKB", webp/1000),
				EstimatedResponsiveSavings: fmt.Sprintf("%.0fKB", responsive/1000),
			}

			r.TotalSavings.WebP += webp
			r.TotalSavings.Responsive += responsive
		}
	}

	return r
}

func (r PerformanceReport) Save(path string) error {
	return util.WriteJSON(path, r)
}
