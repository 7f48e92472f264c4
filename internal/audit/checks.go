package audit

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/brogergvhs/landingkit/internal/ui"

	"gopkg.in/yaml.v3"
)

// Check passes when Selector matches at least Min elements, every string
// in Contains appears in the raw HTML and, if AnyOf is set, at least one
// of AnyOf does. Unset parts are ignored.
type Check struct {
	Name     string   `yaml:"name" json:"name"`
	Selector string   `yaml:"selector,omitempty" json:"selector,omitempty"`
	Min      int      `yaml:"min,omitempty" json:"min,omitempty"`
	Contains []string `yaml:"contains,omitempty" json:"contains,omitempty"`
	AnyOf    []string `yaml:"any_of,omitempty" json:"any_of,omitempty"`
	Required bool     `yaml:"required" json:"required"`
}

func (c Check) Validate() error {
	if c.Name == "" {
		return errors.New("check without name")
	}
	if c.Selector == "" && len(c.Contains) == 0 && len(c.AnyOf) == 0 {
		return fmt.Errorf("check %s: needs selector, contains or any_of", c.Name)
	}
	return nil
}

type Result struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Required bool   `json:"required"`
	Detail   string `json:"detail,omitempty"`
}

type CheckSummary struct {
	Results        []Result `json:"results"`
	Passed         int      `json:"passed"`
	Total          int      `json:"total"`
	Critical       int      `json:"critical"`
	CriticalPassed int      `json:"critical_passed"`
}

func (s CheckSummary) OK() bool {
	return s.CriticalPassed == s.Critical
}

func Evaluate(src *Source, c Check) Result {
	r := Result{Name: c.Name, Required: c.Required, Passed: true}

	if c.Selector != "" {
		n := src.Doc.Find(c.Selector).Length()
		if n < max(c.Min, 1) {
			r.Passed = false
			r.Detail = fmt.Sprintf("%s matched %d element(s)", c.Selector, n)
			return r
		}
	}

	for _, s := range c.Contains {
		if !strings.Contains(src.HTML, s) {
			r.Passed = false
			r.Detail = fmt.Sprintf("missing %q", s)
			return r
		}
	}

	if len(c.AnyOf) > 0 {
		found := false
		for _, s := range c.AnyOf {
			if strings.Contains(src.HTML, s) {
				found = true
				break
			}
		}
		if !found {
			r.Passed = false
			r.Detail = fmt.Sprintf("none of %q", c.AnyOf)
		}
	}
	return r
}

func RunChecks(src *Source, checks []Check, status *ui.Status) CheckSummary {
	var sum CheckSummary
	for _, c := range checks {
		r := Evaluate(src, c)
		sum.Results = append(sum.Results, r)
		sum.Total++
		if c.Required {
			sum.Critical++
		}
		if r.Passed {
			sum.Passed++
			if c.Required {
				sum.CriticalPassed++
			}
		}

		if status == nil {
			continue
		}
		kind := "(Optional)"
		if c.Required {
			kind = "(Required)"
		}
		switch {
		case r.Passed:
			status.Pass("%s %s", c.Name, kind)
		case c.Required:
			status.Fail("%s %s: %s", c.Name, kind, r.Detail)
		default:
			status.Warn("%s %s: %s", c.Name, kind, r.Detail)
		}
	}
	return sum
}

func percent(part, total int) int {
	if total == 0 {
		return 100
	}
	return part * 100 / total
}

func PrintCheckSummary(s *ui.Status, sum CheckSummary) {
	s.Heading("Summary:")
	s.Printf("Overall: %d/%d checks passed (%d%%)", sum.Passed, sum.Total, percent(sum.Passed, sum.Total))
	s.Printf("Critical: %d/%d critical checks passed (%d%%)", sum.CriticalPassed, sum.Critical, percent(sum.CriticalPassed, sum.Critical))
}

// DefaultChecks covers the fixes the built-in patch set applies and the
// order-bump bundle markup.
func DefaultChecks() []Check {
	return []Check{
		{Name: "Size selector", Selector: "#size-selector", Required: true},
		{Name: "Size buttons", Selector: "#size-selector .size-btn", Min: 3, Required: true},
		{Name: "Product details accordion", Selector: ".product-accordion-section .accordion-item", Min: 1, Required: true},
		{Name: "Accordion script", Contains: []string{"function toggleAccordion"}, Required: true},
		{Name: "Mobile menu toggle", Selector: "button.mobile-menu-toggle", Required: true},
		{Name: "Mobile menu styles", Contains: []string{"/* Mobile Menu Styles */"}, Required: true},
		{Name: "Celebrity images", Selector: `img[src*="worn-by-favorites"], source[srcset*="worn-by-favorites"]`, Required: true},
		{Name: "Add to cart button", Selector: `button[onclick*="addToCart"]`, Required: true},
		{Name: "Buy now button", Selector: `button[onclick*="buyNow"]`, Required: true},
		{Name: "Price", Selector: ".price, [data-price]", Required: true},
		{
			Name:     "Order bump product images",
			Contains: []string{"adhesive-bra-cups.jpg", "seamless-thong.jpg", "pilates-socks.jpg"},
			Required: true,
		},
		{Name: "90% OFF badge", AnyOf: []string{"SAVE 90%", "90% OFF"}},
		{Name: "Responsive picture elements", Selector: "picture source[type='image/webp']"},
		{Name: "Viewport meta", Selector: `meta[name="viewport"]`},
	}
}

type checkFile struct {
	Checks []Check `yaml:"checks"`
}

func LoadChecks(path string) ([]Check, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f checkFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Checks) == 0 {
		return nil, fmt.Errorf("%s: no checks defined", path)
	}
	for _, c := range f.Checks {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Checks, nil
}
