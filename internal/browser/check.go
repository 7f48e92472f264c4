package browser

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var ErrNoElement = errors.New("element not found")

type Kind string

const (
	KindExists       Kind = "exists"
	KindCount        Kind = "count"
	KindClickToggles Kind = "click-toggles"
	KindAttrCount    Kind = "attr-count"
	KindClickExpect  Kind = "click-expect"
)

// Check is one assertion against a loaded page.
//
//	exists        Selector matches at least one element
//	count         Selector matches at least Min elements
//	attr-count    elements of Selector whose Attr contains Contains, at least Min
//	click-toggles every Selector item labelled by Attr opens when Trigger is clicked
//	click-expect  clicking Selector makes Expect match
type Check struct {
	Name     string `yaml:"name" json:"name"`
	Kind     Kind   `yaml:"kind" json:"kind"`
	Selector string `yaml:"selector" json:"selector"`
	Attr     string `yaml:"attr,omitempty" json:"attr,omitempty"`
	Contains string `yaml:"contains,omitempty" json:"contains,omitempty"`
	Trigger  string `yaml:"trigger,omitempty" json:"trigger,omitempty"`
	Target   string `yaml:"target,omitempty" json:"target,omitempty"`
	Script   string `yaml:"script,omitempty" json:"script,omitempty"`
	Expect   string `yaml:"expect,omitempty" json:"expect,omitempty"`
	Min      int    `yaml:"min,omitempty" json:"min,omitempty"`
	// Optional turns a missing element into a warning.
	Optional bool `yaml:"optional,omitempty" json:"optional,omitempty"`
}

// DisplayName turns "add_to_cart" into "Add To Cart".
func (c Check) DisplayName() string {
	return cases.Title(language.English).String(strings.ReplaceAll(c.Name, "_", " "))
}

func (c Check) Validate() error {
	if c.Name == "" {
		return errors.New("check without name")
	}
	if c.Selector == "" {
		return fmt.Errorf("check %s: missing selector", c.Name)
	}

	switch c.Kind {
	case KindExists, KindCount:
	case KindAttrCount:
		if c.Attr == "" || c.Contains == "" {
			return fmt.Errorf("check %s: attr-count needs attr and contains", c.Name)
		}
	case KindClickToggles:
		if c.Attr == "" || c.Trigger == "" || c.Target == "" || c.Script == "" {
			return fmt.Errorf("check %s: click-toggles needs attr, trigger, target and script", c.Name)
		}
	case KindClickExpect:
		if c.Expect == "" {
			return fmt.Errorf("check %s: click-expect needs expect", c.Name)
		}
	default:
		return fmt.Errorf("check %s: unknown kind %q", c.Name, c.Kind)
	}
	return nil
}

// Suite is one numbered section of the verification run.
type Suite struct {
	Name     string   `yaml:"name" json:"name"`
	Viewport Viewport `yaml:"viewport" json:"viewport"`
	Checks   []Check  `yaml:"checks" json:"checks"`
}

var (
	Desktop = Viewport{Width: 1920, Height: 1080}
	Mobile  = Viewport{Width: 375, Height: 812, Mobile: true}
	// OverflowViewport is the phone size the overflow finder uses.
	OverflowViewport = Viewport{Width: 375, Height: 667, Mobile: true}
)

const togglePause = 300 * time.Millisecond

const accordionOpenJS = `() => this.style.maxHeight !== "0" && this.style.maxHeight !== ""`

// DefaultSuites checks the fixes the built-in HTML patches apply.
func DefaultSuites() []Suite {
	return []Suite{
		{
			Name:     "Checking Accordion",
			Viewport: Desktop,
			Checks: []Check{
				{Name: "product accordion section", Kind: KindExists, Selector: ".product-accordion-section"},
				{Name: "accordion items", Kind: KindCount, Selector: ".product-accordion-section .accordion-item", Min: 1},
				{
					Name:     "tab",
					Kind:     KindClickToggles,
					Selector: ".product-accordion-section .accordion-item",
					Attr:     "data-tab",
					Trigger:  ".accordion-trigger",
					Target:   ".accordion-content",
					Script:   accordionOpenJS,
				},
			},
		},
		{
			Name:     "Checking Celebrity Images",
			Viewport: Desktop,
			Checks: []Check{
				{
					Name:     "celebrity images from worn-by-favorites directory",
					Kind:     KindAttrCount,
					Selector: ".celebrity-card img, .worn-by-favorites img",
					Attr:     "src",
					Contains: "worn-by-favorites",
					Min:      1,
				},
			},
		},
		{
			Name:     "Checking Mobile",
			Viewport: Mobile,
			Checks: []Check{
				{Name: "mobile menu", Kind: KindClickExpect, Selector: ".mobile-menu-toggle", Expect: "nav.active", Optional: true},
				{Name: "sizes", Kind: KindCount, Selector: "#size-selector .size-btn", Min: 1},
			},
		},
		{
			Name:     "Checking Fashion Elements",
			Viewport: Desktop,
			Checks: []Check{
				{Name: "size_selector", Kind: KindExists, Selector: "#size-selector"},
				{Name: "add_to_cart", Kind: KindExists, Selector: `button[onclick*="addToCart"]`},
				{Name: "buy_now", Kind: KindExists, Selector: `button[onclick*="buyNow"]`},
				{Name: "price", Kind: KindExists, Selector: ".price, [data-price]"},
			},
		},
	}
}

type suiteFile struct {
	Suites []Suite `yaml:"suites"`
}

// LoadSuites reads suites from YAML. A suite without a viewport runs on
// the desktop viewport.
func LoadSuites(path string) ([]Suite, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f suiteFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Suites) == 0 {
		return nil, fmt.Errorf("%s: no suites defined", path)
	}

	for i := range f.Suites {
		s := &f.Suites[i]
		if s.Viewport.Width == 0 || s.Viewport.Height == 0 {
			s.Viewport.Width, s.Viewport.Height = Desktop.Width, Desktop.Height
		}
		for _, c := range s.Checks {
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("suite %q: %w", s.Name, err)
			}
		}
	}
	return f.Suites, nil
}
