package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brogergvhs/landingkit/internal/ui"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePage answers from a selector -> count table.
type fakePage struct {
	counts   map[string]int
	attrs    map[string][]string
	toggles  []Toggle
	clicked  []string
	overflow []Overflow
	closed   bool
	// after maps a clicked selector to selectors that appear afterwards
	after map[string]string
}

func (f *fakePage) Count(_ context.Context, sel string) (int, error) {
	return f.counts[sel], nil
}

func (f *fakePage) AttrValues(_ context.Context, sel, _ string) ([]string, error) {
	return f.attrs[sel], nil
}

func (f *fakePage) Click(_ context.Context, sel string) error {
	if f.counts[sel] == 0 {
		return ErrNoElement
	}
	f.clicked = append(f.clicked, sel)
	if appear, ok := f.after[sel]; ok {
		f.counts[appear] = 1
	}
	return nil
}

func (f *fakePage) Toggles(context.Context, ToggleSpec) ([]Toggle, error) {
	return f.toggles, nil
}

func (f *fakePage) Overflow(context.Context) ([]Overflow, error) {
	return f.overflow, nil
}

func (f *fakePage) Close() error {
	f.closed = true
	return nil
}

type fakeOpener struct {
	pages  map[Viewport]*fakePage
	fail   map[string]error
	opened []string
}

func (o *fakeOpener) Open(_ context.Context, url string, vp Viewport) (Page, error) {
	o.opened = append(o.opened, url+" "+vp.String())
	if err := o.fail[url]; err != nil {
		return nil, err
	}
	return o.pages[vp], nil
}

func patchedPage() *fakePage {
	return &fakePage{
		counts: map[string]int{
			".product-accordion-section":                 1,
			".product-accordion-section .accordion-item": 3,
			"#size-selector":                             1,
			`button[onclick*="addToCart"]`:               1,
			`button[onclick*="buyNow"]`:                  1,
		},
		attrs: map[string][]string{
			".celebrity-card img, .worn-by-favorites img": {
				"images/worn-by-favorites/a.webp",
				"images/other/b.jpg",
				"images/worn-by-favorites/c.webp",
			},
		},
		toggles: []Toggle{{Label: "details", Open: true}, {Label: "care", Open: true}},
	}
}

func mobilePage() *fakePage {
	return &fakePage{
		counts: map[string]int{
			".mobile-menu-toggle":      1,
			"#size-selector .size-btn": 5,
		},
		after: map[string]string{".mobile-menu-toggle": "nav.active"},
	}
}

func newRunner(out *bytes.Buffer, o Opener) *Runner {
	return &Runner{Opener: o, Status: ui.NewStatus(out), Pause: -1}
}

func TestRunDefaultSuites(t *testing.T) {
	desktop, mobile := patchedPage(), mobilePage()
	opener := &fakeOpener{pages: map[Viewport]*fakePage{Desktop: desktop, Mobile: mobile}}
	var out bytes.Buffer

	rep, err := newRunner(&out, opener).Run(context.Background(), Target{URL: "http://localhost:8080"}, DefaultSuites())
	require.NoError(t, err)

	// one page per viewport
	assert.Len(t, opener.opened, 2)
	assert.True(t, desktop.closed)
	assert.True(t, mobile.closed)

	// price is the only missing element
	assert.Equal(t, 1, rep.Failed)
	assert.False(t, rep.OK())
	assert.Len(t, rep.Sections, 4)
	assert.NotEmpty(t, rep.RunID)

	text := out.String()
	assert.Contains(t, text, "1. Checking Accordion...")
	assert.Contains(t, text, "Found 3 Accordion Items")
	assert.Contains(t, text, "Tab 'details' clickable and opens: true")
	assert.Contains(t, text, "Found 2 Celebrity Images")
	assert.Contains(t, text, "Mobile Menu opens correctly")
	assert.Contains(t, text, "Found 5 Sizes")
	assert.Contains(t, text, "Add To Cart found")
	assert.Contains(t, text, "Price not found")
	assert.Equal(t, []string{".mobile-menu-toggle"}, mobile.clicked)
}

func TestRunFallsBackToFile(t *testing.T) {
	dir := t.TempDir()
	html := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(html, []byte("<html></html>"), 0644))

	fileURL, err := FileURL(html)
	require.NoError(t, err)

	opener := &fakeOpener{
		pages: map[Viewport]*fakePage{Desktop: patchedPage()},
		fail:  map[string]error{"http://localhost:8080": errors.New("net::ERR_CONNECTION_REFUSED")},
	}
	var out bytes.Buffer

	suites := []Suite{{Name: "Smoke", Viewport: Desktop, Checks: []Check{
		{Name: "size_selector", Kind: KindExists, Selector: "#size-selector"},
	}}}

	rep, err := newRunner(&out, opener).Run(context.Background(), Target{URL: "http://localhost:8080", File: html}, suites)
	require.NoError(t, err)

	assert.True(t, rep.Fallback)
	assert.Equal(t, fileURL, rep.URL)
	assert.True(t, rep.OK())
	assert.Contains(t, out.String(), "Failed to load http://localhost:8080")
	assert.True(t, strings.HasPrefix(fileURL, "file:///"))
}

func TestRunWithoutFallbackReturnsError(t *testing.T) {
	opener := &fakeOpener{fail: map[string]error{"http://x": errors.New("refused")}}
	var out bytes.Buffer

	_, err := newRunner(&out, opener).Run(context.Background(), Target{URL: "http://x"}, DefaultSuites())
	assert.Error(t, err)
}

func TestOptionalAndFailingChecks(t *testing.T) {
	page := &fakePage{counts: map[string]int{".mobile-menu-toggle": 1, "#size-selector .size-btn": 1}}
	r := newRunner(&bytes.Buffer{}, nil)
	ctx := context.Background()

	// toggle present but nav never becomes active
	o := r.check(ctx, page, Check{Name: "mobile menu", Kind: KindClickExpect, Selector: ".mobile-menu-toggle", Expect: "nav.active", Optional: true})
	require.Len(t, o, 1)
	assert.Equal(t, Failed, o[0].Status)

	o = r.check(ctx, &fakePage{counts: map[string]int{}}, Check{Name: "mobile menu", Kind: KindClickExpect, Selector: ".mobile-menu-toggle", Expect: "nav.active", Optional: true})
	assert.Equal(t, Warned, o[0].Status)

	o = r.check(ctx, page, Check{Name: "sizes", Kind: KindCount, Selector: "#size-selector .size-btn", Min: 3})
	assert.Equal(t, Failed, o[0].Status)
	assert.Contains(t, o[0].Message, "expected at least 3")

	o = r.check(ctx, &fakePage{toggles: []Toggle{{Label: "care", Open: false}}}, DefaultSuites()[0].Checks[2])
	assert.Equal(t, Failed, o[0].Status)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Add To Cart", Check{Name: "add_to_cart"}.DisplayName())
	assert.Equal(t, "Price", Check{Name: "price"}.DisplayName())
}

func TestDefaultSuitesValidate(t *testing.T) {
	for _, s := range DefaultSuites() {
		for _, c := range s.Checks {
			assert.NoError(t, c.Validate(), c.Name)
		}
	}
}

func TestLoadSuites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suites.yaml")
	body := `suites:
  - name: Checkout
    checks:
      - {name: buy_now, kind: exists, selector: "button.buy"}
  - name: Phone
    viewport: {width: 390, height: 844, mobile: true}
    checks:
      - {name: sizes, kind: count, selector: ".size-btn", min: 4}
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	suites, err := LoadSuites(path)
	require.NoError(t, err)
	require.Len(t, suites, 2)
	assert.Equal(t, Desktop, suites[0].Viewport)
	assert.True(t, suites[1].Viewport.Mobile)

	require.NoError(t, os.WriteFile(path, []byte("suites:\n  - name: x\n    checks:\n      - {name: a, kind: hover, selector: b}\n"), 0644))
	_, err = LoadSuites(path)
	assert.Error(t, err)
}

func TestFindOverflow(t *testing.T) {
	items := make([]Overflow, 12)
	for i := range items {
		items[i] = Overflow{Tag: "DIV", Width: 900 - i, Class: "hero wide"}
	}
	page := &fakePage{overflow: items}
	opener := &fakeOpener{pages: map[Viewport]*fakePage{OverflowViewport: page}}

	got, err := FindOverflow(context.Background(), opener, "http://site", OverflowViewport)
	require.NoError(t, err)
	assert.Len(t, got, MaxOverflow)
	assert.True(t, page.closed)
	assert.Equal(t, "<DIV> .hero", got[0].Label())

	var out bytes.Buffer
	PrintOverflow(ui.NewStatus(&out), got[:1], 375)
	assert.Contains(t, out.String(), "Width: 900px (overflow: 525px)")
}

func TestReportSave(t *testing.T) {
	rep := newReport("http://site")
	section := SectionReport{Name: "s"}
	rep.add(&section, Outcome{Check: "a", Status: Passed})
	rep.add(&section, Outcome{Check: "b", Status: Warned})
	rep.Sections = append(rep.Sections, section)

	path := filepath.Join(t.TempDir(), "verify.json")
	require.NoError(t, rep.Save(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, rep.RunID, decoded.RunID)
	assert.Equal(t, 1, decoded.Passed)
	assert.Equal(t, 1, decoded.Warnings)
	assert.True(t, decoded.OK())
}
