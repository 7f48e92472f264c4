package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/brogergvhs/landingkit/internal/ui"
)

// MaxOverflow caps the elements FindOverflow reports.
const MaxOverflow = 10

// Overflow is an element whose layout box is wider than the viewport.
type Overflow struct {
	Tag   string `json:"tag"`
	Class string `json:"class"`
	ID    string `json:"id"`
	Width int    `json:"width"`
	Left  int    `json:"left"`
	Right int    `json:"right"`
}

// Label renders the element as <tag> #id .first-class.
func (o Overflow) Label() string {
	parts := []string{"<" + o.Tag + ">"}
	if o.ID != "" {
		parts = append(parts, "#"+o.ID)
	}
	if o.Class != "" {
		parts = append(parts, "."+strings.Fields(o.Class)[0])
	}
	return strings.Join(parts, " ")
}

const overflowJS = `() => {
	const vw = window.innerWidth;
	const out = [];
	document.querySelectorAll('*').forEach(el => {
		const r = el.getBoundingClientRect();
		if (r.width > vw) {
			out.push({
				tag: el.tagName,
				class: typeof el.className === 'string' ? el.className : '',
				id: el.id || '',
				width: Math.round(r.width),
				left: Math.round(r.left),
				right: Math.round(r.right)
			});
		}
	});
	return out.sort((a, b) => b.width - a.width).slice(0, 10);
}`

// FindOverflow loads url at the given mobile viewport and returns the
// widest elements that overflow it, widest first.
func FindOverflow(ctx context.Context, o Opener, url string, vp Viewport) ([]Overflow, error) {
	page, err := o.Open(ctx, url, vp)
	if err != nil {
		return nil, err
	}
	defer func() { _ = page.Close() }()

	items, err := page.Overflow(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) > MaxOverflow {
		items = items[:MaxOverflow]
	}
	return items, nil
}

func PrintOverflow(s *ui.Status, items []Overflow, viewportWidth int) {
	if len(items) == 0 {
		s.Pass("No elements wider than the %dpx viewport", viewportWidth)
		return
	}

	s.Heading("Elements wider than %dpx viewport:", viewportWidth)
	for i, el := range items {
		s.Printf("%d. %s", i+1, el.Label())
		s.Printf("   Width: %dpx (overflow: %dpx)", el.Width, el.Width-viewportWidth)
		s.Printf("   Position: left=%dpx, right=%dpx", el.Left, el.Right)
	}
}

func (o Overflow) String() string {
	return fmt.Sprintf("%s %dpx", o.Label(), o.Width)
}
