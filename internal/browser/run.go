package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/brogergvhs/landingkit/internal/ui"
)

// Target is the page under test. File, when set, is the local HTML used
// if URL cannot be loaded.
type Target struct {
	URL  string
	File string
}

// FileURL turns a local path into an absolute file:// URL.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

type Runner struct {
	Opener Opener
	Status *ui.Status
	Log    *ui.Logger
	// Pause is the wait after a click before the result is read.
	Pause time.Duration
}

type runState struct {
	target   Target
	url      string
	fallback bool
	loaded   bool
	pages    map[Viewport]Page
}

// Run executes suites in order, one numbered section each. Pages are
// opened once per viewport and shared by the suites that use it.
func (r *Runner) Run(ctx context.Context, t Target, suites []Suite) (*Report, error) {
	st := &runState{target: t, url: t.URL, pages: map[Viewport]Page{}}
	if st.url == "" && t.File != "" {
		u, err := FileURL(t.File)
		if err != nil {
			return nil, err
		}
		st.url = u
	}

	rep := newReport(st.url)
	defer func() {
		for _, p := range st.pages {
			_ = p.Close()
		}
	}()

	r.Status.Printf("🔍 Verifying page...")
	r.Status.Printf("📍 URL: %s", st.url)

	for i, suite := range suites {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		r.Status.Heading("%d. %s...", i+1, suite.Name)
		section := SectionReport{Name: suite.Name, Viewport: suite.Viewport.String()}

		page, err := r.page(ctx, st, suite.Viewport)
		if err != nil {
			rep.URL, rep.Fallback = st.url, st.fallback
			rep.FinishedAt = time.Now().UTC()
			return rep, err
		}

		for _, c := range suite.Checks {
			for _, o := range r.check(ctx, page, c) {
				r.print(o)
				rep.add(&section, o)
			}
		}
		rep.Sections = append(rep.Sections, section)
	}

	rep.URL, rep.Fallback = st.url, st.fallback
	rep.FinishedAt = time.Now().UTC()

	r.Status.Heading("Verification complete: %d passed, %d failed, %d warnings", rep.Passed, rep.Failed, rep.Warnings)
	return rep, nil
}

func (r *Runner) page(ctx context.Context, st *runState, vp Viewport) (Page, error) {
	if p, ok := st.pages[vp]; ok {
		return p, nil
	}

	p, err := r.Opener.Open(ctx, st.url, vp)
	if err != nil && !st.loaded && !st.fallback && st.target.File != "" && ctx.Err() == nil {
		r.Status.Fail("Failed to load %s: %v", st.url, err)

		fb, ferr := FileURL(st.target.File)
		if ferr != nil {
			return nil, ferr
		}
		if fb != st.url {
			st.url, st.fallback = fb, true
			r.Status.Printf("   Falling back to %s", fb)
			p, err = r.Opener.Open(ctx, st.url, vp)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open %s (%s): %w", st.url, vp, err)
	}

	if r.Log != nil {
		r.Log.Debugf("opened %s at %s", st.url, vp)
	}
	if !st.loaded {
		st.loaded = true
		r.Status.Pass("Page loaded successfully")
	}
	st.pages[vp] = p
	return p, nil
}

func (r *Runner) print(o Outcome) {
	switch o.Status {
	case Passed:
		r.Status.Pass("%s", o.Message)
	case Warned:
		r.Status.Warn("%s", o.Message)
	default:
		r.Status.Fail("%s", o.Message)
	}
}

func missing(c Check, msg string) Outcome {
	st := Failed
	if c.Optional {
		st = Warned
	}
	return Outcome{Check: c.Name, Status: st, Message: msg}
}

func failed(c Check, err error) Outcome {
	return Outcome{Check: c.Name, Status: Failed, Message: fmt.Sprintf("%s: %v", c.DisplayName(), err)}
}

func atLeast(c Check, n int) Outcome {
	name := c.DisplayName()
	if n >= max(c.Min, 1) {
		return Outcome{Check: c.Name, Status: Passed, Message: fmt.Sprintf("Found %d %s", n, name)}
	}
	if n == 0 {
		return missing(c, fmt.Sprintf("No %s found", name))
	}
	return Outcome{Check: c.Name, Status: Failed, Message: fmt.Sprintf("Found %d %s, expected at least %d", n, name, c.Min)}
}

func (r *Runner) check(ctx context.Context, p Page, c Check) []Outcome {
	name := c.DisplayName()

	switch c.Kind {
	case KindExists:
		n, err := p.Count(ctx, c.Selector)
		if err != nil {
			return []Outcome{failed(c, err)}
		}
		if n == 0 {
			return []Outcome{missing(c, name+" not found")}
		}
		return []Outcome{{Check: c.Name, Status: Passed, Message: name + " found"}}

	case KindCount:
		n, err := p.Count(ctx, c.Selector)
		if err != nil {
			return []Outcome{failed(c, err)}
		}
		return []Outcome{atLeast(c, n)}

	case KindAttrCount:
		vals, err := p.AttrValues(ctx, c.Selector, c.Attr)
		if err != nil {
			return []Outcome{failed(c, err)}
		}
		n := 0
		for _, v := range vals {
			if strings.Contains(v, c.Contains) {
				n++
			}
		}
		return []Outcome{atLeast(c, n)}

	case KindClickToggles:
		toggles, err := p.Toggles(ctx, ToggleSpec{
			Item:    c.Selector,
			Label:   c.Attr,
			Trigger: c.Trigger,
			Target:  c.Target,
			Script:  c.Script,
			Pause:   r.pause(),
		})
		if err != nil {
			return []Outcome{failed(c, err)}
		}
		if len(toggles) == 0 {
			return []Outcome{missing(c, fmt.Sprintf("No clickable %s found", name))}
		}

		out := make([]Outcome, 0, len(toggles))
		for _, tg := range toggles {
			o := Outcome{Check: c.Name, Status: Passed, Toggles: []Toggle{tg}}
			if !tg.Open {
				o.Status = Failed
			}
			o.Message = fmt.Sprintf("%s '%s' clickable and opens: %t", name, tg.Label, tg.Open)
			out = append(out, o)
		}
		return out

	case KindClickExpect:
		err := p.Click(ctx, c.Selector)
		if errors.Is(err, ErrNoElement) {
			return []Outcome{missing(c, name+" toggle not found")}
		}
		if err != nil {
			return []Outcome{failed(c, err)}
		}
		if err := sleep(ctx, r.pause()); err != nil {
			return []Outcome{failed(c, err)}
		}

		n, err := p.Count(ctx, c.Expect)
		if err != nil {
			return []Outcome{failed(c, err)}
		}
		if n == 0 {
			return []Outcome{{Check: c.Name, Status: Failed, Message: fmt.Sprintf("%s did not open (%s not found)", name, c.Expect)}}
		}
		return []Outcome{{Check: c.Name, Status: Passed, Message: name + " opens correctly"}}
	}

	return []Outcome{failed(c, fmt.Errorf("unknown kind %q", c.Kind))}
}

func (r *Runner) pause() time.Duration {
	if r.Pause < 0 {
		return 0
	}
	if r.Pause == 0 {
		return togglePause
	}
	return r.Pause
}
