// Package htmlpatch applies anchored text edits to an HTML document. Edits
// are plain string work; goquery is only consulted to decide whether a block
// is already present.
package htmlpatch

import (
	"errors"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var ErrAnchorNotFound = errors.New("anchor not found")

type Kind string

const (
	// KindReplace replaces every literal occurrence of Anchor.
	KindReplace Kind = "replace"
	// KindRegex replaces every match of Anchor; Content may use $1 etc.
	KindRegex Kind = "regex"
	// KindBefore / KindAfter insert Content around every occurrence.
	KindBefore Kind = "before"
	KindAfter  Kind = "after"
	// KindBeforeLast inserts Content before the last occurrence only.
	KindBeforeLast Kind = "before-last"
	// KindAfterLastOpen inserts Content right after the opening tag that
	// starts at the last occurrence of Anchor, e.g. the last "<script>".
	KindAfterLastOpen Kind = "after-last-open"
	// KindRewritePaths replaces each match of Anchor with one of Paths,
	// chosen by hashing the match so reruns pick the same path.
	KindRewritePaths Kind = "rewrite-paths"
)

var kinds = map[Kind]bool{
	KindReplace: true, KindRegex: true, KindBefore: true, KindAfter: true,
	KindBeforeLast: true, KindAfterLastOpen: true, KindRewritePaths: true,
}

type Patch struct {
	Name    string   `yaml:"name"`
	Kind    Kind     `yaml:"kind"`
	Anchor  string   `yaml:"anchor"`
	Content string   `yaml:"content"`
	Paths   []string `yaml:"paths,omitempty"`
	// Guard skips the patch when the document already contains it.
	Guard string `yaml:"guard,omitempty"`
	// SkipIfSelector skips the patch when the selector matches an element.
	SkipIfSelector string `yaml:"skip_if,omitempty"`
}

func (p Patch) Validate() error {
	if p.Name == "" {
		return errors.New("patch without name")
	}
	if !kinds[p.Kind] {
		return fmt.Errorf("patch %q: unknown kind %q", p.Name, p.Kind)
	}
	if p.Anchor == "" {
		return fmt.Errorf("patch %q: empty anchor", p.Name)
	}
	if p.Kind == KindRegex || p.Kind == KindRewritePaths {
		if _, err := regexp.Compile(p.Anchor); err != nil {
			return fmt.Errorf("patch %q: %w", p.Name, err)
		}
	}
	if p.Kind == KindRewritePaths && len(p.Paths) == 0 {
		return fmt.Errorf("patch %q: rewrite-paths needs paths", p.Name)
	}
	return nil
}

type Status string

const (
	StatusApplied Status = "applied"
	StatusSkipped Status = "skipped"
	StatusMissing Status = "missing"
	StatusInvalid Status = "invalid"
)

type Result struct {
	Name   string
	Status Status
	// Count is the number of places the document was changed.
	Count  int
	Reason string
	Err    error
}

// Apply runs patches in order, each against the output of the previous one.
// A patch whose anchor is absent is reported and the rest still run.
func Apply(doc string, patches []Patch) (string, []Result) {
	results := make([]Result, 0, len(patches))

	for _, p := range patches {
		if err := p.Validate(); err != nil {
			results = append(results, Result{Name: p.Name, Status: StatusInvalid, Err: err})
			continue
		}

		if reason, skip := alreadyPresent(doc, p); skip {
			results = append(results, Result{Name: p.Name, Status: StatusSkipped, Reason: reason})
			continue
		}

		out, n := applyOne(doc, p)
		if n == 0 {
			results = append(results, Result{
				Name:   p.Name,
				Status: StatusMissing,
				Err:    fmt.Errorf("%w: %q", ErrAnchorNotFound, shorten(p.Anchor)),
			})
			continue
		}

		doc = out
		results = append(results, Result{Name: p.Name, Status: StatusApplied, Count: n})
	}

	return doc, results
}

func alreadyPresent(doc string, p Patch) (string, bool) {
	if p.Guard != "" && strings.Contains(doc, p.Guard) {
		return "already contains " + shorten(p.Guard), true
	}

	if p.SkipIfSelector != "" {
		d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
		if err == nil && d.Find(p.SkipIfSelector).Length() > 0 {
			return "already has " + p.SkipIfSelector, true
		}
	}

	return "", false
}

func applyOne(doc string, p Patch) (string, int) {
	switch p.Kind {
	case KindReplace:
		n := strings.Count(doc, p.Anchor)
		return strings.ReplaceAll(doc, p.Anchor, p.Content), n

	case KindBefore:
		n := strings.Count(doc, p.Anchor)
		return strings.ReplaceAll(doc, p.Anchor, p.Content+p.Anchor), n

	case KindAfter:
		n := strings.Count(doc, p.Anchor)
		return strings.ReplaceAll(doc, p.Anchor, p.Anchor+p.Content), n

	case KindBeforeLast:
		i := strings.LastIndex(doc, p.Anchor)
		if i < 0 {
			return doc, 0
		}
		return doc[:i] + p.Content + doc[i:], 1

	case KindAfterLastOpen:
		i := strings.LastIndex(doc, p.Anchor)
		if i < 0 {
			return doc, 0
		}
		end := strings.IndexByte(doc[i:], '>')
		if end < 0 {
			return doc, 0
		}
		at := i + end + 1
		return doc[:at] + p.Content + doc[at:], 1

	case KindRegex:
		re := regexp.MustCompile(p.Anchor)
		n := len(re.FindAllStringIndex(doc, -1))
		return re.ReplaceAllString(doc, p.Content), n

	case KindRewritePaths:
		re := regexp.MustCompile(p.Anchor)
		n := 0
		out := re.ReplaceAllStringFunc(doc, func(m string) string {
			n++
			return PickPath(m, p.Paths)
		})
		return out, n
	}

	return doc, 0
}

// PickPath maps match onto paths by FNV-1a hash, so the same reference is
// always rewritten to the same file.
func PickPath(match string, paths []string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(match))
	return paths[int(h.Sum32()%uint32(len(paths)))]
}

func shorten(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 60 {
		return s[:57] + "..."
	}
	return s
}
