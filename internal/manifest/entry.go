package manifest

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Entry is the record of one source image. A variant key is present only
// when its file was produced.
type Entry struct {
	Original   string            `json:"original"`
	WebP       map[string]string `json:"webp"`
	JPEG       map[string]string `json:"jpeg"`
	LQIP       string            `json:"-"`
	Dimensions *Dimensions       `json:"dimensions"`
}

func NewEntry(original string) Entry {
	return Entry{
		Original: original,
		WebP:     map[string]string{},
		JPEG:     map[string]string{},
	}
}

type entryJSON struct {
	Original   string            `json:"original"`
	WebP       map[string]string `json:"webp"`
	JPEG       map[string]string `json:"jpeg"`
	LQIP       *string           `json:"lqip"`
	Dimensions *Dimensions       `json:"dimensions"`
}

// MarshalJSON writes lqip as null when no placeholder exists.
func (e Entry) MarshalJSON() ([]byte, error) {
	out := entryJSON{
		Original:   e.Original,
		WebP:       e.WebP,
		JPEG:       e.JPEG,
		Dimensions: e.Dimensions,
	}
	if out.WebP == nil {
		out.WebP = map[string]string{}
	}
	if out.JPEG == nil {
		out.JPEG = map[string]string{}
	}
	if e.LQIP != "" {
		lqip := e.LQIP
		out.LQIP = &lqip
	}
	return json.Marshal(out)
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	var in entryJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}

	*e = Entry{
		Original:   in.Original,
		WebP:       in.WebP,
		JPEG:       in.JPEG,
		Dimensions: in.Dimensions,
	}
	if e.WebP == nil {
		e.WebP = map[string]string{}
	}
	if e.JPEG == nil {
		e.JPEG = map[string]string{}
	}
	if in.LQIP != nil {
		e.LQIP = *in.LQIP
	}
	if e.Dimensions != nil && !e.Dimensions.Known() {
		e.Dimensions = nil
	}
	return nil
}

// Widths returns the numeric width keys of m in ascending order.
func Widths(m map[string]string) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		if w, err := strconv.Atoi(k); err == nil {
			out = append(out, w)
		}
	}
	sort.Ints(out)
	return out
}

// Dimensions is serialized as a [width, height] pair.
type Dimensions struct {
	Width  int
	Height int
}

func (d Dimensions) Known() bool {
	return d.Width > 0 && d.Height > 0
}

func (d Dimensions) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{d.Width, d.Height})
}

// UnmarshalJSON also accepts [null, null], which older manifests wrote for
// unreadable images.
func (d *Dimensions) UnmarshalJSON(b []byte) error {
	var pair [2]*int
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	*d = Dimensions{}
	if pair[0] != nil && pair[1] != nil {
		d.Width, d.Height = *pair[0], *pair[1]
	}
	return nil
}
