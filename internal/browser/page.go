package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Page is what the checks need from a loaded document.
type Page interface {
	Count(ctx context.Context, selector string) (int, error)
	AttrValues(ctx context.Context, selector, attr string) ([]string, error)
	Click(ctx context.Context, selector string) error
	Toggles(ctx context.Context, t ToggleSpec) ([]Toggle, error)
	Overflow(ctx context.Context) ([]Overflow, error)
	Close() error
}

// ToggleSpec describes a click-to-expand widget: for every Item carrying
// a Label attribute, click Trigger inside it, then evaluate Script with
// this bound to Target.
type ToggleSpec struct {
	Item    string
	Label   string
	Trigger string
	Target  string
	Script  string
	Pause   time.Duration
}

type Toggle struct {
	Label string `json:"label"`
	Open  bool   `json:"open"`
}

type rodPage struct {
	page    *rod.Page
	timeout time.Duration
}

func (p *rodPage) with(ctx context.Context) *rod.Page {
	return p.page.Context(ctx).Timeout(p.timeout)
}

func (p *rodPage) Count(ctx context.Context, selector string) (int, error) {
	els, err := p.with(ctx).Elements(selector)
	if err != nil {
		return 0, err
	}
	return len(els), nil
}

func (p *rodPage) AttrValues(ctx context.Context, selector, attr string) ([]string, error) {
	els, err := p.with(ctx).Elements(selector)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(els))
	for _, el := range els {
		v, err := el.Attribute(attr)
		if err != nil {
			return nil, err
		}
		if v != nil {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (p *rodPage) Click(ctx context.Context, selector string) error {
	has, el, err := p.with(ctx).Has(selector)
	if err != nil {
		return err
	}
	if !has {
		return fmt.Errorf("%s: %w", selector, ErrNoElement)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (p *rodPage) Toggles(ctx context.Context, t ToggleSpec) ([]Toggle, error) {
	items, err := p.with(ctx).Elements(t.Item)
	if err != nil {
		return nil, err
	}

	var out []Toggle
	for _, item := range items {
		label, err := item.Attribute(t.Label)
		if err != nil {
			return out, err
		}
		if label == nil || *label == "" {
			continue
		}

		has, trigger, err := item.Has(t.Trigger)
		if err != nil || !has {
			continue
		}
		if err := trigger.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return out, fmt.Errorf("click %s: %w", *label, err)
		}
		if err := sleep(ctx, t.Pause); err != nil {
			return out, err
		}

		has, target, err := item.Has(t.Target)
		if err != nil || !has {
			continue
		}
		res, err := target.Eval(t.Script)
		if err != nil {
			return out, fmt.Errorf("evaluate %s: %w", *label, err)
		}

		out = append(out, Toggle{Label: *label, Open: res.Value.Bool()})
	}
	return out, nil
}

func (p *rodPage) Overflow(ctx context.Context) ([]Overflow, error) {
	res, err := p.with(ctx).Eval(overflowJS)
	if err != nil {
		return nil, err
	}

	var out []Overflow
	if err := res.Value.Unmarshal(&out); err != nil {
		return nil, fmt.Errorf("decode overflow result: %w", err)
	}
	for i := range out {
		out[i].Class = strings.TrimSpace(out[i].Class)
	}
	return out, nil
}

func (p *rodPage) Close() error {
	return p.page.Close()
}
