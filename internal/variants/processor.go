// Package variants turns source images into the responsive WebP/JPEG set,
// an LQIP and a manifest record per image.
package variants

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brogergvhs/landingkit/internal/imgtool"
	"github.com/brogergvhs/landingkit/internal/manifest"
	"github.com/brogergvhs/landingkit/internal/ui"
	"github.com/brogergvhs/landingkit/internal/util"
)

type Options struct {
	Widths      []int
	LQIPSize    int
	LQIPQuality int
	LQIPBlur    float64
	Workers     int
	// SkipExisting records a variant whose file is already on disk without
	// running the tool again.
	SkipExisting bool
	// Root makes the recorded "original" paths relative to it.
	Root string
}

type Processor struct {
	WebP     imgtool.WebPEncoder
	JPEG     imgtool.JPEGResizer
	Opts     Options
	Log      *ui.Logger
	Status   *ui.Status
	Progress *ui.ProgressManager
	Stats    *ui.Stats
}

func (p *Processor) stats() *ui.Stats {
	if p.Stats == nil {
		p.Stats = &ui.Stats{}
	}
	return p.Stats
}

func (p *Processor) status() *ui.Status {
	if p.Status == nil {
		p.Status = ui.NewStatus(nil)
	}
	return p.Status
}

func (p *Processor) originalPath(src string) string {
	if p.Opts.Root != "" {
		if rel, err := filepath.Rel(p.Opts.Root, src); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(src)
}

// variant runs produce unless the output may be reused, then checks that the
// file exists. A tool error is only a warning; the file decides.
func (p *Processor) variant(b *ui.Batch, label, out string, produce func() error) (int64, bool) {
	st := p.stats()
	name := filepath.Base(out)

	if p.Opts.SkipExisting && util.Exists(out) {
		b.OK("%s: %s (kept)", label, name)
		st.Variants.Add(1)
		return util.FileSize(out), true
	}

	if err := produce(); err != nil {
		b.Warn("Warning: %v", err)
	}

	if !util.Exists(out) {
		st.Failed.Add(1)
		return 0, false
	}

	size := util.FileSize(out)
	b.OK("%s: %s", label, name)
	st.Variants.Add(1)
	st.Bytes.Add(size)
	return size, true
}

func (p *Processor) dimensions(b *ui.Batch, src string) *manifest.Dimensions {
	w, h, err := imgtool.Dimensions(src)
	if err != nil {
		b.Warn("Error getting image size for %s: %v", filepath.Base(src), err)
		return nil
	}
	return &manifest.Dimensions{Width: w, Height: h}
}

func (p *Processor) lqip(b *ui.Batch, e *manifest.Entry, src, outDir, base string) int64 {
	out := filepath.Join(outDir, base+"-lqip.jpg")
	size, ok := p.variant(b, "LQIP", out, func() error {
		return imgtool.LQIP(src, out, p.Opts.LQIPSize, p.Opts.LQIPQuality, p.Opts.LQIPBlur)
	})
	if ok {
		e.LQIP = filepath.Base(out)
	}
	return size
}

func (p *Processor) jpegs(ctx context.Context, b *ui.Batch, e *manifest.Entry, src, outDir, base string) int64 {
	var total int64
	for _, w := range p.Opts.Widths {
		out := filepath.Join(outDir, fmt.Sprintf("%s-%d.jpg", base, w))
		size, ok := p.variant(b, fmt.Sprintf("JPEG %dpx", w), out, func() error {
			return p.JPEG.ResizeJPEG(ctx, src, out, w)
		})
		if ok {
			e.JPEG[manifest.WidthKey(w)] = filepath.Base(out)
			total += size
		}
	}
	return total
}

func (p *Processor) webps(ctx context.Context, b *ui.Batch, e *manifest.Entry, src, outDir, base string) int64 {
	var total int64
	for _, w := range p.Opts.Widths {
		out := filepath.Join(outDir, fmt.Sprintf("%s-%d.webp", base, w))
		size, ok := p.variant(b, fmt.Sprintf("WebP %dpx", w), out, func() error {
			return p.WebP.Encode(ctx, src, out, w)
		})
		if ok {
			e.WebP[manifest.WidthKey(w)] = filepath.Base(out)
			total += size
		}
	}
	return total
}

// ProcessImage produces every variant of one jpg/png source: a WebP per
// width, a full-size WebP, a JPEG per width and the LQIP.
func (p *Processor) ProcessImage(ctx context.Context, src, outDir, base string) manifest.Entry {
	b := p.status().Batch()
	defer b.Flush()

	e, _ := p.processImage(ctx, b, src, outDir, base)
	return e
}

func (p *Processor) processImage(ctx context.Context, b *ui.Batch, src, outDir, base string) (manifest.Entry, int64) {
	e := manifest.NewEntry(p.originalPath(src))
	e.Dimensions = p.dimensions(b, src)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		b.Warn("Warning: %v", err)
		return e, 0
	}

	b.Printf("\nProcessing: %s", filepath.Base(src))

	total := p.webps(ctx, b, &e, src, outDir, base)

	orig := filepath.Join(outDir, base+".webp")
	if size, ok := p.variant(b, "WebP original", orig, func() error {
		return p.WebP.Encode(ctx, src, orig, 0)
	}); ok {
		e.WebP[manifest.OriginalKey] = filepath.Base(orig)
		total += size
	}

	total += p.jpegs(ctx, b, &e, src, outDir, base)
	total += p.lqip(b, &e, src, outDir, base)

	p.stats().Images.Add(1)
	return e, total
}

// ProcessExisting is ProcessImage for a source that is already a WebP. The
// full-size WebP is a plain copy, made and recorded only when no file of
// that name exists yet.
func (p *Processor) ProcessExisting(ctx context.Context, src, outDir, base string) manifest.Entry {
	b := p.status().Batch()
	defer b.Flush()

	e, _ := p.processExisting(ctx, b, src, outDir, base)
	return e
}

func (p *Processor) processExisting(ctx context.Context, b *ui.Batch, src, outDir, base string) (manifest.Entry, int64) {
	e := manifest.NewEntry(p.originalPath(src))
	e.Dimensions = p.dimensions(b, src)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		b.Warn("Warning: %v", err)
		return e, 0
	}

	b.Printf("\nProcessing existing WebP: %s", filepath.Base(src))

	total := p.webps(ctx, b, &e, src, outDir, base)

	orig := filepath.Join(outDir, base+".webp")
	if !util.Exists(orig) {
		if n, err := util.CopyFile(src, orig); err != nil {
			b.Warn("Warning: copy %s: %v", filepath.Base(src), err)
			p.stats().Failed.Add(1)
		} else {
			e.WebP[manifest.OriginalKey] = filepath.Base(orig)
			b.OK("WebP original: %s", filepath.Base(orig))
			p.stats().Variants.Add(1)
			p.stats().Bytes.Add(n)
			total += n
		}
	}

	total += p.jpegs(ctx, b, &e, src, outDir, base)
	total += p.lqip(b, &e, src, outDir, base)

	p.stats().Images.Add(1)
	return e, total
}
