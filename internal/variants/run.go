package variants

import (
	"context"
	"os"
	"strings"

	"github.com/brogergvhs/landingkit/internal/manifest"
	"github.com/brogergvhs/landingkit/internal/ui"

	"golang.org/x/sync/errgroup"
)

// Job is one category directory. Variants are written next to the sources.
type Job struct {
	Category string
	Dir      string
}

type Summary struct {
	Directories int
	Images      int
	Variants    int
	Failed      int
	Bytes       int64
}

func (p *Processor) Summary() Summary {
	st := p.stats()
	return Summary{
		Directories: int(st.Directories.Load()),
		Images:      int(st.Images.Load()),
		Variants:    int(st.Variants.Load()),
		Failed:      int(st.Failed.Load()),
		Bytes:       st.Bytes.Load(),
	}
}

type processFunc func(ctx context.Context, b *ui.Batch, src, outDir, base string) (manifest.Entry, int64)

// RunCategories converts every category in order. A missing directory is
// reported and skipped. Categories without any image are left out of the
// result.
func (p *Processor) RunCategories(ctx context.Context, jobs []Job) (map[string]map[string]manifest.Entry, error) {
	out := make(map[string]map[string]manifest.Entry, len(jobs))

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		if _, err := os.Stat(job.Dir); err != nil {
			p.status().Printf("Directory not found: %s", job.Dir)
			continue
		}

		sources, skipped, err := Discover(job.Dir, p.Opts.Widths)
		if err != nil {
			p.status().Printf("Directory not readable: %s: %v", job.Dir, err)
			continue
		}
		for _, s := range skipped {
			p.logf("skipping non-image file %s", s)
		}
		if len(sources) == 0 {
			p.status().Printf("No images found in %s", job.Dir)
			continue
		}

		p.status().Heading("=== Processing %s images ===", strings.ToUpper(job.Category))

		entries, err := p.runSources(ctx, job, sources, p.processImage)
		if len(entries) > 0 {
			out[job.Category] = entries
			p.stats().Directories.Add(1)
		}
		if err != nil {
			return out, err
		}
	}

	return out, nil
}

// RunExisting reprocesses the .webp files of one directory.
func (p *Processor) RunExisting(ctx context.Context, job Job) (map[string]manifest.Entry, error) {
	if _, err := os.Stat(job.Dir); err != nil {
		p.status().Printf("Directory not found: %s", job.Dir)
		return nil, nil
	}

	sources, err := DiscoverWebP(job.Dir, p.Opts.Widths)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		p.status().Printf("No WebP files found in %s", job.Category)
		return nil, nil
	}

	p.status().Printf("Found %d WebP files to process", len(sources))

	entries, err := p.runSources(ctx, job, sources, p.processExisting)
	if len(entries) > 0 {
		p.stats().Directories.Add(1)
	}
	return entries, err
}

// runSources fans the sources out to Opts.Workers goroutines. Results are
// keyed by file name, so completion order does not matter.
func (p *Processor) runSources(ctx context.Context, job Job, sources []Source, fn processFunc) (map[string]manifest.Entry, error) {
	workers := p.Opts.Workers
	if workers < 1 {
		workers = 1
	}

	var bar *ui.ProgressHandle
	if p.Progress != nil {
		bar = p.Progress.Register(job.Category, len(sources))
		defer bar.MarkDone()
	}

	results := make([]manifest.Entry, len(sources))
	done := make([]bool, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			b := p.status().Batch()
			e, size := fn(gctx, b, src.Path, job.Dir, src.Base)
			b.Flush()

			results[i], done[i] = e, true
			if bar != nil {
				bar.Advance(size)
			}
			return nil
		})
	}

	err := g.Wait()

	entries := make(map[string]manifest.Entry, len(sources))
	for i, src := range sources {
		if done[i] {
			entries[src.Name] = results[i]
		}
	}

	return entries, err
}

func (p *Processor) logf(format string, args ...any) {
	if p.Log != nil {
		p.Log.Debugf(format, args...)
	}
}
