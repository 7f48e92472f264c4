package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/brogergvhs/landingkit/internal/imgtool"
	"github.com/brogergvhs/landingkit/internal/manifest"
	"github.com/brogergvhs/landingkit/internal/ui"
	"github.com/brogergvhs/landingkit/internal/util"
	"github.com/brogergvhs/landingkit/internal/variants"

	"github.com/spf13/cobra"
)

// flags shared by convert and reprocess
var (
	flagWidths       []int
	flagWebPQuality  int
	flagJPEGQuality  int
	flagCWebPBin     string
	flagResizeBin    string
	flagWorkers      int
	flagProgress     bool
	flagSkipExisting bool
)

func addImageFlags(c *cobra.Command) {
	c.Flags().IntSliceVar(&flagWidths, "widths", nil, "variant widths in pixels (e.g. 400,600,800,1200)")
	c.Flags().IntVar(&flagWebPQuality, "webp-quality", 0, "WebP quality 1-100")
	c.Flags().IntVar(&flagJPEGQuality, "jpeg-quality", 0, "JPEG quality 1-100")
	c.Flags().StringVar(&flagCWebPBin, "cwebp", "", `cwebp binary, or "builtin" for the in-process encoder`)
	c.Flags().StringVar(&flagResizeBin, "resize-bin", "", `JPEG resize binary (sips), or "builtin"`)
	c.Flags().IntVar(&flagWorkers, "workers", 0, "images processed in parallel")
	c.Flags().BoolVar(&flagProgress, "progress", false, "show progress bars instead of per-variant lines")
	c.Flags().BoolVar(&flagSkipExisting, "skip-existing", false, "keep variants that are already on disk")
}

// newProcessor picks the encoders and wires the console output. The
// returned progress manager must be closed once the run is over.
func newProcessor(ctx context.Context, e *env) (*variants.Processor, *ui.ProgressManager) {
	cfg := e.cfg
	// paths handed to the tools already include the project dir
	runner := imgtool.ExecRunner{}

	webp, err := imgtool.SelectWebP(ctx, cfg.CWebPBin, cfg.WebPQuality, runner)
	if err != nil {
		e.status.Warn("%v, using %s", err, webp.Name())
		e.status.Printf("      install WebP tools for faster output (brew install webp)")
	} else {
		e.status.OK("%s is available", webp.Name())
	}

	jpeg, err := imgtool.SelectJPEG(ctx, cfg.ResizeBin, cfg.JPEGQuality, runner)
	if err != nil {
		e.status.Warn("%v, using %s", err, jpeg.Name())
	} else {
		e.status.OK("%s is available", jpeg.Name())
	}

	status := e.status
	if flagProgress {
		status = ui.NewStatus(io.Discard)
	}

	pm := ui.NewStdoutProgress(flagProgress)

	p := &variants.Processor{
		WebP: webp,
		JPEG: jpeg,
		Opts: variants.Options{
			Widths:       cfg.Widths,
			LQIPSize:     cfg.LQIPSize,
			LQIPQuality:  cfg.LQIPQuality,
			LQIPBlur:     cfg.LQIPBlur,
			Workers:      cfg.Workers,
			SkipExisting: flagSkipExisting,
			Root:         cfg.ProjectDir,
		},
		Log:      e.log,
		Status:   status,
		Progress: pm,
		Stats:    &ui.Stats{},
	}
	return p, pm
}

// loadManifest returns the manifest at path, or a fresh one when the file
// does not exist yet.
func loadManifest(e *env, path string) (*manifest.Manifest, error) {
	m, err := manifest.Load(path)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, manifest.ErrNotFound) {
		return nil, err
	}
	e.log.Debugf("no manifest at %s, starting a new one", path)
	return manifest.New(e.cfg.Widths, e.cfg.WebPQuality), nil
}

func printRunSummary(s *ui.Status, title string, sum variants.Summary, dirs []string, start time.Time) {
	s.Heading("=== %s ===", title)
	s.Printf("Total directories processed: %d", sum.Directories)
	s.Printf("Total images processed: %d", sum.Images)
	s.Printf("Variants written: %d (%s)", sum.Variants, util.Human(sum.Bytes))
	if sum.Failed > 0 {
		s.Printf("Failed variants: %d (%s)", sum.Failed, util.Percent(sum.Failed, sum.Variants+sum.Failed))
	}
	s.Printf("Time: %s", time.Since(start).Round(time.Millisecond))

	if len(dirs) > 0 {
		s.Printf("\nWebP and responsive images created in:")
		for _, d := range dirs {
			s.Printf("  - %s/", strings.TrimSuffix(d, string(os.PathSeparator)))
		}
	}
}
