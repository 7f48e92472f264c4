package cmd

import (
	"context"
	"time"

	"github.com/brogergvhs/landingkit/internal/config"
	"github.com/brogergvhs/landingkit/internal/manifest"
	"github.com/brogergvhs/landingkit/internal/util"
	"github.com/brogergvhs/landingkit/internal/variants"

	"github.com/spf13/cobra"
)

var flagCategories []string

func init() {
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert every category directory into responsive WebP/JPEG variants, LQIPs and a manifest",
		RunE:  runConvert,
	}

	convertCmd.Flags().StringSliceVar(&flagCategories, "categories", nil, "image categories to convert (directories under the images dir)")
	addImageFlags(convertCmd)

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(config.Options{
		Categories:  flagCategories,
		Widths:      flagWidths,
		WebPQuality: flagWebPQuality,
		JPEGQuality: flagJPEGQuality,
		CWebPBin:    flagCWebPBin,
		ResizeBin:   flagResizeBin,
		Workers:     flagWorkers,
	})
	if err != nil {
		return err
	}
	cfg := e.cfg

	ctx, cancel := util.SetupInterruptHandler(context.Background(), cfg.ImagesPath())
	defer cancel()

	e.status.Printf("=== Image Conversion ===")
	e.status.Printf("Converting images to WebP and creating responsive sizes...\n")

	p, pm := newProcessor(ctx, e)
	start := time.Now()

	jobs := make([]variants.Job, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		jobs = append(jobs, variants.Job{Category: c, Dir: cfg.CategoryDir(c)})
	}

	results, runErr := p.RunCategories(ctx, jobs)
	pm.Close()

	sum := p.Summary()
	if len(results) == 0 {
		e.status.Printf("\nNo images were processed.")
		if runErr != nil {
			return runErr
		}
		return e.finish(sum.Failed)
	}

	// convert owns the whole document; categories not seen this run are dropped
	m := manifest.New(cfg.Widths, cfg.WebPQuality)
	for _, job := range jobs {
		if entries, ok := results[job.Category]; ok {
			m.ReplaceCategory(job.Category, entries)
		}
	}

	path := cfg.ManifestPath()
	if err := m.Save(path); err != nil {
		return err
	}
	e.status.OK("Generated manifest: %s", path)

	var dirs []string
	for _, job := range jobs {
		if _, ok := results[job.Category]; ok {
			dirs = append(dirs, job.Dir)
		}
	}
	printRunSummary(e.status, "Conversion Complete", sum, dirs, start)

	if runErr != nil {
		return runErr
	}
	if sum.Failed == 0 {
		e.status.OK("All images converted successfully!")
	}
	return e.finish(sum.Failed)
}
