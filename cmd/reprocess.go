package cmd

import (
	"context"
	"time"

	"github.com/brogergvhs/landingkit/internal/config"
	"github.com/brogergvhs/landingkit/internal/util"
	"github.com/brogergvhs/landingkit/internal/variants"

	"github.com/spf13/cobra"
)

var (
	flagReprocessCategory string
	flagReplace           bool
)

func init() {
	reprocessCmd := &cobra.Command{
		Use:   "reprocess",
		Short: "Build the variant set from existing .webp files and merge it into the manifest",
		RunE:  runReprocess,
	}

	reprocessCmd.Flags().StringVar(&flagReprocessCategory, "category", "", "category holding the .webp sources (default from config)")
	reprocessCmd.Flags().BoolVar(&flagReplace, "replace", false, "replace the category in the manifest instead of merging")
	addImageFlags(reprocessCmd)

	rootCmd.AddCommand(reprocessCmd)
}

func runReprocess(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(config.Options{
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

	category := cfg.ReprocessCategory
	if flagReprocessCategory != "" {
		category = flagReprocessCategory
	}
	job := variants.Job{Category: category, Dir: cfg.CategoryDir(category)}

	ctx, cancel := util.SetupInterruptHandler(context.Background(), job.Dir)
	defer cancel()

	e.status.Printf("=== Processing Existing WebP Files ===")

	p, pm := newProcessor(ctx, e)
	start := time.Now()

	entries, runErr := p.RunExisting(ctx, job)
	pm.Close()

	sum := p.Summary()
	if len(entries) == 0 {
		if runErr != nil {
			return runErr
		}
		return e.finish(sum.Failed)
	}

	path := cfg.ManifestPath()
	m, err := loadManifest(e, path)
	if err != nil {
		return err
	}
	if flagReplace {
		m.ReplaceCategory(category, entries)
	} else {
		m.Merge(category, entries)
	}
	if err := m.Save(path); err != nil {
		return err
	}
	e.status.OK("Updated manifest: %s", path)

	printRunSummary(e.status, "Reprocess Complete", sum, []string{job.Dir}, start)

	if runErr != nil {
		return runErr
	}
	if sum.Failed == 0 {
		e.status.OK("All existing WebP files processed successfully!")
	}
	return e.finish(sum.Failed)
}
