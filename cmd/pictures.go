package cmd

import (
	"fmt"

	"github.com/brogergvhs/landingkit/internal/config"
	"github.com/brogergvhs/landingkit/internal/manifest"
	"github.com/brogergvhs/landingkit/internal/pictures"

	"github.com/spf13/cobra"
)

var flagNoLazyScript bool

func init() {
	picturesCmd := &cobra.Command{
		Use:   "pictures",
		Short: "Rewrite <img> tags into responsive <picture> elements from the manifest",
		RunE:  runPictures,
	}

	picturesCmd.Flags().StringVar(&flagHTMLFile, "html", "", "HTML file, relative to the project directory")
	picturesCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "report what would change without writing the file")
	picturesCmd.Flags().StringVar(&flagReport, "report", "", "write the image performance report (JSON) to this path")
	picturesCmd.Flags().BoolVar(&flagNoLazyScript, "no-lazy-script", false, "do not insert the lazy-loading script tag")

	rootCmd.AddCommand(picturesCmd)
}

func runPictures(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(config.Options{HTMLFile: flagHTMLFile})
	if err != nil {
		return err
	}
	cfg := e.cfg

	m, err := manifest.Load(cfg.ManifestPath())
	if err != nil {
		return fmt.Errorf("%w (run `landingkit convert` first)", err)
	}

	opts := pictures.FileOptions{DryRun: flagDryRun}
	if !flagNoLazyScript {
		opts.Script = pictures.LazyScript
	}

	path := cfg.HTMLPath()
	results, patched, err := pictures.RewriteFile(path, m, pictures.DefaultTargets(m), opts)
	if err != nil {
		return err
	}

	failures := printPatchResults(e.status, patched)

	replaced := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failures++
			e.status.Fail("%s/%s: %v", r.Category, r.Name, r.Err)
		case r.Count == 0:
			e.log.Debugf("%s/%s: no <img> tag references it", r.Category, r.Name)
		default:
			replaced += r.Count
			e.status.Pass("%s/%s → <picture> (%d)", r.Category, r.Name, r.Count)
		}
	}

	if flagDryRun {
		e.status.Printf("\nDry-run: %d <img> tags would be replaced in %s", replaced, path)
	} else {
		e.status.Printf("\n%d <img> tags replaced in %s", replaced, path)
	}

	if flagReport != "" {
		if err := pictures.Report(m).Save(flagReport); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		e.status.OK("Performance report: %s", flagReport)
	}

	return e.finish(failures)
}
