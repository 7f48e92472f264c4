package cmd

import (
	"github.com/brogergvhs/landingkit/internal/config"
	"github.com/brogergvhs/landingkit/internal/htmlpatch"
	"github.com/brogergvhs/landingkit/internal/ui"

	"github.com/spf13/cobra"
)

var (
	flagPatchFile string
	flagHTMLFile  string
	flagDryRun    bool
	flagBackup    bool
)

func init() {
	patchCmd := &cobra.Command{
		Use:   "patch",
		Short: "Apply the HTML fixes (size selector, accordion, mobile menu, image paths) to the landing page",
		RunE:  runPatch,
	}

	patchCmd.Flags().StringVar(&flagPatchFile, "patches", "", "YAML patch set to apply instead of the built-in fixes")
	patchCmd.Flags().StringVar(&flagHTMLFile, "html", "", "HTML file, relative to the project directory")
	patchCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "report what would change without writing the file")
	patchCmd.Flags().BoolVar(&flagBackup, "backup", false, "keep the original as <file>.bak")

	rootCmd.AddCommand(patchCmd)
}

func runPatch(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(config.Options{HTMLFile: flagHTMLFile})
	if err != nil {
		return err
	}

	patches := htmlpatch.BuiltinFixes()
	if flagPatchFile != "" {
		patches, err = htmlpatch.LoadPatchSet(flagPatchFile)
		if err != nil {
			return err
		}
	}

	path := e.cfg.HTMLPath()
	e.log.Debugf("patching %s with %d patches", path, len(patches))

	results, changed, err := htmlpatch.PatchFile(path, patches, htmlpatch.FileOptions{
		DryRun: flagDryRun,
		Backup: flagBackup,
	})
	if err != nil {
		return err
	}

	failures := printPatchResults(e.status, results)

	switch {
	case flagDryRun && changed:
		e.status.Printf("\nDry-run: %s would be modified.", path)
	case changed:
		e.status.Printf("\n✅ All fixes applied to %s", path)
	default:
		e.status.Printf("\nNo changes to %s", path)
	}

	return e.finish(failures)
}

// printPatchResults prints one line per patch and returns how many failed.
func printPatchResults(s *ui.Status, results []htmlpatch.Result) int {
	failures := 0
	for _, r := range results {
		switch r.Status {
		case htmlpatch.StatusApplied:
			if r.Count > 1 {
				s.Pass("%s applied (%d changes)", r.Name, r.Count)
			} else {
				s.Pass("%s applied", r.Name)
			}
		case htmlpatch.StatusSkipped:
			s.Warn("%s skipped: %s", r.Name, r.Reason)
		default:
			failures++
			s.Fail("%s: %v", r.Name, r.Err)
		}
	}
	return failures
}
