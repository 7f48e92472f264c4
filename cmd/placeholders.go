package cmd

import (
	"path/filepath"

	"github.com/brogergvhs/landingkit/internal/config"
	"github.com/brogergvhs/landingkit/internal/placeholder"

	"github.com/spf13/cobra"
)

var (
	flagCatalog  string
	flagFontPath string
	flagOutDir   string
)

func init() {
	placeholdersCmd := &cobra.Command{
		Use:   "placeholders",
		Short: "Generate the placeholder product photos for the order-bump bundle",
		RunE:  runPlaceholders,
	}

	placeholdersCmd.Flags().StringVar(&flagCatalog, "catalog", "", "YAML catalog of placeholder images (default: built-in bundle set)")
	placeholdersCmd.Flags().StringVar(&flagFontPath, "font", "", "TrueType font for labels (default: built-in bitmap face)")
	placeholdersCmd.Flags().StringVar(&flagOutDir, "out", "", "output directory (default from config)")

	rootCmd.AddCommand(placeholdersCmd)
}

func runPlaceholders(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(config.Options{FontPath: flagFontPath})
	if err != nil {
		return err
	}

	catalog := placeholder.BuiltinCatalog()
	if flagCatalog != "" {
		catalog, err = placeholder.LoadCatalog(flagCatalog)
		if err != nil {
			return err
		}
	}

	dir := e.cfg.Resolve(e.cfg.PlaceholderDir)
	if flagOutDir != "" {
		dir = flagOutDir
	}

	e.status.Printf("🎨 Generating %d placeholder images...", len(catalog))

	g := &placeholder.Generator{
		Fonts:  placeholder.NewFonts(e.cfg.FontPath),
		Status: e.status,
		Log:    e.log,
	}
	written, genErr := g.Generate(dir, catalog)

	if len(written) > 0 {
		e.status.Printf("\n📁 All images saved to: %s/", dir)
		for _, p := range written {
			e.status.Printf("   - %s", filepath.Base(p))
		}
	}

	if genErr != nil {
		e.log.Warnf("%v", genErr)
		return e.finish(len(catalog) - len(written))
	}
	return nil
}
