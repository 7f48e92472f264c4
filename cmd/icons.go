package cmd

import (
	"github.com/brogergvhs/landingkit/internal/config"
	"github.com/brogergvhs/landingkit/internal/icons"
	"github.com/brogergvhs/landingkit/internal/placeholder"

	"github.com/spf13/cobra"
)

var (
	flagIconFont string
	flagIconDir  string
)

func init() {
	iconsCmd := &cobra.Command{
		Use:   "icons",
		Short: "Generate the PWA icon set and favicon",
		RunE:  runIcons,
	}

	iconsCmd.Flags().StringVar(&flagIconFont, "font", "", "TrueType font for the brand text")
	iconsCmd.Flags().StringVar(&flagIconDir, "out", "", "output directory (default from config)")

	rootCmd.AddCommand(iconsCmd)
}

func runIcons(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(config.Options{FontPath: flagIconFont})
	if err != nil {
		return err
	}

	dir := e.cfg.Resolve(e.cfg.IconsDir)
	if flagIconDir != "" {
		dir = flagIconDir
	}

	fonts := placeholder.NewFonts(e.cfg.FontPath)
	written, genErr := icons.Generate(dir, fonts, e.status)

	e.status.Printf("\n%d icons written to %s", len(written), dir)
	if fonts.Fallback() {
		e.log.Debugf("icons rendered with the built-in bitmap face")
	}

	if genErr != nil {
		e.log.Warnf("%v", genErr)
		return e.finish(len(icons.Sizes) + 1 - len(written))
	}
	return nil
}
