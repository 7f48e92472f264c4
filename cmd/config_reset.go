package cmd

import (
	"fmt"

	"github.com/brogergvhs/landingkit/internal/config"

	"github.com/spf13/cobra"
)

var configResetCmd = &cobra.Command{
	Use:   "reset [label]",
	Short: "Overwrite the active (or given) config profile with the defaults",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			path string
			err  error
		)
		if len(args) == 1 {
			path, err = config.ConfigPathByLabel(args[0])
		} else {
			path, err = config.ActiveConfigPath()
		}
		if err != nil {
			return err
		}

		def := config.DefaultConfig()
		if err := config.SaveYAML(def, path); err != nil {
			return fmt.Errorf("reset %s: %w", path, err)
		}

		fmt.Printf("Reset config: %s\n\n", path)
		def.Print()
		return nil
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
}
