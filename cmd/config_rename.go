package cmd

import (
	"fmt"
	"strings"

	"github.com/brogergvhs/landingkit/internal/config"

	"github.com/spf13/cobra"
)

var configRenameCmd = &cobra.Command{
	Use:   "rename <old_label> <new_label>",
	Short: "Rename a config profile; the active marker follows it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
		if from == to {
			return fmt.Errorf("config is already called %q", to)
		}

		if err := config.RenameConfig(from, to); err != nil {
			return err
		}

		if active, _ := config.CurrentLabel(); active == to {
			fmt.Printf("Renamed active config %q → %q\n", from, to)
		} else {
			fmt.Printf("Renamed config %q → %q\n", from, to)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configRenameCmd)
}
