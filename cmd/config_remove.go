package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/brogergvhs/landingkit/internal/config"

	"github.com/spf13/cobra"
)

var forceRemove bool

var configRemoveCmd = &cobra.Command{
	Use:   "remove <label>",
	Short: "Remove a config profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]

		active, _ := config.CurrentLabel()

		if label == active && !forceRemove {
			fmt.Printf("Config %q is currently active. Remove it and switch to Default? [y/N]: ", label)

			reader := bufio.NewReader(os.Stdin)
			resp, _ := reader.ReadString('\n')
			resp = strings.TrimSpace(strings.ToLower(resp))

			if resp != "y" && resp != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		switched, err := config.RemoveConfig(label)
		if err != nil {
			return err
		}

		fmt.Printf("Removed configuration %q\n", label)
		if switched {
			fmt.Println("Active config is now Default.")
		}
		return nil
	},
}

func init() {
	configRemoveCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "remove the active config without asking")
	configCmd.AddCommand(configRemoveCmd)
}
