package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/brogergvhs/landingkit/internal/config"

	"github.com/spf13/cobra"
)

var configAddCmd = &cobra.Command{
	Use:   "add [label] [file]",
	Short: "Create a new config profile, optionally imported from a YAML/JSON/TOML file",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string
		if len(args) > 0 {
			label = args[0]
		} else {
			reader := bufio.NewReader(os.Stdin)
			fmt.Print("Enter label for new config: ")
			label, _ = reader.ReadString('\n')
		}

		label = strings.TrimSpace(label)
		if label == "" {
			return fmt.Errorf("label cannot be empty")
		}

		if len(args) == 2 {
			if err := config.AddConfig(label, args[1]); err != nil {
				return err
			}
			path, _ := config.ConfigPathByLabel(label)
			fmt.Printf("Imported %s as config %q: %s\n", args[1], label, path)
			return nil
		}

		path, err := config.CreateEmptyConfig(label)
		if err != nil {
			return err
		}

		fmt.Printf("Created new config: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configAddCmd)
}
