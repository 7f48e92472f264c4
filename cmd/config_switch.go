package cmd

import (
	"errors"
	"fmt"

	"github.com/brogergvhs/landingkit/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Make another config profile active",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := ""
		if len(args) == 1 {
			label = args[0]
		} else {
			var err error
			if label, err = pickProfile(); err != nil {
				return err
			}
		}

		if err := config.SwitchConfig(label); err != nil {
			return err
		}

		path, _ := config.ConfigPathByLabel(label)
		fmt.Printf("Switched to %s (%s)\n", label, path)
		return nil
	},
}

// pickProfile asks for a profile, starting on the active one.
func pickProfile() (string, error) {
	list, err := config.ListConfigs()
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", errors.New("no configs available, run `landingkit config init` first")
	}

	labels := make([]string, len(list))
	cursor := 0
	for i, c := range list {
		labels[i] = c.Label
		if c.Active {
			labels[i] += "  (active)"
			cursor = i
		}
	}

	prompt := promptui.Select{
		Label:     "Select landing page profile",
		Items:     labels,
		CursorPos: cursor,
		Size:      min(len(labels), 10),
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled")
	}
	return list[idx].Label, nil
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}
