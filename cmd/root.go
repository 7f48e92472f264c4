package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/brogergvhs/landingkit/internal/config"
	"github.com/brogergvhs/landingkit/internal/ui"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
	flagConfigFile   string
	flagProject      string
	flagStrict       bool
)

var rootCmd = &cobra.Command{
	Use:           "landingkit",
	Short:         "Maintenance tooling for a static landing page",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "load this config file instead of the active profile (.yaml, .json, .toml)")
	rootCmd.PersistentFlags().StringVar(&flagProject, "project", "", "landing page project directory")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "exit non-zero when any check or image fails")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// errStrict is returned by commands that finished with failures under --strict.
var errStrict = errors.New("finished with failures (--strict)")

// env is what every task command starts from.
type env struct {
	cfg    *config.Config
	log    *ui.Logger
	status *ui.Status
}

// loadEnv fills the shared flags into opts, merges the config and prints
// where it came from when debugging.
func loadEnv(opts config.Options) (*env, error) {
	opts.IgnoreConfig = flagIgnoreConfig
	opts.ConfigFile = flagConfigFile
	opts.Debug = flagDebug
	opts.Strict = flagStrict
	opts.ProjectDir = flagProject

	cfg, used, err := config.LoadMerged(opts)
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg:    cfg,
		log:    ui.NewLogger(cfg.Debug),
		status: ui.NewStatus(os.Stdout),
	}
	e.log.Debugf("config: %s", used)
	return e, nil
}

// finish maps a failure count to the command result.
func (e *env) finish(failures int) error {
	if failures > 0 && e.cfg.Strict {
		return errStrict
	}
	return nil
}
