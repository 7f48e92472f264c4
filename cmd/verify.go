package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/brogergvhs/landingkit/internal/browser"
	"github.com/brogergvhs/landingkit/internal/config"
	"github.com/brogergvhs/landingkit/internal/util"

	"github.com/spf13/cobra"
)

var (
	flagVerifyURL  string
	flagSuites     string
	flagReport     string
	flagHeadful    bool
	flagOverflow   bool
	flagNoFallback bool
	flagBrowserBin string
	flagSkipSuites bool
)

func init() {
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Open the page in a headless browser and check the interactive fixes",
		RunE:  runVerify,
	}

	verifyCmd.Flags().StringVar(&flagVerifyURL, "url", "", "page URL (default: base_url from config)")
	verifyCmd.Flags().StringVar(&flagSuites, "suites", "", "YAML file with check suites (default: built-in suites)")
	verifyCmd.Flags().StringVar(&flagReport, "report", "", "write a JSON report to this path")
	verifyCmd.Flags().BoolVar(&flagHeadful, "headful", false, "show the browser window")
	verifyCmd.Flags().BoolVar(&flagOverflow, "overflow", false, "also list elements wider than a phone viewport")
	verifyCmd.Flags().BoolVar(&flagSkipSuites, "overflow-only", false, "only run the overflow finder")
	verifyCmd.Flags().BoolVar(&flagNoFallback, "no-fallback", false, "do not fall back to the local HTML file when the URL fails")
	verifyCmd.Flags().StringVar(&flagBrowserBin, "browser", "", "Chromium binary (default: found or downloaded by rod)")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(config.Options{BaseURL: flagVerifyURL, Headful: flagHeadful})
	if err != nil {
		return err
	}
	cfg := e.cfg

	suites := browser.DefaultSuites()
	if flagSuites != "" {
		suites, err = browser.LoadSuites(flagSuites)
		if err != nil {
			return err
		}
	}

	bcfg := browser.DefaultConfig()
	bcfg.Headless = cfg.Headless
	bcfg.ViewportWidth = cfg.ViewportWidth
	bcfg.ViewportHeight = cfg.ViewportHeight
	bcfg.Bin = cfg.BrowserBin
	if flagBrowserBin != "" {
		bcfg.Bin = flagBrowserBin
	}

	ctx, cancel := util.SetupInterruptHandler(context.Background())
	defer cancel()

	session := browser.NewSession(bcfg, e.log)
	defer func() {
		if err := session.Close(); err != nil {
			e.log.Debugf("close browser: %v", err)
		}
	}()

	target := browser.Target{URL: cfg.BaseURL}
	if !flagNoFallback {
		if _, err := os.Stat(cfg.HTMLPath()); err == nil {
			target.File = cfg.HTMLPath()
		}
	}

	failures := 0

	if !flagSkipSuites {
		runner := &browser.Runner{Opener: session, Status: e.status, Log: e.log}
		rep, err := runner.Run(ctx, target, suites)
		if err != nil {
			return err
		}
		failures += rep.Failed

		if flagReport != "" {
			if err := rep.Save(flagReport); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			e.status.OK("Report written: %s", flagReport)
		}
	}

	if flagOverflow || flagSkipSuites {
		vp := browser.OverflowViewport
		e.status.Heading("Checking for horizontal overflow at %dpx...", vp.Width)

		items, err := browser.FindOverflow(ctx, session, cfg.BaseURL, vp)
		if err != nil && target.File != "" {
			e.status.Fail("Failed to load %s: %v", cfg.BaseURL, err)
			var fileURL string
			if fileURL, err = browser.FileURL(target.File); err == nil {
				items, err = browser.FindOverflow(ctx, session, fileURL, vp)
			}
		}
		if err != nil {
			return err
		}
		browser.PrintOverflow(e.status, items, vp.Width)
		failures += len(items)
	}

	return e.finish(failures)
}
