package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/brogergvhs/landingkit/internal/audit"
	"github.com/brogergvhs/landingkit/internal/config"
	"github.com/brogergvhs/landingkit/internal/util"

	"github.com/spf13/cobra"
)

var (
	flagAuditImages  bool
	flagChecksFile   string
	flagBypassCDN    bool
	flagAuditWorkers int

	// headers/auth
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
)

func init() {
	auditCmd := &cobra.Command{
		Use:   "audit [file-or-url]",
		Short: "Check the page markup and image references without a browser",
		Long: "Runs the static checks against the HTML file from the config, or against\n" +
			"the given file or deployed URL, and optionally verifies every image reference.",
		Args: cobra.MaximumNArgs(1),
		RunE: runAudit,
	}

	auditCmd.Flags().BoolVar(&flagAuditImages, "images", false, "verify that every referenced image exists")
	auditCmd.Flags().StringVar(&flagChecksFile, "checks", "", "YAML file with checks (default: built-in checks)")
	auditCmd.Flags().StringVar(&flagReport, "report", "", "write a JSON report to this path")
	auditCmd.Flags().BoolVar(&flagBypassCDN, "bypass", false, "use a Cloudflare-friendly transport for deployed pages")
	auditCmd.Flags().IntVar(&flagAuditWorkers, "workers", 8, "parallel image checks")

	// headers/auth
	auditCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	auditCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	auditCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")

	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(config.Options{
		Cookie:     flagCookie,
		CookieFile: flagCookieFile,
		UserAgent:  flagUserAgent,
	})
	if err != nil {
		return err
	}
	cfg := e.cfg

	src := cfg.HTMLPath()
	if len(args) == 1 {
		src = args[0]
	}

	checks := audit.DefaultChecks()
	if flagChecksFile != "" {
		checks, err = audit.LoadChecks(flagChecksFile)
		if err != nil {
			return err
		}
	}

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     30 * time.Second,
		UserAgent:   util.PickUserAgent(cfg.UserAgent),
		Cookie:      cfg.Cookie,
		CookieFile:  cfg.CookieFile,
		BypassCDN:   flagBypassCDN,
		DebugLogger: e.log,
	})
	if err != nil {
		return err
	}

	ctx, cancel := util.SetupInterruptHandler(context.Background())
	defer cancel()

	e.status.Printf("🔍 Auditing %s", src)
	page, err := audit.Load(ctx, client, src)
	if err != nil {
		return err
	}

	rep := audit.NewReport(src)

	e.status.Heading("Checks:")
	rep.Checks = audit.RunChecks(page, checks, e.status)

	if flagAuditImages {
		refs := audit.CollectImages(page)
		e.status.Heading("Images (%d references):", len(refs))

		v := &audit.Verifier{Client: client, Workers: flagAuditWorkers, Status: e.status}
		sum, err := v.VerifyImages(ctx, refs)
		if err != nil {
			return err
		}
		rep.Images = &sum
		audit.PrintSummary(e.status, sum)
	}

	audit.PrintCheckSummary(e.status, rep.Checks)

	if flagReport != "" {
		if err := rep.Save(flagReport); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		e.status.OK("Report written: %s", flagReport)
	}

	if rep.OK() {
		e.status.Printf("\n🎉 All critical checks passed")
		return nil
	}

	failures := rep.Checks.Critical - rep.Checks.CriticalPassed
	if rep.Images != nil {
		failures += rep.Images.Failed
	}
	return e.finish(failures)
}
