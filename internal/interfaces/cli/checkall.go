package cli

import (
	"github.com/spf13/cobra"

	"github.com/lite-lake/mijnhost-dns/internal/application/usecase"
	"github.com/lite-lake/mijnhost-dns/internal/infrastructure/lock"
	"github.com/lite-lake/mijnhost-dns/internal/infrastructure/logger"
)

type checkAllOptions struct {
	concurrency int
	dryRun      bool
	lockFile    string
}

func newCheckAllCommand(ctx *Context) *cobra.Command {
	var opts checkAllOptions

	cmd := &cobra.Command{
		Use:   "checkall",
		Short: "Ensure every domain has an _acme-challenge record",
		Long: "Scan all domains and add an _acme-challenge CNAME to <domain>.acme.certservice.nl.\n" +
			"where none exists. Domains that already have one are reported and left alone,\n" +
			"so the command is safe to run on a schedule.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckAll(cmd, ctx, opts)
		},
	}

	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Domains processed in parallel (default from config, else 1)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report missing records without creating them")
	cmd.Flags().StringVar(&opts.lockFile, "lock-file", "", "Lock file that prevents overlapping runs")

	return cmd
}

func runCheckAll(cmd *cobra.Command, ctx *Context, opts checkAllOptions) error {
	if opts.lockFile != "" {
		runLock := lock.NewRunLock(opts.lockFile)
		if err := runLock.Acquire(); err != nil {
			return err
		}
		defer func() {
			if err := runLock.Release(); err != nil {
				logger.Warn("failed to release run lock", "path", runLock.Path(), "error", err)
			}
		}()
	}

	api, cfg, err := ctx.Connect()
	if err != nil {
		return err
	}

	concurrency := opts.concurrency
	if concurrency == 0 {
		concurrency = cfg.Concurrency
	}

	reconciler := usecase.NewChallengeReconciler(api, &usecase.ReconcilerConfig{
		ChallengeTarget: cfg.ChallengeTarget,
		Concurrency:     concurrency,
		DryRun:          opts.dryRun,
		OnResult: func(res usecase.DomainResult) {
			renderResult(ctx.Out, res)
		},
	})

	report, err := reconciler.CheckAll(cmd.Context())
	if report != nil {
		renderSummary(ctx.Out, report)
	}
	if err != nil {
		return err
	}
	if report.HasFailures() {
		return &exitError{code: 1}
	}
	return nil
}
