package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lite-lake/mijnhost-dns/internal/infrastructure/logger"
)

var Version = "dev"

const usageText = `Usage:
	--list
	--records example.com
	--challenge example.com 12345
	--cname example.com example.com.acme.certservice.nl.
	--checkall
`

func NewRootCommand(ctx *Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mijnhost",
		Short: "mijn.host DNS and ACME challenge record tool",
		Long: "Mijnhost manages DNS records of domains hosted at mijn.host and makes sure\n" +
			"every domain has an _acme-challenge record for certificate validation.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.ShowVersion {
				fmt.Fprintln(ctx.Out, Version)
				return nil
			}
			return cmd.Help()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.LogMetrics(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.ConfigDir, "config", "c", ".", "Directory containing mijnhost.yaml")
	rootCmd.Flags().BoolVarP(&ctx.ShowVersion, "version", "v", false, "Show version information")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newRecordsCommand(ctx))
	rootCmd.AddCommand(newChallengeCommand(ctx))
	rootCmd.AddCommand(newCNAMECommand(ctx))
	rootCmd.AddCommand(newCheckAllCommand(ctx))
	rootCmd.AddCommand(newReplaceCommand(ctx))

	return rootCmd
}

// Run executes one invocation and returns the process exit code. No
// arguments prints the usage and fails; an unknown command is reported but
// exits 0.
func Run(ctx context.Context, c *Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(c.Out, usageText)
		return 1
	}

	root := NewRootCommand(c)
	root.SetArgs(NormalizeArgs(args))
	root.SetIn(c.In)
	root.SetOut(c.Out)
	root.SetErr(c.ErrOut)

	if err := root.ExecuteContext(ctx); err != nil {
		return renderError(c.ErrOut, err)
	}
	return 0
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, NewContext(), os.Args[1:])
	stop()
	os.Exit(code)
}
