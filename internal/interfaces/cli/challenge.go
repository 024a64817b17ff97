package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lite-lake/mijnhost-dns/internal/application/usecase"
	"github.com/lite-lake/mijnhost-dns/internal/domain/entity"
)

func newChallengeCommand(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "challenge <domain> <value>",
		Short: "Set the _acme-challenge TXT record",
		Long:  "Create or update the _acme-challenge TXT record of a domain with TTL 60.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetChallenge(cmd, ctx, args[0], entity.DNSRecordTypeTXT, args[1])
		},
	}
}

func newCNAMECommand(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "cname <domain> <value>",
		Short: "Set the _acme-challenge CNAME record",
		Long:  "Create or update the _acme-challenge CNAME record of a domain with TTL 60,\nfor example pointing at example.com.acme.certservice.nl.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetChallenge(cmd, ctx, args[0], entity.DNSRecordTypeCNAME, args[1])
		},
	}
}

func runSetChallenge(cmd *cobra.Command, ctx *Context, domainName string, recordType entity.DNSRecordType, value string) error {
	if err := entity.ValidateDomainName(domainName); err != nil {
		return err
	}

	api, cfg, err := ctx.Connect()
	if err != nil {
		return err
	}

	reconciler := usecase.NewChallengeReconciler(api, &usecase.ReconcilerConfig{
		ChallengeTarget: cfg.ChallengeTarget,
	})
	status, err := reconciler.SetChallenge(cmd.Context(), domainName, recordType, value)
	if err != nil {
		return err
	}

	if !status.OK() {
		fmt.Fprintln(ctx.Out, ErrorStyle.Render(fmt.Sprintf("Failed: %s", status)))
		return &exitError{code: 1}
	}
	fmt.Fprintln(ctx.Out, SuccessStyle.Render(fmt.Sprintf("Success: %s", status)))
	return nil
}
