package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lite-lake/mijnhost-dns/internal/domain/entity"
	"github.com/lite-lake/mijnhost-dns/internal/infrastructure/persistence"
)

func newReplaceCommand(ctx *Context) *cobra.Command {
	var autoApprove bool

	cmd := &cobra.Command{
		Use:   "replace <domain> <records.yaml>",
		Short: "Replace the whole record set of a domain",
		Long: "Replace every DNS record of a domain with the records listed under\n" +
			"\"records:\" in a YAML file. Records not in the file are removed.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplace(cmd, ctx, args[0], args[1], autoApprove)
		},
	}

	cmd.Flags().BoolVar(&autoApprove, "auto-approve", false, "Skip confirmation prompt")
	return cmd
}

func runReplace(cmd *cobra.Command, ctx *Context, domainName, file string, autoApprove bool) error {
	if err := entity.ValidateDomainName(domainName); err != nil {
		return err
	}

	records, err := persistence.LoadRecords(file)
	if err != nil {
		return err
	}

	api, _, err := ctx.Connect()
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.Out, TitleStyle.Render(fmt.Sprintf("New record set for %s (%d records):", domainName, len(records))))
	fmt.Fprintln(ctx.Out, recordTable(records))

	if !autoApprove && !Confirm(ctx.In, ctx.Out, "Replace all records?", false) {
		fmt.Fprintln(ctx.Out, "Cancelled.")
		return nil
	}

	status, err := api.ReplaceRecords(cmd.Context(), domainName, records)
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
