package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lite-lake/mijnhost-dns/internal/domain/entity"
)

func newListCommand(ctx *Context) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List domains",
		Long:  "List all domains of the account, one per line.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, ctx, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text/yaml)")
	return cmd
}

func runList(cmd *cobra.Command, ctx *Context, output string) error {
	api, _, err := ctx.Connect()
	if err != nil {
		return err
	}

	domains, err := api.ListDomains(cmd.Context())
	if err != nil {
		return err
	}

	switch output {
	case "yaml":
		data, err := yaml.Marshal(map[string][]entity.Domain{"domains": domains})
		if err != nil {
			return fmt.Errorf("marshal domains: %w", err)
		}
		fmt.Fprint(ctx.Out, string(data))
	case "text", "":
		names := lo.Map(domains, func(d entity.Domain, _ int) string { return d.Domain })
		for _, name := range names {
			fmt.Fprintln(ctx.Out, name)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
	return nil
}
