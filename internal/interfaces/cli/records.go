package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lite-lake/mijnhost-dns/internal/domain/entity"
)

func newRecordsCommand(ctx *Context) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "records <domain>",
		Short: "Show DNS records of a domain",
		Long:  "Show the full DNS record set of a domain as held by the provider.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecords(cmd, ctx, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text/yaml)")
	return cmd
}

func runRecords(cmd *cobra.Command, ctx *Context, domainName, output string) error {
	api, _, err := ctx.Connect()
	if err != nil {
		return err
	}

	set, err := api.GetRecords(cmd.Context(), domainName)
	if err != nil {
		return err
	}

	switch output {
	case "yaml":
		data, err := yaml.Marshal(set)
		if err != nil {
			return fmt.Errorf("marshal records: %w", err)
		}
		fmt.Fprint(ctx.Out, string(data))
	case "text", "":
		fmt.Fprintln(ctx.Out, TitleStyle.Render("Records for domain: "+set.Domain))
		fmt.Fprintln(ctx.Out, recordTable(set.Records))
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
	return nil
}

func recordTable(records []entity.DNSRecord) string {
	rows := lo.Map(records, func(r entity.DNSRecord, _ int) []string {
		return []string{r.Name, strconv.Itoa(r.TTL), string(r.Type), r.Value}
	})

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("NAME", "TTL", "TYPE", "VALUE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			return CellStyle
		})
	return t.Render()
}
