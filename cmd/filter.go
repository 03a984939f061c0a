package cmd

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"jrlgen/internal/domain"
)

const filterLongDescription = `Print the index entries matching the query formed by joining the
arguments with single spaces. Without arguments every entry is printed.

With --table each entry is shown next to its group shading (odd/even), the
marker the interactive view uses to alternate row colors between series.`

func newFilterCmd(opts *rootOptions) *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:   "filter [terms...]",
		Short: "Print index entries matching a query",
		Long:  filterLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			sess, err := a.loadSession(cmd.Context())
			if err != nil {
				return err
			}

			result := sess.OnQueryChanged(strings.Join(args, " "))
			if table {
				renderFilterTable(cmd, result)
				return nil
			}
			return printPaths(cmd.OutOrStdout(), result.Paths())
		},
	}
	cmd.Flags().BoolVarP(&table, "table", "t", false, "render matches as a table with their group marker")

	return cmd
}

func renderFilterTable(cmd *cobra.Command, result domain.FilterResult) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Path", "Group"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, entry := range result {
		group := "odd"
		if entry.Even {
			group = "even"
		}
		table.Append([]string{entry.Path, group})
	}

	table.SetFooter([]string{"Matches", fmt.Sprintf("%d", len(result))})
	table.Render()
}
