package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"jrlgen/internal/export"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [terms...]",
		Short: "Print a reading list of every entry matching a query",
		Long: `Add every index entry matching the query to a reading list and print
the exported document. JSON output uses two space indentation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			sess, err := a.loadSession(cmd.Context())
			if err != nil {
				return err
			}

			sess.OnQueryChanged(strings.Join(args, " "))
			sess.OnAddAll()

			out, err := sess.OnExportAs(f)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "output format (json|yaml)")

	return cmd
}
