package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"jrlgen/internal/index"
)

const indexLongDescription = `Walk a directory and write an index of the files it contains, one path
relative to the directory per line, sorted.

Only paths containing --match (default ".cb") are kept and paths containing
--exclude (default "BROKEN") are dropped. Serve the output next to the files
and point --index at it.`

func newIndexCmd(opts *rootOptions) *cobra.Command {
	defaults := index.DefaultBuildOptions()

	var (
		output  string
		match   string
		exclude string
	)

	cmd := &cobra.Command{
		Use:   "index <dir>",
		Short: "Generate an index file from a directory",
		Long:  indexLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create index file: %w", err)
				}
				defer f.Close()
				w = f
			}

			builder := index.NewBuilder(a.bus, a.logger)
			n, err := builder.Build(cmd.Context(), args[0], index.BuildOptions{Match: match, Exclude: exclude}, w)
			if err != nil {
				return err
			}

			if output != "" && output != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d entries to %s\n", n, output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the index to this file instead of stdout")
	cmd.Flags().StringVar(&match, "match", defaults.Match, "substring a path must contain")
	cmd.Flags().StringVar(&exclude, "exclude", defaults.Exclude, "substring that drops a path (empty keeps all)")

	return cmd
}
