package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jrlgen/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	var save string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after applying the config file and the command
line flags. With --save the result is written to a file instead, as YAML
when the file name ends in .yaml or .yml and TOML otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			if save != "" {
				if err := config.NewConfigService().SaveToPath(a.cfg, save); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "saved config to %s\n", save)
				return nil
			}

			data, err := config.Marshal(a.cfg, config.FileName)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&save, "save", "", "write the effective configuration to this file")

	return cmd
}
