package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/smartspend-dev/spendcsv/internal/config"
)

func newCategoriesCommand(a *app) *cobra.Command {
	var writePath string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Print the active category keyword table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if writePath != "" {
				if err := config.Save(writePath, a.cfg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", writePath)
				return nil
			}

			data, err := yaml.Marshal(a.cfg.Categories)
			if err != nil {
				return fmt.Errorf("marshaling categories: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&writePath, "write", "", "write the full config, including the table, to this path")

	return cmd
}
