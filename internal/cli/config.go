package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sharechart/pkg/config"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := config.Encode(c.Config)
			if err != nil {
				return err
			}
			fmt.Fprint(c.out, text)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.out, c.configPath)
			return nil
		},
	})

	return cmd
}
