package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/placegraph/pkg/config"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying the config file and PLACEGRAPH_*
environment variables, in the file's TOML format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			path := c.configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			if _, err := os.Stat(path); err == nil {
				printInfo(w, "config file %s", path)
			} else {
				printInfo(w, "no config file at %s, using defaults", path)
			}

			text, err := c.Config.TOML()
			if err != nil {
				return err
			}
			fmt.Fprint(w, text)
			return nil
		},
	}
}
