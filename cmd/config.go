package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration after merging the INI file and flags.

The file is read from --config (default: <user config dir>/clientdb/clientdb.ini)
and is optional. Secrets are masked.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	file, err := current.cfg.INI()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(out, "; config file: %s\n", configPath)

	_, err = file.WriteTo(out)

	return err
}
