package cmd

import (
	"fmt"

	"github.com/inovacc/clientdb/internal/application"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", application.AppName, application.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
