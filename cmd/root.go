package cmd

import (
	"os"

	"github.com/inovacc/clientdb/internal/application"
	"github.com/inovacc/clientdb/internal/config"
	"github.com/inovacc/clientdb/internal/params"
	"github.com/spf13/cobra"
)

var (
	configPath string
	overrides  config.Overrides
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "A small client registry",
	Long: `clientdb keeps a list of clients (name, email, phone, city) in a single
key-value slot and lets you add, list, edit and delete them.

Run without a command to open the interactive table.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupSession,
	RunE:              runUI,
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	err := rootCmd.Execute()

	closeSession()

	if err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", params.DefaultConfigPath(), "path to the INI config file")
	overrides.Register(rootCmd.PersistentFlags())
}
