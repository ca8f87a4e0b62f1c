package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	clearYes   bool
	clearPurge bool
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every client",
	Long: `Reset the client list to empty.

With --purge the slot itself is removed from the backend instead of being
reset to an empty list.

Examples:
  clientdb clear
  clientdb clear --yes
  clientdb clear --purge -y`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the confirmation prompt")
	clearCmd.Flags().BoolVar(&clearPurge, "purge", false, "remove the slot instead of writing an empty list")
}

func runClear(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	clients, err := s.Read(ctx)
	if err != nil {
		return err
	}

	view := newPromptView(cmd, clearYes)
	if !view.Confirm(fmt.Sprintf("Remove all %d clients?", len(clients))) {
		if view.refused {
			return fmt.Errorf("refusing to clear without confirmation; pass --yes")
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")

		return nil
	}

	reset := s.Clear
	if clearPurge {
		reset = s.Purge
	}

	if err := reset(ctx); err != nil {
		return err
	}

	current.logger.Info("client list cleared", "removed", len(clients), "purge", clearPurge)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d clients\n", len(clients))

	return nil
}
