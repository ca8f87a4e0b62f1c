package cmd

import (
	"fmt"

	"github.com/inovacc/clientdb/internal/controller"
	"github.com/spf13/cobra"
)

var (
	deleteID  string
	deleteYes bool
)

var deleteCmd = &cobra.Command{
	Use:     "delete [index]",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a client",
	Long: `Delete the client at the given index or with the given --id.

Every later client moves up by one position. You are asked to confirm unless
--yes is given; without a terminal --yes is required.

Examples:
  clientdb delete 2
  clientdb delete --id 3f2c... -y`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "select the client by id instead of index")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	index, err := resolveIndex(ctx, s, args, deleteID)
	if err != nil {
		return err
	}

	view := newPromptView(cmd, deleteYes)
	ctrl := controller.New(s, view, current.logger)

	deleted, err := ctrl.Delete(ctx, index)
	if err != nil {
		return err
	}

	if view.refused {
		return fmt.Errorf("refusing to delete without confirmation; pass --yes")
	}

	if !deleted {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted index %d, %d clients left\n", index, len(view.rows))

	return nil
}
