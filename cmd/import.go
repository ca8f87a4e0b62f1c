package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/inovacc/clientdb/internal/model"
	"github.com/spf13/cobra"
)

var importYes bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the client list from a JSON file",
	Long: `Replace the stored list with the JSON array in <file>.

Every record must pass the same checks as the form. Records without an id
get a new one.

Examples:
  clientdb import clients.json
  clientdb import clients.json --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "skip the confirmation prompt")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var clients []model.Client
	if err := json.Unmarshal(data, &clients); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	for i := range clients {
		if err := model.Validate(clients[i]); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}

		if clients[i].ID == "" {
			clients[i].ID = uuid.NewString()
		}
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	existing, err := s.Read(ctx)
	if err != nil {
		return err
	}

	view := newPromptView(cmd, importYes)

	question := fmt.Sprintf("Replace %d clients with %d from %s?", len(existing), len(clients), args[0])
	if !view.Confirm(question) {
		if view.refused {
			return fmt.Errorf("refusing to import without confirmation; pass --yes")
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")

		return nil
	}

	if err := s.Replace(ctx, clients); err != nil {
		return err
	}

	current.logger.Info("client list imported", "file", args[0], "count", len(clients))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d clients\n", len(clients))

	return nil
}
