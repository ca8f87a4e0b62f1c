package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/inovacc/clientdb/internal/controller"
	"github.com/inovacc/clientdb/internal/model"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List clients",
	Long: `List every client with its current index.

Indexes change when a client before them is deleted.

Examples:
  clientdb list
  clientdb list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
}

type listedClient struct {
	Index int `json:"index"`
	model.Client
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	view := newPromptView(cmd, false)
	if err := controller.New(s, view, current.logger).Render(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if listJSON {
		items := make([]listedClient, len(view.rows))
		for i, r := range view.rows {
			items[i] = listedClient{Index: r.Index, Client: r.Client}
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(items)
	}

	if len(view.rows) == 0 {
		_, _ = fmt.Fprintln(out, "No clients registered.")
		_, _ = fmt.Fprintln(out, "Add one with: clientdb add")

		return nil
	}

	_, _ = fmt.Fprintln(out, renderTable(view.rows))

	return nil
}
