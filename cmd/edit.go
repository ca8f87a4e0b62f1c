package cmd

import (
	"fmt"

	"github.com/inovacc/clientdb/internal/controller"
	"github.com/inovacc/clientdb/internal/model"
	"github.com/spf13/cobra"
)

var (
	editID    string
	editName  string
	editEmail string
	editPhone string
	editCity  string
)

var editCmd = &cobra.Command{
	Use:   "edit [index]",
	Short: "Edit a client",
	Long: `Edit the client at the given index (as shown by 'clientdb list') or with
the given --id. Only the fields passed as flags change.

Examples:
  clientdb edit 0 --city RJ
  clientdb edit --id 3f2c... --email new@x.com`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editID, "id", "", "select the client by id instead of index")
	editCmd.Flags().StringVarP(&editName, "name", "n", "", "new name")
	editCmd.Flags().StringVarP(&editEmail, "email", "e", "", "new email")
	editCmd.Flags().StringVarP(&editPhone, "phone", "p", "", "new phone")
	editCmd.Flags().StringVarP(&editCity, "city", "c", "", "new city")
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	index, err := resolveIndex(ctx, s, args, editID)
	if err != nil {
		return err
	}

	view := newPromptView(cmd, false)
	ctrl := controller.New(s, view, current.logger)

	if err := ctrl.OpenEdit(ctx, index); err != nil {
		return err
	}

	view.setFields(map[string]string{
		model.FieldName:  editName,
		model.FieldEmail: editEmail,
		model.FieldPhone: editPhone,
		model.FieldCity:  editCity,
	})

	name := view.FormValues().Name

	if err := ctrl.Save(ctx); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s (index %d)\n", name, index)

	return nil
}
