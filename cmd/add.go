package cmd

import (
	"fmt"

	"github.com/inovacc/clientdb/internal/controller"
	"github.com/inovacc/clientdb/internal/model"
	"github.com/spf13/cobra"
)

var (
	addName  string
	addEmail string
	addPhone string
	addCity  string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new client",
	Long: `Add a new client to the end of the list.

Missing fields are asked for when a terminal is attached.

Examples:
  clientdb add --name Ana --email a@x.com --phone 111 --city SP
  clientdb add`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "client name")
	addCmd.Flags().StringVarP(&addEmail, "email", "e", "", "client email")
	addCmd.Flags().StringVarP(&addPhone, "phone", "p", "", "client phone")
	addCmd.Flags().StringVarP(&addCity, "city", "c", "", "client city")
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	view := newPromptView(cmd, false)
	ctrl := controller.New(s, view, current.logger)

	ctrl.OpenCreate()
	view.setFields(map[string]string{
		model.FieldName:  addName,
		model.FieldEmail: addEmail,
		model.FieldPhone: addPhone,
		model.FieldCity:  addCity,
	})
	view.fillMissing()

	name := view.FormValues().Name

	if err := ctrl.Save(ctx); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added: %s (index %d)\n", name, len(view.rows)-1)

	return nil
}
