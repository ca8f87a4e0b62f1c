// Package cli provides the terminal user interface for clientdb.
//
// The package uses [Bubbletea] for the interactive program and [Lipgloss] for
// styling. [RegistryModel] shows the client table and, on demand, a modal form
// for adding or editing a record and a y/N prompt before deleting one.
//
// The model does not touch the store directly. An internal screen type
// implements controller.View; the controller mutates it and the model renders
// it. Delete confirmation is collected first and then handed to the
// controller as the answer to View.Confirm.
//
// # Keys
//
//	n        new client
//	e/enter  edit selected client
//	d        delete selected client
//	tab      next form field
//	ctrl+s   save form
//	esc      close form
//	q        quit
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
