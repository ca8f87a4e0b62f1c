package controller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inovacc/clientdb/internal/model"
	"github.com/inovacc/clientdb/internal/store"
)

// NoIndex marks a form opened for creation. It cannot collide with a real
// position, so saving an edit of the first record updates it.
const NoIndex = -1

const (
	HeaderNew     = "New Client"
	headerEditing = "Editing %s"
	confirmDelete = "Do you really want to delete client %s?"
)

// Mode is the form lifecycle state.
type Mode int

const (
	ModeClosed Mode = iota
	ModeCreate
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeClosed:
		return "closed"
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	}

	return "unknown"
}

// Controller translates user actions into Store calls and keeps the View in
// sync.
type Controller struct {
	store  store.Store
	view   View
	logger *slog.Logger

	mode  Mode
	index int
}

// New creates a Controller. Call Render to draw the initial table.
func New(s store.Store, v View, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{store: s, view: v, logger: logger, index: NoIndex}
}

// Mode returns the current form state.
func (c *Controller) Mode() Mode {
	return c.mode
}

// EditingIndex returns the index being edited, or NoIndex.
func (c *Controller) EditingIndex() int {
	return c.index
}

// Render reads the current list and redraws every row.
func (c *Controller) Render(ctx context.Context) error {
	clients, err := c.store.Read(ctx)
	if err != nil {
		return err
	}

	rows := make([]Row, len(clients))
	for i, cl := range clients {
		rows[i] = Row{Index: i, Client: cl}
	}

	c.view.RenderRows(rows)

	return nil
}

// OpenCreate opens an empty form for a new record.
func (c *Controller) OpenCreate() {
	c.resetForm()
	c.mode = ModeCreate
	c.view.ShowForm(HeaderNew)
}

// OpenEdit opens the form populated with the record at index.
func (c *Controller) OpenEdit(ctx context.Context, index int) error {
	cl, err := c.get(ctx, index)
	if err != nil {
		return err
	}

	c.view.PopulateForm(cl)
	c.mode = ModeEdit
	c.index = index
	c.view.ShowForm(fmt.Sprintf(headerEditing, cl.Name))

	return nil
}

// Close discards the form. Fields are cleared before the form is hidden.
func (c *Controller) Close() {
	c.resetForm()
	c.mode = ModeClosed
	c.view.HideForm()
}

// Save validates the form and creates or updates a record. On success the
// table is redrawn and the form closed. A validation failure leaves the form
// open and returns a *model.ValidationError.
func (c *Controller) Save(ctx context.Context) error {
	if c.mode == ModeClosed {
		return fmt.Errorf("no form is open")
	}

	values := c.view.FormValues()
	if err := model.Validate(values); err != nil {
		c.view.ReportInvalid(err)
		return err
	}

	if c.index == NoIndex {
		index, err := c.store.Create(ctx, values)
		if err != nil {
			return err
		}

		c.logger.Info("client created", "index", index, "name", values.Name)
	} else {
		if err := c.store.Update(ctx, c.index, values); err != nil {
			return err
		}

		c.logger.Info("client updated", "index", c.index, "name", values.Name)
	}

	// the record is persisted, so the form closes even if the redraw fails
	err := c.Render(ctx)
	c.Close()

	return err
}

// Dispatch handles a row affordance id such as "edit-2" or "delete-0".
// Unknown ids are ignored.
func (c *Controller) Dispatch(ctx context.Context, id string) error {
	action, index, ok := ParseActionID(id)
	if !ok {
		c.logger.Debug("ignoring unknown row action", "id", id)
		return nil
	}

	switch action {
	case ActionEdit:
		return c.OpenEdit(ctx, index)
	case ActionDelete:
		_, err := c.Delete(ctx, index)
		return err
	}

	return nil
}

// Delete asks for confirmation and removes the record at index. It reports
// whether the record was removed.
func (c *Controller) Delete(ctx context.Context, index int) (bool, error) {
	cl, err := c.get(ctx, index)
	if err != nil {
		return false, err
	}

	if !c.view.Confirm(DeletePrompt(cl)) {
		return false, nil
	}

	if err := c.store.Delete(ctx, index); err != nil {
		return false, err
	}

	c.logger.Info("client deleted", "index", index, "name", cl.Name)

	return true, c.Render(ctx)
}

// DeletePrompt returns the confirmation question for removing cl.
func DeletePrompt(cl model.Client) string {
	return fmt.Sprintf(confirmDelete, cl.Name)
}

func (c *Controller) resetForm() {
	c.view.ClearForm()
	c.index = NoIndex
}

func (c *Controller) get(ctx context.Context, index int) (model.Client, error) {
	clients, err := c.store.Read(ctx)
	if err != nil {
		return model.Client{}, err
	}

	if index < 0 || index >= len(clients) {
		return model.Client{}, &store.IndexError{Index: index, Len: len(clients)}
	}

	return clients[index], nil
}
