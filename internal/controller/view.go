package controller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inovacc/clientdb/internal/model"
)

// View is the rendering surface the Controller drives. Implementations own
// layout and input; the Controller owns state.
type View interface {
	// ShowForm makes the form visible with the given header.
	ShowForm(header string)

	// HideForm hides the form.
	HideForm()

	// PopulateForm fills the form fields from a record.
	PopulateForm(client model.Client)

	// ClearForm empties every form field.
	ClearForm()

	// FormValues returns what the user entered.
	FormValues() model.Client

	// ReportInvalid shows why the form cannot be saved.
	ReportInvalid(err error)

	// RenderRows replaces the table body.
	RenderRows(rows []Row)

	// Confirm asks a yes/no question.
	Confirm(message string) bool
}

// Action is a row affordance.
type Action string

const (
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Row is one rendered table line.
type Row struct {
	Index  int
	Client model.Client
}

// ActionID returns the identifier of an affordance on this row, e.g. "edit-3".
// It is only valid until the next mutation.
func (r Row) ActionID(a Action) string {
	return fmt.Sprintf("%s-%d", a, r.Index)
}

// Cells returns the four displayed values in column order.
func (r Row) Cells() []string {
	cells := make([]string, len(model.Fields))
	for i, f := range model.Fields {
		cells[i] = r.Client.Get(f)
	}

	return cells
}

// ParseActionID splits an id produced by Row.ActionID.
func ParseActionID(id string) (Action, int, bool) {
	name, num, ok := strings.Cut(id, "-")
	if !ok {
		return "", 0, false
	}

	action := Action(name)
	if action != ActionEdit && action != ActionDelete {
		return "", 0, false
	}

	index, err := strconv.Atoi(num)
	if err != nil || index < 0 {
		return "", 0, false
	}

	return action, index, true
}
